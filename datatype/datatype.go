// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package datatype implements the closed set of fixed-width column types
// lbasedb supports (Datatype) and the dynamic tagged value used to move
// data in and out of the engine (Dataunit).
package datatype

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fomalhaut88/lbasedb/codec"
)

var (
	// ErrUnknownDatatype is returned when parsing a datatype string that
	// is not one of the recognized tokens, or carries a non-positive N.
	ErrUnknownDatatype = errors.New("datatype: unknown datatype")
)

// Kind enumerates the closed set of on-disk element types.
type Kind int

const (
	Int64 Kind = iota
	Int32
	Float64
	Float32
	Bytes
)

// Datatype fixes the on-disk binary layout of one column element.
type Datatype struct {
	Kind Kind
	// N is the fixed width in bytes for Bytes; unused otherwise.
	N int
}

// Size returns the element's fixed width in bytes.
func (d Datatype) Size() int {
	switch d.Kind {
	case Int64, Float64:
		return 8
	case Int32, Float32:
		return 4
	case Bytes:
		return d.N
	default:
		panic(fmt.Sprintf("datatype: unhandled kind %v", d.Kind))
	}
}

// String renders the canonical textual form: Int64, Int32, Float64,
// Float32, or Bytes[N].
func (d Datatype) String() string {
	switch d.Kind {
	case Int64:
		return "Int64"
	case Int32:
		return "Int32"
	case Float64:
		return "Float64"
	case Float32:
		return "Float32"
	case Bytes:
		return fmt.Sprintf("Bytes[%d]", d.N)
	default:
		panic(fmt.Sprintf("datatype: unhandled kind %v", d.Kind))
	}
}

// Parse parses the canonical textual form produced by String. Unknown
// tokens and non-positive Bytes widths are rejected.
func Parse(s string) (Datatype, error) {
	switch s {
	case "Int64":
		return Datatype{Kind: Int64}, nil
	case "Int32":
		return Datatype{Kind: Int32}, nil
	case "Float64":
		return Datatype{Kind: Float64}, nil
	case "Float32":
		return Datatype{Kind: Float32}, nil
	}

	rest, ok := strings.CutPrefix(s, "Bytes[")
	if !ok {
		return Datatype{}, fmt.Errorf("datatype: parse %q: %w", s, ErrUnknownDatatype)
	}
	digits, ok := strings.CutSuffix(rest, "]")
	if !ok {
		return Datatype{}, fmt.Errorf("datatype: parse %q: %w", s, ErrUnknownDatatype)
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n <= 0 {
		return Datatype{}, fmt.Errorf("datatype: parse %q: %w", s, ErrUnknownDatatype)
	}
	return Datatype{Kind: Bytes, N: n}, nil
}

// Dataunit is a tagged value moved in and out of the engine by application
// code: a signed 64-bit integer (I), a signed 32-bit integer (I32), a
// 64-bit float (F), a 32-bit float (F32), or a string (S: textual payload,
// or base64-encoded bytes for Bytes[N] columns). Each Datatype accepts and
// returns exactly one variant: Int32 columns take and yield I32 units and
// Float32 columns F32 units; an I unit is rejected by an Int32 column and
// an F unit by a Float32 column.
type Dataunit struct {
	tag   dataunitTag
	i     int64
	i32   int32
	f     float64
	f32   float32
	s     string
}

type dataunitTag int

const (
	tagInt64 dataunitTag = iota
	tagInt32
	tagFloat64
	tagFloat32
	tagString
)

// I builds an Int64 Dataunit.
func I(x int64) Dataunit { return Dataunit{tag: tagInt64, i: x} }

// I32 builds an Int32 Dataunit.
func I32(x int32) Dataunit { return Dataunit{tag: tagInt32, i32: x} }

// F builds a Float64 Dataunit.
func F(x float64) Dataunit { return Dataunit{tag: tagFloat64, f: x} }

// F32 builds a Float32 Dataunit.
func F32(x float32) Dataunit { return Dataunit{tag: tagFloat32, f32: x} }

// S builds a String Dataunit (textual payload, or base64 for Bytes[N]).
func S(x string) Dataunit { return Dataunit{tag: tagString, s: x} }

// IsInt64 reports whether the unit was built with I.
func (u Dataunit) IsInt64() bool { return u.tag == tagInt64 }

// Int64 returns the wrapped value; valid only if IsInt64.
func (u Dataunit) Int64() int64 { return u.i }

// IsInt32 reports whether the unit was built with I32.
func (u Dataunit) IsInt32() bool { return u.tag == tagInt32 }

// Int32 returns the wrapped value; valid only if IsInt32.
func (u Dataunit) Int32() int32 { return u.i32 }

// IsFloat64 reports whether the unit was built with F.
func (u Dataunit) IsFloat64() bool { return u.tag == tagFloat64 }

// Float64 returns the wrapped value; valid only if IsFloat64.
func (u Dataunit) Float64() float64 { return u.f }

// IsFloat32 reports whether the unit was built with F32.
func (u Dataunit) IsFloat32() bool { return u.tag == tagFloat32 }

// Float32 returns the wrapped value; valid only if IsFloat32.
func (u Dataunit) Float32() float32 { return u.f32 }

// IsString reports whether the unit was built with S.
func (u Dataunit) IsString() bool { return u.tag == tagString }

// Text returns the wrapped value; valid only if IsString.
func (u Dataunit) Text() string { return u.s }

// coder is the per-Datatype-variant encode/decode pair, the same
// dispatch-table idiom the teacher's field coders use: one small type per
// variant instead of one large switch spread across call sites.
type coder interface {
	encode(d Datatype, u Dataunit) ([]byte, bool)
	decode(d Datatype, block []byte) Dataunit
}

var coders = map[Kind]coder{
	Int64:   codecInt64{},
	Int32:   codecInt32{},
	Float64: codecFloat64{},
	Float32: codecFloat32{},
	Bytes:   codecBytes{},
}

type codecInt64 struct{}

func (codecInt64) encode(_ Datatype, u Dataunit) ([]byte, bool) {
	if !u.IsInt64() {
		return nil, false
	}
	return codec.Int64ToBytes(u.i), true
}
func (codecInt64) decode(_ Datatype, block []byte) Dataunit {
	return I(codec.BytesToInt64(block))
}

type codecInt32 struct{}

func (codecInt32) encode(_ Datatype, u Dataunit) ([]byte, bool) {
	if u.tag != tagInt32 {
		return nil, false
	}
	return codec.Int32ToBytes(u.i32), true
}
func (codecInt32) decode(_ Datatype, block []byte) Dataunit {
	return I32(codec.BytesToInt32(block))
}

type codecFloat64 struct{}

func (codecFloat64) encode(_ Datatype, u Dataunit) ([]byte, bool) {
	if !u.IsFloat64() {
		return nil, false
	}
	return codec.Float64ToBytes(u.f), true
}
func (codecFloat64) decode(_ Datatype, block []byte) Dataunit {
	return F(codec.BytesToFloat64(block))
}

type codecFloat32 struct{}

func (codecFloat32) encode(_ Datatype, u Dataunit) ([]byte, bool) {
	if u.tag != tagFloat32 {
		return nil, false
	}
	return codec.Float32ToBytes(u.f32), true
}
func (codecFloat32) decode(_ Datatype, block []byte) Dataunit {
	return F32(codec.BytesToFloat32(block))
}

// codecBytes encodes a Dataunit built with S as base64: encode rejects a
// payload whose decoded length does not equal N, while decode always
// produces exactly N raw bytes (zero-padding a shorter block) before
// re-encoding to base64.
type codecBytes struct{}

func (codecBytes) encode(d Datatype, u Dataunit) ([]byte, bool) {
	if !u.IsString() {
		return nil, false
	}
	raw, err := base64.StdEncoding.DecodeString(u.s)
	if err != nil {
		return nil, false
	}
	if len(raw) != d.N {
		return nil, false
	}
	return raw, true
}
func (codecBytes) decode(d Datatype, block []byte) Dataunit {
	buf := make([]byte, d.N)
	copy(buf, block)
	return S(base64.StdEncoding.EncodeToString(buf))
}

// ToBytes encodes u as exactly Size() bytes. It returns false if u does not
// carry the kind of value d expects.
func (d Datatype) ToBytes(u Dataunit) ([]byte, bool) {
	return coders[d.Kind].encode(d, u)
}

// FromBytes decodes exactly Size() bytes of block into a Dataunit of the
// kind d expects.
func (d Datatype) FromBytes(block []byte) Dataunit {
	return coders[d.Kind].decode(d, block)
}
