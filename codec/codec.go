// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package codec converts between fixed-width scalar values and their
// on-disk byte representation.
//
// The original lbasedb source reinterprets a value's memory directly as
// bytes (host-native order, no copy). Go has no safe equivalent for an
// arbitrary type, so this package commits to the portable alternative the
// design already allows: explicit little-endian encode/decode.
package codec

import (
	"encoding/binary"
	"math"
	"strings"
)

// Int64ToBytes encodes x as 8 little-endian bytes.
func Int64ToBytes(x int64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, uint64(x))
	return b
}

// BytesToInt64 decodes the first 8 bytes of b as an int64.
func BytesToInt64(b []byte) int64 {
	return int64(binary.LittleEndian.Uint64(b))
}

// Int32ToBytes encodes x as 4 little-endian bytes.
func Int32ToBytes(x int32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(x))
	return b
}

// BytesToInt32 decodes the first 4 bytes of b as an int32.
func BytesToInt32(b []byte) int32 {
	return int32(binary.LittleEndian.Uint32(b))
}

// Float64ToBytes encodes x as 8 little-endian bytes (IEEE 754).
func Float64ToBytes(x float64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, math.Float64bits(x))
	return b
}

// BytesToFloat64 decodes the first 8 bytes of b as a float64.
func BytesToFloat64(b []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}

// Float32ToBytes encodes x as 4 little-endian bytes (IEEE 754).
func Float32ToBytes(x float32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, math.Float32bits(x))
	return b
}

// BytesToFloat32 decodes the first 4 bytes of b as a float32.
func BytesToFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

// StrToBytes truncates or zero-pads s to exactly n bytes.
func StrToBytes(s string, n int) []byte {
	buf := make([]byte, n)
	copy(buf, s)
	return buf
}

// BytesToStr decodes b as UTF-8 and trims trailing NUL padding.
func BytesToStr(b []byte) string {
	return strings.TrimRight(string(b), "\x00")
}
