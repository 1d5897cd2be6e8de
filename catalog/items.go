// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package catalog implements the two fixed-width catalog record types Conn
// keeps: FeedItem (one row per feed) and ColItem (one row per column within
// a feed), along with the name validation shared by both.
package catalog

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/fomalhaut88/lbasedb/codec"
	"github.com/fomalhaut88/lbasedb/datatype"
)

// MaxNameSize is the fixed width, in bytes, reserved for a feed or column
// name on disk.
const MaxNameSize = 256

// ErrInvalidName is returned when a proposed feed or column name fails
// nameRe.
var ErrInvalidName = errors.New("catalog: invalid name")

var nameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z_0-9]*(\.[A-Za-z_][A-Za-z_0-9]*)*$`)

// ValidateName reports whether name is an acceptable feed or column name.
func ValidateName(name string) error {
	if !nameRe.MatchString(name) {
		return fmt.Errorf("catalog: validate name %q: %w", name, ErrInvalidName)
	}
	return nil
}

// FeedItem is one catalog row describing a feed: its name and its current
// row count (shared by every column in the feed).
type FeedItem struct {
	name [MaxNameSize]byte
	Size int64
}

// NewFeedItem builds a FeedItem for a newly created, empty feed. name must
// already have passed ValidateName.
func NewFeedItem(name string) FeedItem {
	var f FeedItem
	copy(f.name[:], codec.StrToBytes(name, MaxNameSize))
	return f
}

// Name returns the feed's name.
func (f FeedItem) Name() string {
	return codec.BytesToStr(f.name[:])
}

// Key implements list.Keyer[string].
func (f FeedItem) Key() string {
	return f.Name()
}

// Rename returns a copy of f under a new name, preserving Size. name must
// already have passed ValidateName.
func (f FeedItem) Rename(name string) FeedItem {
	out := f
	copy(out.name[:], codec.StrToBytes(name, MaxNameSize))
	return out
}

// feedItemBlockSize is name (256) + size (8).
const feedItemBlockSize = MaxNameSize + 8

// EncodeBlock implements col.Record.
func (f FeedItem) EncodeBlock() []byte {
	b := make([]byte, feedItemBlockSize)
	copy(b[:MaxNameSize], f.name[:])
	copy(b[MaxNameSize:], codec.Int64ToBytes(f.Size))
	return b
}

// DecodeBlock implements col.RecordPtr[FeedItem].
func (f *FeedItem) DecodeBlock(b []byte) {
	copy(f.name[:], b[:MaxNameSize])
	f.Size = codec.BytesToInt64(b[MaxNameSize : MaxNameSize+8])
}

// ColItem is one catalog row describing a column within a feed: its name
// and its fixed on-disk datatype.
type ColItem struct {
	name     [MaxNameSize]byte
	Datatype datatype.Datatype
}

// NewColItem builds a ColItem for a newly created column. name must already
// have passed ValidateName; dt is the column's fixed element type.
func NewColItem(name string, dt datatype.Datatype) ColItem {
	var c ColItem
	copy(c.name[:], codec.StrToBytes(name, MaxNameSize))
	c.Datatype = dt
	return c
}

// Name returns the column's name.
func (c ColItem) Name() string {
	return codec.BytesToStr(c.name[:])
}

// Key implements list.Keyer[string].
func (c ColItem) Key() string {
	return c.Name()
}

// Rename returns a copy of c under a new name, preserving Datatype. name
// must already have passed ValidateName.
func (c ColItem) Rename(name string) ColItem {
	out := c
	copy(out.name[:], codec.StrToBytes(name, MaxNameSize))
	return out
}

// colItemBlockSize is name (256) + datatype tag (1) + datatype N (8).
const colItemBlockSize = MaxNameSize + 1 + 8

// EncodeBlock implements col.Record.
func (c ColItem) EncodeBlock() []byte {
	b := make([]byte, colItemBlockSize)
	copy(b[:MaxNameSize], c.name[:])
	b[MaxNameSize] = byte(c.Datatype.Kind)
	copy(b[MaxNameSize+1:], codec.Int64ToBytes(int64(c.Datatype.N)))
	return b
}

// DecodeBlock implements col.RecordPtr[ColItem].
func (c *ColItem) DecodeBlock(b []byte) {
	copy(c.name[:], b[:MaxNameSize])
	c.Datatype = datatype.Datatype{
		Kind: datatype.Kind(b[MaxNameSize]),
		N:    int(codec.BytesToInt64(b[MaxNameSize+1 : MaxNameSize+9])),
	}
}
