// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package col implements Col, a typed view over a Seq: a file of records
// of type T, each encoded to and decoded from a fixed-size block.
package col

import (
	"fmt"

	"github.com/fomalhaut88/lbasedb/seq"
)

// Record is implemented by value types storable in a Col. EncodeBlock must
// always return the same number of bytes for a given T.
type Record interface {
	EncodeBlock() []byte
}

// RecordPtr is implemented by the pointer type of a Record, and populates
// the pointee from a previously encoded block.
type RecordPtr[T any] interface {
	*T
	DecodeBlock([]byte)
}

// Col stores a sequence of records of type T in a Seq whose block size
// equals the byte size of one encoded T.
type Col[T Record, PT RecordPtr[T]] struct {
	seq       *seq.Seq
	blockSize int
}

// Open opens (creating if missing) the file at path as a Col[T].
func Open[T Record, PT RecordPtr[T]](path string) (*Col[T, PT], error) {
	var zero T
	blockSize := len(zero.EncodeBlock())

	s, err := seq.Open(path, blockSize)
	if err != nil {
		return nil, fmt.Errorf("col: open: %w", err)
	}
	return &Col[T, PT]{seq: s, blockSize: blockSize}, nil
}

// Close closes the underlying Seq.
func (c *Col[T, PT]) Close() error {
	return c.seq.Close()
}

// BlockSize returns the byte size of one encoded record.
func (c *Col[T, PT]) BlockSize() int {
	return c.blockSize
}

// Size returns the number of stored records.
func (c *Col[T, PT]) Size() (int64, error) {
	n, err := c.seq.Size()
	if err != nil {
		return 0, fmt.Errorf("col: size: %w", err)
	}
	return n, nil
}

// Resize sets the number of stored records, zero-filling new tail records.
func (c *Col[T, PT]) Resize(n int64) error {
	if err := c.seq.Resize(n); err != nil {
		return fmt.Errorf("col: resize: %w", err)
	}
	return nil
}

// Push appends one record and returns its index.
func (c *Col[T, PT]) Push(x T) (int64, error) {
	ix, err := c.seq.Push(x.EncodeBlock())
	if err != nil {
		return 0, fmt.Errorf("col: push: %w", err)
	}
	return ix, nil
}

// PushMany appends multiple records and returns the index of the first.
func (c *Col[T, PT]) PushMany(xs []T) (int64, error) {
	block := make([]byte, 0, len(xs)*c.blockSize)
	for _, x := range xs {
		block = append(block, x.EncodeBlock()...)
	}
	ix, err := c.seq.Push(block)
	if err != nil {
		return 0, fmt.Errorf("col: push many: %w", err)
	}
	return ix, nil
}

// Get decodes the record at index ix.
func (c *Col[T, PT]) Get(ix int64) (T, error) {
	var out T
	block := make([]byte, c.blockSize)
	if err := c.seq.Get(ix, block); err != nil {
		return out, fmt.Errorf("col: get: %w", err)
	}
	PT(&out).DecodeBlock(block)
	return out, nil
}

// GetMany decodes count records starting at index ix.
func (c *Col[T, PT]) GetMany(ix int64, count int64) ([]T, error) {
	if count == 0 {
		return nil, nil
	}
	block := make([]byte, c.blockSize*int(count))
	if err := c.seq.Get(ix, block); err != nil {
		return nil, fmt.Errorf("col: get many: %w", err)
	}
	return c.decodeMany(block, int(count)), nil
}

// GetAll decodes every stored record.
func (c *Col[T, PT]) GetAll() ([]T, error) {
	size, err := c.Size()
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return nil, nil
	}
	return c.GetMany(0, size)
}

// Update overwrites the record at index ix.
func (c *Col[T, PT]) Update(ix int64, x T) error {
	if err := c.seq.Update(ix, x.EncodeBlock()); err != nil {
		return fmt.Errorf("col: update: %w", err)
	}
	return nil
}

// UpdateMany overwrites len(xs) records starting at index ix.
func (c *Col[T, PT]) UpdateMany(ix int64, xs []T) error {
	block := make([]byte, 0, len(xs)*c.blockSize)
	for _, x := range xs {
		block = append(block, x.EncodeBlock()...)
	}
	if err := c.seq.Update(ix, block); err != nil {
		return fmt.Errorf("col: update many: %w", err)
	}
	return nil
}

func (c *Col[T, PT]) decodeMany(block []byte, count int) []T {
	out := make([]T, count)
	for i := 0; i < count; i++ {
		chunk := block[i*c.blockSize : (i+1)*c.blockSize]
		PT(&out[i]).DecodeBlock(chunk)
	}
	return out
}
