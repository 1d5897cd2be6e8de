// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package seq implements Seq, the block-addressable file primitive that
// every higher layer of lbasedb is built on: a file viewed as a
// homogeneous sequence of fixed-size blocks.
package seq

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

// Sentinel error kinds, matching the closed set of failure modes the
// engine distinguishes (see the error handling design in SPEC_FULL.md).
var (
	ErrInvalidData     = errors.New("seq: invalid data")
	ErrUnexpectedEOF   = errors.New("seq: unexpected end of file")
	ErrInvalidArgument = errors.New("seq: invalid argument")
)

// Seq is a file viewed as a sequence of fixed-size blocks. Its block size
// is fixed at creation and never changes. A Seq serializes its own
// operations: callers may share one *Seq across goroutines, but every
// operation blocks until it holds the file's exclusive lock, the same
// per-resource locking shape as a directory lock in a blob store.
type Seq struct {
	mu        sync.Mutex
	file      *os.File
	blockSize int
}

// Open opens (creating if missing) the file at path and wraps it as a Seq
// with the given block size.
func Open(path string, blockSize int) (*Seq, error) {
	if blockSize <= 0 {
		return nil, fmt.Errorf("seq: open %q: %w: block size must be positive", path, ErrInvalidArgument)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("seq: open %q: %w", path, err)
	}
	return &Seq{file: f, blockSize: blockSize}, nil
}

// BlockSize returns the fixed block size in bytes.
func (s *Seq) BlockSize() int {
	return s.blockSize
}

// Close closes the underlying file.
func (s *Seq) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}

// Size returns the number of blocks currently stored.
func (s *Seq) Size() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sizeLocked()
}

func (s *Seq) sizeLocked() (int64, error) {
	info, err := s.file.Stat()
	if err != nil {
		return 0, fmt.Errorf("seq: stat: %w", err)
	}
	length := info.Size()
	if length%int64(s.blockSize) != 0 {
		return 0, fmt.Errorf("seq: file length %d not a multiple of block size %d: %w", length, s.blockSize, ErrInvalidData)
	}
	return length / int64(s.blockSize), nil
}

// Resize sets the file length to n blocks. Growing the file zero-fills
// the new tail.
func (s *Seq) Resize(n int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 0 {
		return fmt.Errorf("seq: resize: %w: negative size", ErrInvalidArgument)
	}
	if err := s.file.Truncate(n * int64(s.blockSize)); err != nil {
		return fmt.Errorf("seq: resize: %w", err)
	}
	return nil
}

// Get reads exactly len(buf) bytes starting at block index ix. len(buf)
// must be a multiple of the block size.
func (s *Seq) Get(ix int64, buf []byte) error {
	if err := s.checkMultiple(buf); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	off := ix * int64(s.blockSize)
	n, err := s.file.ReadAt(buf, off)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("seq: get at block %d: %w", ix, ErrUnexpectedEOF)
		}
		return fmt.Errorf("seq: get at block %d: %w", ix, err)
	}
	if n != len(buf) {
		return fmt.Errorf("seq: get at block %d: %w", ix, ErrUnexpectedEOF)
	}
	return nil
}

// Update writes all of buf starting at block index ix and flushes. len(buf)
// must be a multiple of the block size.
func (s *Seq) Update(ix int64, buf []byte) error {
	if err := s.checkMultiple(buf); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	off := ix * int64(s.blockSize)
	if _, err := s.file.WriteAt(buf, off); err != nil {
		return fmt.Errorf("seq: update at block %d: %w", ix, err)
	}
	if err := s.file.Sync(); err != nil {
		return fmt.Errorf("seq: update at block %d: %w", ix, err)
	}
	return nil
}

// Push writes all of buf at the end of the file, flushes, and returns the
// block index the data now starts at. len(buf) must be a multiple of the
// block size.
func (s *Seq) Push(buf []byte) (int64, error) {
	if err := s.checkMultiple(buf); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	size, err := s.sizeLocked()
	if err != nil {
		return 0, err
	}
	off := size * int64(s.blockSize)
	if _, err := s.file.WriteAt(buf, off); err != nil {
		return 0, fmt.Errorf("seq: push: %w", err)
	}
	if err := s.file.Sync(); err != nil {
		return 0, fmt.Errorf("seq: push: %w", err)
	}
	return size, nil
}

func (s *Seq) checkMultiple(buf []byte) error {
	if len(buf)%s.blockSize != 0 {
		return fmt.Errorf("seq: buffer length %d is not a multiple of block size %d: %w", len(buf), s.blockSize, ErrInvalidArgument)
	}
	return nil
}
