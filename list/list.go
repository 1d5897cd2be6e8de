// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package list implements List, a keyed in-memory index over a Col: a
// small catalog table that supports lookup, add, swap-with-tail remove,
// and rekeying modify — the building block Conn uses for its feed and
// column catalogs.
package list

import (
	"errors"
	"fmt"

	"github.com/fomalhaut88/lbasedb/col"
)

var (
	ErrNotFound      = errors.New("list: not found")
	ErrAlreadyExists = errors.New("list: already exists")
)

// Keyer is implemented by record types stored in a List: it derives the
// record's key, the field List indexes by.
type Keyer[K comparable] interface {
	Key() K
}

// record is the constraint a List's T must satisfy: storable in a Col and
// keyed.
type record[K comparable] interface {
	col.Record
	Keyer[K]
}

// List keeps an in-memory map from key to current position in the
// backing Col, built by scanning all records at Open.
type List[T record[K], PT col.RecordPtr[T], K comparable] struct {
	col   *col.Col[T, PT]
	ixmap map[K]int64
}

// Open opens (creating if missing) the file at path and builds the index
// by scanning every stored record.
func Open[T record[K], PT col.RecordPtr[T], K comparable](path string) (*List[T, PT, K], error) {
	c, err := col.Open[T, PT](path)
	if err != nil {
		return nil, fmt.Errorf("list: open: %w", err)
	}
	records, err := c.GetAll()
	if err != nil {
		return nil, fmt.Errorf("list: open: %w", err)
	}
	ixmap := make(map[K]int64, len(records))
	for ix, r := range records {
		ixmap[r.Key()] = int64(ix)
	}
	return &List[T, PT, K]{col: c, ixmap: ixmap}, nil
}

// Close closes the underlying Col.
func (l *List[T, PT, K]) Close() error {
	return l.col.Close()
}

// Exists reports whether k is present.
func (l *List[T, PT, K]) Exists(k K) bool {
	_, ok := l.ixmap[k]
	return ok
}

// Size returns the number of stored records.
func (l *List[T, PT, K]) Size() (int64, error) {
	return l.col.Size()
}

// List returns every stored record, in storage order. The order is not
// guaranteed after any Remove.
func (l *List[T, PT, K]) List() ([]T, error) {
	records, err := l.col.GetAll()
	if err != nil {
		return nil, fmt.Errorf("list: list: %w", err)
	}
	return records, nil
}

// Map returns every stored record keyed by K.
func (l *List[T, PT, K]) Map() (map[K]T, error) {
	records, err := l.List()
	if err != nil {
		return nil, err
	}
	out := make(map[K]T, len(records))
	for _, r := range records {
		out[r.Key()] = r
	}
	return out, nil
}

// Detail returns the record stored under k.
func (l *List[T, PT, K]) Detail(k K) (T, error) {
	var zero T
	ix, ok := l.ixmap[k]
	if !ok {
		return zero, fmt.Errorf("list: detail %v: %w", k, ErrNotFound)
	}
	r, err := l.col.Get(ix)
	if err != nil {
		return zero, fmt.Errorf("list: detail: %w", err)
	}
	return r, nil
}

// Add appends a new record, keyed by r.Key().
func (l *List[T, PT, K]) Add(r T) error {
	k := r.Key()
	if _, ok := l.ixmap[k]; ok {
		return fmt.Errorf("list: add %v: %w", k, ErrAlreadyExists)
	}
	ix, err := l.col.Push(r)
	if err != nil {
		return fmt.Errorf("list: add: %w", err)
	}
	l.ixmap[k] = ix
	return nil
}

// Remove deletes the record stored under k using swap-with-tail: the last
// record is moved into the removed position (unless it is the removed
// position itself), the file is truncated by one, and the moved record's
// index is updated in the map. This makes storage order unstable after a
// Remove but keeps the operation O(1).
func (l *List[T, PT, K]) Remove(k K) error {
	ix, ok := l.ixmap[k]
	if !ok {
		return fmt.Errorf("list: remove %v: %w", k, ErrNotFound)
	}

	size, err := l.col.Size()
	if err != nil {
		return fmt.Errorf("list: remove: %w", err)
	}
	lastIx := size - 1

	if ix != lastIx {
		tail, err := l.col.Get(lastIx)
		if err != nil {
			return fmt.Errorf("list: remove: %w", err)
		}
		if err := l.col.Update(ix, tail); err != nil {
			return fmt.Errorf("list: remove: %w", err)
		}
		l.ixmap[tail.Key()] = ix
	}

	if err := l.col.Resize(lastIx); err != nil {
		return fmt.Errorf("list: remove: %w", err)
	}
	delete(l.ixmap, k)
	return nil
}

// Modify overwrites the record stored under k with r. If r.Key() differs
// from k, the index is rekeyed to the new key, which must not already be
// present.
func (l *List[T, PT, K]) Modify(k K, r T) error {
	ix, ok := l.ixmap[k]
	if !ok {
		return fmt.Errorf("list: modify %v: %w", k, ErrNotFound)
	}

	newKey := r.Key()
	if newKey == k {
		if err := l.col.Update(ix, r); err != nil {
			return fmt.Errorf("list: modify: %w", err)
		}
		return nil
	}

	if _, ok := l.ixmap[newKey]; ok {
		return fmt.Errorf("list: modify %v -> %v: %w", k, newKey, ErrAlreadyExists)
	}

	if err := l.col.Update(ix, r); err != nil {
		return fmt.Errorf("list: modify: %w", err)
	}
	delete(l.ixmap, k)
	l.ixmap[newKey] = ix
	return nil
}
