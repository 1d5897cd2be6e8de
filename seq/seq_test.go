// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package seq

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeqPushGetUpdate(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "s1.seq"), 4)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Resize(8))
	size, err := s.Size()
	require.NoError(t, err)
	require.Equal(t, int64(8), size)

	ix, err := s.Push([]byte("qwer"))
	require.NoError(t, err)
	require.Equal(t, int64(8), ix)

	size, err = s.Size()
	require.NoError(t, err)
	require.Equal(t, int64(9), size)

	block := make([]byte, 4)
	require.NoError(t, s.Get(8, block))
	require.Equal(t, "qwer", string(block))

	require.NoError(t, s.Update(6, []byte("aaaa")))
	require.NoError(t, s.Get(6, block))
	require.Equal(t, "aaaa", string(block))
}

func TestSeqGetPastEndFails(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "s2.seq"), 4)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Resize(2))
	block := make([]byte, 4)
	err = s.Get(5, block)
	require.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestSeqBufferNotMultipleOfBlockSize(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "s3.seq"), 4)
	require.NoError(t, err)
	defer s.Close()

	err = s.Update(0, []byte("abc"))
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSeqReopenPreservesData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s4.seq")

	s1, err := Open(path, 4)
	require.NoError(t, err)
	_, err = s1.Push([]byte("abcd"))
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path, 4)
	require.NoError(t, err)
	defer s2.Close()
	size, err := s2.Size()
	require.NoError(t, err)
	require.Equal(t, int64(1), size)
}
