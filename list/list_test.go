// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package list

import (
	"path/filepath"
	"testing"

	"github.com/fomalhaut88/lbasedb/codec"
	"github.com/stretchr/testify/require"
)

// item1 is an 8-byte key plus an int64 value, mirroring the scratch
// fixture from the original source's lib.rs test.
type item1 struct {
	key [8]byte
	val int64
}

func (r item1) EncodeBlock() []byte {
	b := make([]byte, 16)
	copy(b[:8], r.key[:])
	copy(b[8:], codec.Int64ToBytes(r.val))
	return b
}

func (r *item1) DecodeBlock(b []byte) {
	copy(r.key[:], b[:8])
	r.val = codec.BytesToInt64(b[8:16])
}

func (r item1) Key() string {
	return codec.BytesToStr(r.key[:])
}

func newItem1(key string, val int64) item1 {
	var r item1
	copy(r.key[:], key)
	r.val = val
	return r
}

func TestListAddDetailModifyRemove(t *testing.T) {
	dir := t.TempDir()
	l, err := Open[item1, *item1, string](filepath.Join(dir, "l1.list"))
	require.NoError(t, err)
	defer l.Close()

	all, err := l.List()
	require.NoError(t, err)
	require.Empty(t, all)

	require.NoError(t, l.Add(newItem1("qweasdrf", 25)))
	require.True(t, l.Exists("qweasdrf"))

	detail, err := l.Detail("qweasdrf")
	require.NoError(t, err)
	require.Equal(t, int64(25), detail.val)

	err = l.Add(newItem1("qweasdrf", 99))
	require.ErrorIs(t, err, ErrAlreadyExists)

	require.NoError(t, l.Modify("qweasdrf", newItem1("12345678", 28)))
	require.False(t, l.Exists("qweasdrf"))
	detail, err = l.Detail("12345678")
	require.NoError(t, err)
	require.Equal(t, int64(28), detail.val)

	require.NoError(t, l.Remove("12345678"))
	require.False(t, l.Exists("12345678"))

	_, err = l.Detail("12345678")
	require.ErrorIs(t, err, ErrNotFound)

	err = l.Remove("12345678")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListRemoveSwapsTail(t *testing.T) {
	dir := t.TempDir()
	l, err := Open[item1, *item1, string](filepath.Join(dir, "l2.list"))
	require.NoError(t, err)
	defer l.Close()

	require.NoError(t, l.Add(newItem1("a", 1)))
	require.NoError(t, l.Add(newItem1("b", 2)))
	require.NoError(t, l.Add(newItem1("c", 3)))

	require.NoError(t, l.Remove("a"))

	all, err := l.List()
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "c", all[0].Key())
	require.Equal(t, "b", all[1].Key())

	m, err := l.Map()
	require.NoError(t, err)
	require.Len(t, m, 2)

	detailB, err := l.Detail("b")
	require.NoError(t, err)
	require.Equal(t, int64(2), detailB.val)
	detailC, err := l.Detail("c")
	require.NoError(t, err)
	require.Equal(t, int64(3), detailC.val)
}

func TestListRemoveTailNoSwap(t *testing.T) {
	dir := t.TempDir()
	l, err := Open[item1, *item1, string](filepath.Join(dir, "l3.list"))
	require.NoError(t, err)
	defer l.Close()

	require.NoError(t, l.Add(newItem1("a", 1)))
	require.NoError(t, l.Add(newItem1("b", 2)))

	require.NoError(t, l.Remove("b"))

	all, err := l.List()
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, "a", all[0].Key())
}
