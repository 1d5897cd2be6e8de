// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package conn

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/fomalhaut88/lbasedb/dataset"
	"github.com/fomalhaut88/lbasedb/datatype"
)

func TestCreatePushRead(t *testing.T) {
	root := filepath.Join(t.TempDir(), "db")
	c, err := New(root)
	require.NoError(t, err)

	require.NoError(t, c.FeedAdd("xyz"))
	require.NoError(t, c.ColAdd("xyz", "x", "Int64"))
	require.NoError(t, c.ColAdd("xyz", "y", "Float64"))

	err = c.DataPush("xyz", dataset.Dataset{
		"x": {datatype.I(2), datatype.I(5)},
		"y": {datatype.F(2.15), datatype.F(5.55)},
	})
	require.NoError(t, err)

	size, err := c.SizeGet("xyz")
	require.NoError(t, err)
	require.Equal(t, int64(2), size)

	got, err := c.DataGet("xyz", 0, 2, []string{"x", "y"})
	require.NoError(t, err)
	want := dataset.Dataset{
		"x": {datatype.I(2), datatype.I(5)},
		"y": {datatype.F(2.15), datatype.F(5.55)},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(datatype.Dataunit{})); diff != "" {
		t.Fatalf("data_get mismatch (-want +got):\n%s", diff)
	}
}

func TestColumnAddAfterRowsExist(t *testing.T) {
	root := filepath.Join(t.TempDir(), "db")
	c, err := New(root)
	require.NoError(t, err)

	require.NoError(t, c.FeedAdd("xyz"))
	require.NoError(t, c.ColAdd("xyz", "x", "Int64"))
	require.NoError(t, c.ColAdd("xyz", "y", "Float64"))
	require.NoError(t, c.DataPush("xyz", dataset.Dataset{
		"x": {datatype.I(2), datatype.I(5)},
		"y": {datatype.F(2.15), datatype.F(5.55)},
	}))

	require.NoError(t, c.ColAdd("xyz", "z", "Int32"))

	size, err := c.SizeGet("xyz")
	require.NoError(t, err)
	require.Equal(t, int64(2), size)

	got, err := c.DataGet("xyz", 0, 2, []string{"z"})
	require.NoError(t, err)
	want := dataset.Dataset{"z": {datatype.I32(0), datatype.I32(0)}}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(datatype.Dataunit{})); diff != "" {
		t.Fatalf("data_get mismatch (-want +got):\n%s", diff)
	}

	info, err := os.Stat(filepath.Join(root, "xyz", "z.col"))
	require.NoError(t, err)
	require.Equal(t, int64(8), info.Size())
}

func TestRenamePreservesData(t *testing.T) {
	root := filepath.Join(t.TempDir(), "db")
	c, err := New(root)
	require.NoError(t, err)

	require.NoError(t, c.FeedAdd("xyz"))
	require.NoError(t, c.ColAdd("xyz", "x", "Int64"))
	require.NoError(t, c.DataPush("xyz", dataset.Dataset{
		"x": {datatype.I(2), datatype.I(5)},
	}))

	require.NoError(t, c.FeedRename("xyz", "abc"))
	require.NoError(t, c.ColRename("abc", "x", "x1"))

	got, err := c.DataGet("abc", 0, 2, []string{"x1"})
	require.NoError(t, err)
	want := dataset.Dataset{"x1": {datatype.I(2), datatype.I(5)}}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(datatype.Dataunit{})); diff != "" {
		t.Fatalf("data_get mismatch (-want +got):\n%s", diff)
	}

	require.NoDirExists(t, filepath.Join(root, "xyz"))
	require.NoFileExists(t, filepath.Join(root, "abc", "x.col"))
}

func TestPatchVsSaveSemantics(t *testing.T) {
	root := filepath.Join(t.TempDir(), "db")
	c, err := New(root)
	require.NoError(t, err)

	require.NoError(t, c.FeedAdd("abc"))
	require.NoError(t, c.ColAdd("abc", "x1", "Int64"))
	require.NoError(t, c.ColAdd("abc", "y", "Float64"))
	require.NoError(t, c.DataPush("abc", dataset.Dataset{
		"x1": {datatype.I(2), datatype.I(5)},
		"y":  {datatype.F(2.15), datatype.F(5.55)},
	}))

	require.NoError(t, c.DataSave("abc", 0, dataset.Dataset{
		"y": {datatype.F(9.0), datatype.F(9.0)},
	}))
	got, err := c.DataGet("abc", 0, 2, []string{"x1", "y"})
	require.NoError(t, err)
	want := dataset.Dataset{
		"x1": {datatype.I(0), datatype.I(0)},
		"y":  {datatype.F(9.0), datatype.F(9.0)},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(datatype.Dataunit{})); diff != "" {
		t.Fatalf("data_save mismatch (-want +got):\n%s", diff)
	}

	require.NoError(t, c.DataPatch("abc", 0, dataset.Dataset{
		"y": {datatype.F(1.0), datatype.F(1.0)},
	}))
	got, err = c.DataGet("abc", 0, 2, []string{"x1", "y"})
	require.NoError(t, err)
	want = dataset.Dataset{
		"x1": {datatype.I(0), datatype.I(0)},
		"y":  {datatype.F(1.0), datatype.F(1.0)},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(datatype.Dataunit{})); diff != "" {
		t.Fatalf("data_patch mismatch (-want +got):\n%s", diff)
	}
}

func TestRaggedDatasetRejected(t *testing.T) {
	root := filepath.Join(t.TempDir(), "db")
	c, err := New(root)
	require.NoError(t, err)

	require.NoError(t, c.FeedAdd("abc"))
	require.NoError(t, c.ColAdd("abc", "x", "Int64"))
	require.NoError(t, c.ColAdd("abc", "y", "Float64"))

	err = c.DataPush("abc", dataset.Dataset{
		"x": {datatype.I(1)},
		"y": {datatype.F(1.0), datatype.F(2.0)},
	})
	require.ErrorIs(t, err, dataset.ErrInvalidData)

	size, err := c.SizeGet("abc")
	require.NoError(t, err)
	require.Equal(t, int64(0), size)
}

func TestFeedAndColCatalogErrors(t *testing.T) {
	root := filepath.Join(t.TempDir(), "db")
	c, err := New(root)
	require.NoError(t, err)

	require.NoError(t, c.FeedAdd("xyz"))
	require.ErrorIs(t, c.FeedAdd("xyz"), ErrAlreadyExists)
	require.ErrorIs(t, c.FeedAdd("1bad"), ErrInvalidInput)
	require.ErrorIs(t, c.FeedRemove("nope"), ErrNotFound)

	require.ErrorIs(t, c.ColAdd("nope", "a", "Int64"), ErrNotFound)
	require.NoError(t, c.ColAdd("xyz", "a", "Int64"))
	require.ErrorIs(t, c.ColAdd("xyz", "a", "Int64"), ErrAlreadyExists)
	require.ErrorIs(t, c.ColAdd("xyz", "b", "Boolean"), ErrInvalidInput)

	require.NoError(t, c.FeedRemove("xyz"))
	require.False(t, c.FeedExists("xyz"))
}

func TestReopenPreservesState(t *testing.T) {
	root := filepath.Join(t.TempDir(), "db")
	c, err := New(root)
	require.NoError(t, err)
	require.NoError(t, c.FeedAdd("xyz"))
	require.NoError(t, c.ColAdd("xyz", "x", "Int64"))
	require.NoError(t, c.DataPush("xyz", dataset.Dataset{"x": {datatype.I(7), datatype.I(8)}}))

	c2, err := New(root)
	require.NoError(t, err)
	size, err := c2.SizeGet("xyz")
	require.NoError(t, err)
	require.Equal(t, int64(2), size)

	got, err := c2.DataGet("xyz", 0, 2, []string{"x"})
	require.NoError(t, err)
	want := dataset.Dataset{"x": {datatype.I(7), datatype.I(8)}}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(datatype.Dataunit{})); diff != "" {
		t.Fatalf("reopen data mismatch (-want +got):\n%s", diff)
	}
}
