// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package catalog

import (
	"testing"

	"github.com/fomalhaut88/lbasedb/datatype"
	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	valid := []string{"a", "_x", "feed1", "feed_1.col_2", "A.B.C"}
	for _, name := range valid {
		require.NoError(t, ValidateName(name), name)
	}

	invalid := []string{"", "1feed", "feed-1", "feed.", ".feed", "feed..col", "feed 1"}
	for _, name := range invalid {
		require.ErrorIs(t, ValidateName(name), ErrInvalidName, name)
	}
}

func TestFeedItemRoundTrip(t *testing.T) {
	f := NewFeedItem("events")
	require.Equal(t, "events", f.Name())
	require.Equal(t, "events", f.Key())
	require.Equal(t, int64(0), f.Size)

	f.Size = 42
	block := f.EncodeBlock()
	require.Len(t, block, feedItemBlockSize)

	var decoded FeedItem
	decoded.DecodeBlock(block)
	require.Equal(t, "events", decoded.Name())
	require.Equal(t, int64(42), decoded.Size)

	renamed := decoded.Rename("events2")
	require.Equal(t, "events2", renamed.Name())
	require.Equal(t, int64(42), renamed.Size)
}

func TestColItemRoundTrip(t *testing.T) {
	dt := datatype.Datatype{Kind: datatype.Bytes, N: 16}
	c := NewColItem("payload", dt)
	require.Equal(t, "payload", c.Name())
	require.Equal(t, "payload", c.Key())
	require.Equal(t, dt, c.Datatype)

	block := c.EncodeBlock()
	require.Len(t, block, colItemBlockSize)

	var decoded ColItem
	decoded.DecodeBlock(block)
	require.Equal(t, "payload", decoded.Name())
	require.Equal(t, dt, decoded.Datatype)

	renamed := decoded.Rename("payload2")
	require.Equal(t, "payload2", renamed.Name())
	require.Equal(t, dt, renamed.Datatype)
}

func TestColItemInt64Datatype(t *testing.T) {
	c := NewColItem("amount", datatype.Datatype{Kind: datatype.Int64})
	block := c.EncodeBlock()

	var decoded ColItem
	decoded.DecodeBlock(block)
	require.Equal(t, datatype.Int64, decoded.Datatype.Kind)
	require.Equal(t, 8, decoded.Datatype.Size())
}
