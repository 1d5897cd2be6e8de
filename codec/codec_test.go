// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInt64RoundTrip(t *testing.T) {
	require.Equal(t, int64(65), BytesToInt64(Int64ToBytes(65)))
	require.Equal(t, []byte{65, 0, 0, 0, 0, 0, 0, 0}, Int64ToBytes(65))
}

func TestInt32RoundTrip(t *testing.T) {
	require.Equal(t, int32(65), BytesToInt32(Int32ToBytes(65)))
	require.Equal(t, []byte{65, 0, 0, 0}, Int32ToBytes(65))
}

func TestFloat64RoundTrip(t *testing.T) {
	require.InDelta(t, 2.718281828, BytesToFloat64(Float64ToBytes(2.718281828)), 1e-12)
	require.Equal(t, []byte{155, 145, 4, 139, 10, 191, 5, 64}, Float64ToBytes(2.718281828))
}

func TestFloat32RoundTrip(t *testing.T) {
	require.InDelta(t, 2.7182818, float64(BytesToFloat32(Float32ToBytes(2.7182818))), 1e-6)
	require.Equal(t, []byte{84, 248, 45, 64}, Float32ToBytes(2.7182818))
}

func TestStrToBytes(t *testing.T) {
	require.Equal(t, []byte{113, 119, 101, 114}, StrToBytes("qwer", 4))
	require.Equal(t, []byte{113, 119, 101, 114}, StrToBytes("qwerty", 4))
	require.Equal(t, []byte{113, 119, 101, 0}, StrToBytes("qwe", 4))
}

func TestBytesToStr(t *testing.T) {
	require.Equal(t, "qwer", BytesToStr([]byte{113, 119, 101, 114}))
	require.Equal(t, "qwe", BytesToStr([]byte{113, 119, 101, 0, 0}))
}
