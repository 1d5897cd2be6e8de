// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadValid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lbasedb.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
root = "/var/lib/lbasedb"
default_feed_size = 0
open_timeout_seconds = 5
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/var/lib/lbasedb", cfg.Root)
	require.Equal(t, int64(0), cfg.DefaultSize)
	require.Equal(t, int64(5), cfg.OpenTimeoutSeconds)
}

func TestLoadMissingRoot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lbasedb.toml")
	require.NoError(t, os.WriteFile(path, []byte(`default_feed_size = 10`), 0o644))

	_, err := Load(path)
	require.ErrorIs(t, err, ErrMissingRoot)
}
