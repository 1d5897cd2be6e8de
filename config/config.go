// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the TOML settings lbasedb's command-line tool runs
// against.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// ErrMissingRoot is returned when a config file does not set root.
var ErrMissingRoot = errors.New("config: missing root directory")

// Config holds the settings needed to open a Conn.
type Config struct {
	// Root is the directory Conn is rooted at.
	Root string `toml:"root"`
	// DefaultSize is read from default_feed_size. Nothing in this module
	// applies it: conn.FeedAdd always creates feeds with size 0.
	DefaultSize int64 `toml:"default_feed_size"`
	// OpenTimeout is OpenTimeoutSeconds as a time.Duration. Not itself a
	// TOML field. Nothing in this module reads it; conn.New takes no timeout.
	OpenTimeout        time.Duration `toml:"-"`
	OpenTimeoutSeconds int64         `toml:"open_timeout_seconds"`
}

// Load reads and validates the TOML file at path.
func Load(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: load %q: %w", path, err)
	}
	if cfg.Root == "" {
		return Config{}, fmt.Errorf("config: load %q: %w", path, ErrMissingRoot)
	}
	cfg.OpenTimeout = time.Duration(cfg.OpenTimeoutSeconds) * time.Second
	return cfg, nil
}
