// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command lbasedb is a thin administration CLI over one lbasedb directory:
// manage feeds and columns, and push or read rows. It opens one Conn per
// invocation and performs exactly one operation before exiting.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fomalhaut88/lbasedb/config"
	"github.com/fomalhaut88/lbasedb/conn"
)

var errMissingRoot = errors.New("lbasedb: --db or --config is required")

func main() {
	var dbPath string
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "lbasedb",
		Short: "Administer an lbasedb data directory",
	}
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database root directory")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")

	rootCmd.AddCommand(feedCmd(&dbPath, &configPath))
	rootCmd.AddCommand(colCmd(&dbPath, &configPath))
	rootCmd.AddCommand(pushCmd(&dbPath, &configPath))
	rootCmd.AddCommand(getCmd(&dbPath, &configPath))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openConn(dbPath, configPath *string) (*conn.Conn, error) {
	root := *dbPath
	if root == "" && *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			return nil, fmt.Errorf("lbasedb: %w", err)
		}
		root = cfg.Root
	}
	if root == "" {
		return nil, errMissingRoot
	}
	c, err := conn.New(root)
	if err != nil {
		return nil, fmt.Errorf("lbasedb: open %q: %w", root, err)
	}
	return c, nil
}
