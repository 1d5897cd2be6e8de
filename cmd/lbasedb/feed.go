// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func feedCmd(dbPath, configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Manage feeds",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List feeds",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			c, err := openConn(dbPath, configPath)
			if err != nil {
				return err
			}
			for _, item := range c.FeedList() {
				fmt.Printf("%s\t%d\n", item.Name(), item.Size)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Create a feed",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c, err := openConn(dbPath, configPath)
			if err != nil {
				return err
			}
			return c.FeedAdd(args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <name>",
		Short: "Remove a feed",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c, err := openConn(dbPath, configPath)
			if err != nil {
				return err
			}
			return c.FeedRemove(args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "mv <name> <new-name>",
		Short: "Rename a feed",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			c, err := openConn(dbPath, configPath)
			if err != nil {
				return err
			}
			return c.FeedRename(args[0], args[1])
		},
	})

	return cmd
}
