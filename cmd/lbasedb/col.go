// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func colCmd(dbPath, configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "col",
		Short: "Manage columns",
	}

	var feed string
	cmd.PersistentFlags().StringVar(&feed, "feed", "", "feed name")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List columns of a feed",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			c, err := openConn(dbPath, configPath)
			if err != nil {
				return err
			}
			cols, err := c.ColList(feed)
			if err != nil {
				return err
			}
			for _, item := range cols {
				fmt.Printf("%s\t%s\n", item.Name(), item.Datatype.String())
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name> <datatype>",
		Short: "Add a column, e.g. col add amount Int64 --feed orders",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			c, err := openConn(dbPath, configPath)
			if err != nil {
				return err
			}
			return c.ColAdd(feed, args[0], args[1])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <name>",
		Short: "Remove a column",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c, err := openConn(dbPath, configPath)
			if err != nil {
				return err
			}
			return c.ColRemove(feed, args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "mv <name> <new-name>",
		Short: "Rename a column",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			c, err := openConn(dbPath, configPath)
			if err != nil {
				return err
			}
			return c.ColRename(feed, args[0], args[1])
		},
	})

	return cmd
}
