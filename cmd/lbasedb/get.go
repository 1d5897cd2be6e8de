// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fomalhaut88/lbasedb/datatype"
)

func getCmd(dbPath, configPath *string) *cobra.Command {
	var feed string
	var ix, size int64
	var cols []string

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Read rows, e.g. get --feed orders --ix 0 --size 2 --col amount --col note",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			c, err := openConn(dbPath, configPath)
			if err != nil {
				return err
			}

			ds, err := c.DataGet(feed, ix, size, cols)
			if err != nil {
				return err
			}

			for _, name := range cols {
				values := make([]string, len(ds[name]))
				for i, u := range ds[name] {
					values[i] = renderDataunit(u)
				}
				fmt.Printf("%s\t%s\n", name, strings.Join(values, ","))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&feed, "feed", "", "feed name")
	cmd.Flags().Int64Var(&ix, "ix", 0, "starting row index")
	cmd.Flags().Int64Var(&size, "size", 0, "number of rows")
	cmd.Flags().StringArrayVar(&cols, "col", nil, "column name (repeatable)")

	return cmd
}

func renderDataunit(u datatype.Dataunit) string {
	switch {
	case u.IsInt64():
		return fmt.Sprintf("%d", u.Int64())
	case u.IsInt32():
		return fmt.Sprintf("%d", u.Int32())
	case u.IsFloat64():
		return fmt.Sprintf("%g", u.Float64())
	case u.IsFloat32():
		return fmt.Sprintf("%g", u.Float32())
	case u.IsString():
		return u.Text()
	default:
		return ""
	}
}
