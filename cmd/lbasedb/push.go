// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fomalhaut88/lbasedb/dataset"
	"github.com/fomalhaut88/lbasedb/datatype"
)

func pushCmd(dbPath, configPath *string) *cobra.Command {
	var feed string
	var cols []string

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Append rows, e.g. push --feed orders --col amount=2,5 --col note=a,b",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			c, err := openConn(dbPath, configPath)
			if err != nil {
				return err
			}

			colItems, err := c.ColList(feed)
			if err != nil {
				return err
			}
			datatypes := make(map[string]datatype.Datatype, len(colItems))
			for _, item := range colItems {
				datatypes[item.Name()] = item.Datatype
			}

			ds, err := parseDatasetFlags(cols, datatypes)
			if err != nil {
				return err
			}
			return c.DataPush(feed, ds)
		},
	}

	cmd.Flags().StringVar(&feed, "feed", "", "feed name")
	cmd.Flags().StringArrayVar(&cols, "col", nil, "name=v1,v2,... (repeatable)")

	return cmd
}

func parseDatasetFlags(cols []string, datatypes map[string]datatype.Datatype) (dataset.Dataset, error) {
	ds := make(dataset.Dataset, len(cols))
	for _, spec := range cols {
		name, rawValues, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("lbasedb: --col %q: expected name=v1,v2,...", spec)
		}
		dt, ok := datatypes[name]
		if !ok {
			return nil, fmt.Errorf("lbasedb: --col %q: unknown column %q", spec, name)
		}

		var values []datatype.Dataunit
		if rawValues != "" {
			for _, raw := range strings.Split(rawValues, ",") {
				u, err := parseDataunit(dt, raw)
				if err != nil {
					return nil, fmt.Errorf("lbasedb: --col %q: %w", spec, err)
				}
				values = append(values, u)
			}
		}
		ds[name] = values
	}
	return ds, nil
}

func parseDataunit(dt datatype.Datatype, raw string) (datatype.Dataunit, error) {
	switch dt.Kind {
	case datatype.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return datatype.Dataunit{}, err
		}
		return datatype.I(n), nil
	case datatype.Int32:
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return datatype.Dataunit{}, err
		}
		return datatype.I32(int32(n)), nil
	case datatype.Float64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return datatype.Dataunit{}, err
		}
		return datatype.F(f), nil
	case datatype.Float32:
		f, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return datatype.Dataunit{}, err
		}
		return datatype.F32(float32(f)), nil
	default:
		return datatype.S(raw), nil
	}
}
