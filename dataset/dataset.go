// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dataset defines Dataset, the column-name-to-values map used to
// move whole rows of heterogeneous columns in and out of the engine in one
// call.
package dataset

import (
	"errors"
	"fmt"

	"github.com/fomalhaut88/lbasedb/datatype"
)

// ErrInvalidData is returned when a Dataset's column vectors do not all
// share the same length.
var ErrInvalidData = errors.New("dataset: invalid data")

// Dataset maps a column name to its column of values. A valid Dataset has
// every value slice the same length; Size enforces this.
type Dataset map[string][]datatype.Dataunit

// Size returns the row count shared by every column in ds. An empty
// Dataset has size 0. Columns of mismatched length return ErrInvalidData.
func Size(ds Dataset) (int, error) {
	size := -1
	for name, v := range ds {
		if size == -1 {
			size = len(v)
			continue
		}
		if len(v) != size {
			return 0, fmt.Errorf("dataset: column %q has length %d, want %d: %w", name, len(v), size, ErrInvalidData)
		}
	}
	if size == -1 {
		return 0, nil
	}
	return size, nil
}
