// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pathutil gives Conn's catalog and data-file paths a single,
// readable construction point.
package pathutil

import "path/filepath"

// Join builds a path from parts the same way filepath.Join does. It exists
// so call sites read as a sequence of logical path segments (root, feed
// name, file name) rather than ad hoc string concatenation.
func Join(parts ...string) string {
	return filepath.Join(parts...)
}
