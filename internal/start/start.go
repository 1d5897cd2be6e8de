// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package start provides the fan-out helper Conn uses to run independent
// per-column operations concurrently and wait for all of them.
package start

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// RunAll runs every one of runs concurrently and waits for all of them to
// finish, returning the first error encountered (if any). Every run shares
// one context derived from ctx, which is canceled as soon as any run
// returns an error or ctx itself is canceled; a run that ignores its
// context keeps going until it returns on its own.
func RunAll(ctx context.Context, runs ...func(ctx context.Context) error) error {
	group, ctx := errgroup.WithContext(ctx)
	for _, run := range runs {
		run := run
		group.Go(func() error { return run(ctx) })
	}

	return group.Wait()
}
