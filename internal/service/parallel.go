package service

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// allOf runs fns concurrently and waits for every one of them. The first
// error returned wins and cancels the context shared by the rest.
func allOf(ctx context.Context, fns ...func(ctx context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, fn := range fns {
		g.Go(func() error { return fn(gctx) })
	}
	return g.Wait()
}
