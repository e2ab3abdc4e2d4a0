package workloads

import (
	"context"

	"connector-bench/bench"

	"golang.org/x/sync/errgroup"
)

const (
	poolSize  = 16
	poolTasks = 100
)

// Select1Pool issues ConcurrentTasks queries at once against a pool; the whole
// fan-out counts as one sample.
var Select1Pool = bench.Workload{
	Title:           "SELECT 1 - pool (16 connections, 100 concurrent)",
	DisplaySQL:      "SELECT 1 (pooled)",
	RequiresPool:    true,
	PoolSize:        poolSize,
	ConcurrentTasks: poolTasks,
	Portable:        true,
	Bench: func(ctx context.Context, t bench.Target) error {
		return fanOut(ctx, t, poolTasks, "SELECT 1")
	},
}

func fanOut(ctx context.Context, t bench.Target, tasks int, query string) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < tasks; i++ {
		g.Go(func() error {
			_, err := t.Query(ctx, query)
			return err
		})
	}
	return g.Wait()
}
