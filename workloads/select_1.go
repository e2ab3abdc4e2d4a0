package workloads

import (
	"context"

	"connector-bench/bench"
)

var Select1 = bench.Workload{
	Title:      "select 1",
	DisplaySQL: "SELECT 1",
	Portable:   true,
	Bench: func(ctx context.Context, t bench.Target) error {
		_, err := t.Query(ctx, "SELECT 1")
		return err
	},
}
