package workloads

import (
	"context"

	"connector-bench/bench"
)

var Do1 = bench.Workload{
	Title:      "do 1",
	DisplaySQL: "DO 1",
	Bench: func(ctx context.Context, t bench.Target) error {
		return t.Exec(ctx, "DO 1")
	},
}
