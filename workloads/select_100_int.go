package workloads

import (
	"context"

	"connector-bench/bench"
)

var Select100Int = bench.Workload{
	Title:      "select 100 int/varchar(32)",
	DisplaySQL: "select * FROM test100",
	Portable:   true,
	Bench: func(ctx context.Context, t bench.Target) error {
		_, err := t.Query(ctx, "select * FROM test100")
		return err
	},
}

var Select100IntBinary = bench.Workload{
	Title:          "select 100 int/varchar(32) - BINARY",
	DisplaySQL:     "select * FROM test100",
	Portable:       true,
	RequireExecute: true,
	Bench: func(ctx context.Context, t bench.Target) error {
		_, err := t.Execute(ctx, "select * FROM test100")
		return err
	},
}
