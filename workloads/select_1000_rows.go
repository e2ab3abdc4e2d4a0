package workloads

import (
	"context"
	"fmt"

	"connector-bench/bench"
)

const select1000 = "select * from 1000rows"

func expectRows(n, want int) error {
	if n != want {
		return fmt.Errorf("got %d rows, want %d", n, want)
	}
	return nil
}

var Select1000Rows = bench.Workload{
	Title:      "select 1000 rows",
	DisplaySQL: "select * from 1000 rows (int + string(32))",
	Bench: func(ctx context.Context, t bench.Target) error {
		n, err := t.Query(ctx, select1000)
		if err != nil {
			return err
		}
		return expectRows(n, 1000)
	},
}

var Select1000RowsBinary = bench.Workload{
	Title:          "select 1000 rows - BINARY",
	DisplaySQL:     "select * from 1000 rows (int + string(32)) - BINARY",
	RequireExecute: true,
	Bench: func(ctx context.Context, t bench.Target) error {
		n, err := t.Execute(ctx, select1000)
		if err != nil {
			return err
		}
		return expectRows(n, 1000)
	},
}
