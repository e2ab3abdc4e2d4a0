package workloads

import (
	"context"
	"strings"

	"connector-bench/bench"
)

var (
	do1000SQL  = "DO ?" + strings.Repeat(",?", 999)
	do1000Args = func() []any {
		args := make([]any, 1000)
		for i := range args {
			args[i] = i + 1
		}
		return args
	}()
)

var Do1000Params = bench.Workload{
	Title:      "do 1000 parameters",
	DisplaySQL: "DO ?, ?, ... (1000 parameters)",
	Bench: func(ctx context.Context, t bench.Target) error {
		return t.Exec(ctx, do1000SQL, do1000Args...)
	},
}

var Do1000ParamsBinary = bench.Workload{
	Title:          "do 1000 parameters - BINARY",
	DisplaySQL:     "DO ?, ?, ... (1000 parameters) - BINARY",
	RequireExecute: true,
	Bench: func(ctx context.Context, t bench.Target) error {
		_, err := t.Execute(ctx, do1000SQL, do1000Args...)
		return err
	},
}
