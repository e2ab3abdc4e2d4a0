package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"connector-bench/app"
	"connector-bench/bench"
	"connector-bench/workloads"
)

// Runs every workload against every available driver and writes the result file.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := a.Seed(ctx); err != nil {
		a.Log.Fatal().Err(err).Msg("seed schema")
	}

	results := bench.NewResults()
	if err := a.Suite.RunAll(ctx, workloads.All(), results, a.Config.ResultPath); err != nil {
		a.Log.Fatal().Err(err).Msg("benchmark run failed")
	}
}
