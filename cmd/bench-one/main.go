package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"connector-bench/app"
	"connector-bench/workloads"
)

// Runs the workload named by BENCH_WORKLOAD and prints its results.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	w, err := workloads.Find(a.Config.Workload)
	if err != nil {
		a.Log.Fatal().Err(err).Msg("select workload")
	}
	if err := a.Seed(ctx); err != nil {
		a.Log.Fatal().Err(err).Msg("seed schema")
	}

	if _, err := a.Suite.RunSingle(ctx, w); err != nil {
		a.Log.Error().Err(err).Msg("workload incomplete")
	}
}
