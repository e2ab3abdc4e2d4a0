// Package app wires configuration, drivers and the suite for the entry points.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"connector-bench/bench"
	"connector-bench/config"
	"connector-bench/my"
	"connector-bench/pg"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type App struct {
	Config   config.Config
	Log      zerolog.Logger
	Registry *bench.Registry
	Suite    *bench.Suite
}

// NewLogger builds the console logger; every event carries the run id.
func NewLogger(w io.Writer, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}).
		Level(lvl).
		With().Timestamp().Str("run", uuid.NewString()).
		Logger()
}

// New loads the configuration and builds the driver registry and suite.
// Results and comparison boxes are printed to out.
func New(out io.Writer) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := NewLogger(os.Stderr, cfg.LogLevel)

	drivers := append(my.Drivers(cfg.MySQL), pg.Drivers(cfg.Postgres)...)
	reg, err := bench.NewRegistry(cfg.Drivers, drivers...)
	if err != nil {
		return nil, fmt.Errorf("driver registry: %w", err)
	}
	for _, d := range drivers {
		log.Debug().Str("driver", d.Name).Bool("present", reg.Present(d.Name)).Msg("registry")
	}

	log.Info().
		Str("host", cfg.MySQL.Host).Int("port", cfg.MySQL.Port).Str("database", cfg.MySQL.Database).
		Int("min_samples", cfg.Sampler.MinSamples).Dur("max_time", cfg.Sampler.MaxTime).
		Msg("configuration")

	return &App{
		Config:   cfg,
		Log:      log,
		Registry: reg,
		Suite: &bench.Suite{
			Provisioner: &bench.Provisioner{Registry: reg, Log: log},
			Runner:      &bench.Runner{Sampler: cfg.Sampler, Log: log, Reference: reg.Reference().Name},
			Log:         log,
			Out:         out,
		},
	}, nil
}

// Seed creates the read-only tables the select workloads need.
func (a *App) Seed(ctx context.Context) error {
	cctx, cancel := context.WithTimeout(ctx, bench.ConnectTimeout)
	db, err := my.Connect(cctx, a.Config.MySQL, 1)
	cancel()
	if err != nil {
		return fmt.Errorf("connect mysql: %w", err)
	}
	defer db.Close()
	if err := my.SeedSchema(ctx, db, a.Log); err != nil {
		return err
	}

	if !a.Registry.Present("pgx") && !a.Registry.Present("pq") {
		return nil
	}
	cctx, cancel = context.WithTimeout(ctx, bench.ConnectTimeout)
	pool, err := pg.Connect(cctx, a.Config.Postgres, 1)
	cancel()
	if err != nil {
		a.Log.Warn().Err(err).Msg("postgres schema not seeded")
		return nil
	}
	defer pool.Close()
	if err := pg.SeedSchema(ctx, pool, a.Log); err != nil {
		a.Log.Warn().Err(err).Msg("postgres schema not seeded")
	}
	return nil
}
