package bench

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// Suite sequences workloads: a workload's targets are released before the next starts.
type Suite struct {
	Provisioner *Provisioner
	Runner      *Runner
	Log         zerolog.Logger
	Out         io.Writer
}

// RunSingle measures one workload and prints the results without persisting them.
func (s *Suite) RunSingle(ctx context.Context, w Workload) ([]SampleStats, error) {
	stats, err := s.run(ctx, w)
	if len(stats) > 0 {
		PrintWorkload(s.Out, w, stats)
	}
	return stats, err
}

// RunAll measures every workload in order, records into results and flushes
// them to path once at the end. Workload failures are logged, not fatal.
func (s *Suite) RunAll(ctx context.Context, ws []Workload, results *Results, path string) error {
	for i, w := range ws {
		log := s.Log.With().Str("workload", w.Title).Logger()
		log.Info().Msgf("[%d/%d] starting", i+1, len(ws))

		stats, err := s.run(ctx, w)
		for _, st := range stats {
			results.Record(w.Title, st)
		}
		if err != nil {
			log.Error().Err(err).Msg("workload incomplete")
		}
		if ctx.Err() != nil {
			break
		}
	}

	if err := results.Flush(path); err != nil {
		return err
	}
	s.Log.Info().Str("path", path).Int("workloads", len(results.Titles())).Msg("results written")
	return ctx.Err()
}

func (s *Suite) run(ctx context.Context, w Workload) ([]SampleStats, error) {
	if w.Init != nil {
		if err := s.withReference(ctx, w.Init); err != nil {
			return nil, fmt.Errorf("init: %w", err)
		}
	}

	stats, err := s.measure(ctx, w)
	for _, st := range stats {
		fmt.Fprintf(s.Out, "'%s' %s %.0f ±%.1f%%\n", w.Title, st.Name, st.Iteration, st.Variation)
	}

	if w.Cleanup != nil {
		if cerr := s.withReference(ctx, w.Cleanup); cerr != nil {
			err = errors.Join(err, fmt.Errorf("cleanup: %w", cerr))
		}
	}
	return stats, err
}

func (s *Suite) measure(ctx context.Context, w Workload) ([]SampleStats, error) {
	targets, err := s.Provisioner.Provision(ctx, w)
	if err != nil {
		return nil, err
	}
	return s.Runner.Run(ctx, w, targets)
}

func (s *Suite) withReference(ctx context.Context, fn func(context.Context, Target) error) (err error) {
	t, err := s.Provisioner.OpenReference(ctx)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, t.Close())
	}()
	return fn(ctx, t)
}
