package bench

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
)

// Sampler times repeated calls of a function.
// Sampling stops once MinSamples calls completed and either MaxTime elapsed
// or the relative margin of error fell to TargetRME percent.
type Sampler struct {
	MinSamples int
	MaxTime    time.Duration
	TargetRME  float64
}

func DefaultSampler() Sampler {
	return Sampler{MinSamples: 300, MaxTime: 5 * time.Second, TargetRME: 1}
}

func (s Sampler) done(n int, rme float64, elapsed time.Duration) bool {
	if n < s.MinSamples {
		return false
	}
	return elapsed >= s.MaxTime || rme <= s.TargetRME
}

// Sample calls fn sequentially; a call never starts before the previous one returned.
// The first error aborts sampling.
func (s Sampler) Sample(ctx context.Context, fn func(ctx context.Context) error) (RawStats, error) {
	need := s.MinSamples
	if need < 1 {
		need = 1
	}
	samples := make([]time.Duration, 0, need)
	var run welford
	start := time.Now()

	for {
		if err := ctx.Err(); err != nil {
			return RawStats{}, err
		}
		qStart := time.Now()
		if err := fn(ctx); err != nil {
			return RawStats{}, fmt.Errorf("sample %d: %w", len(samples)+1, err)
		}
		d := time.Since(qStart)
		samples = append(samples, d)
		run.add(d)

		if len(samples) >= need && s.done(run.n, run.rme(), time.Since(start)) {
			return Compute(samples), nil
		}
	}
}

// welford keeps a running mean and variance so the stop rule stays O(1) per sample.
type welford struct {
	n    int
	mean float64
	m2   float64
}

func (w *welford) add(d time.Duration) {
	if d < time.Nanosecond {
		d = time.Nanosecond
	}
	x := d.Seconds()
	w.n++
	delta := x - w.mean
	w.mean += delta / float64(w.n)
	w.m2 += delta * (x - w.mean)
}

func (w *welford) rme() float64 {
	if w.n < 2 || w.mean <= 0 {
		return 0
	}
	sem := math.Sqrt(w.m2/float64(w.n-1)) / math.Sqrt(float64(w.n))
	return sem * critical(w.n-1) / w.mean * 100
}

// Runner measures one workload against its provisioned targets.
type Runner struct {
	Sampler Sampler
	Log     zerolog.Logger

	// Reference names the warmup driver. When set and the first target is a
	// different driver, the warmup is skipped.
	Reference string
}

// Run samples the reference target once as an unrecorded warmup, then every target
// in order. Each target is closed as soon as its measurement ends. A failing target
// is skipped; its error is joined into the returned error.
func (r *Runner) Run(ctx context.Context, w Workload, targets []Target) ([]SampleStats, error) {
	closed := make([]bool, len(targets))
	release := func(i int) {
		if closed[i] {
			return
		}
		closed[i] = true
		if err := targets[i].Close(); err != nil {
			r.Log.Warn().Err(err).Str("driver", targets[i].Name()).Msg("close target")
		}
	}
	defer func() {
		for i := range targets {
			release(i)
		}
	}()

	if len(targets) == 0 {
		return nil, fmt.Errorf("%q: no targets", w.Title)
	}

	bench := func(t Target) func(ctx context.Context) error {
		return func(ctx context.Context) error { return w.Bench(ctx, t) }
	}

	var errs []error
	warm := r.Log.With().Str("workload", w.Title).Str("driver", targets[0].Name()).Logger()
	if r.Reference != "" && targets[0].Name() != r.Reference {
		warm.Warn().Str("reference", r.Reference).Msg("reference not provisioned, warmup skipped")
	} else {
		warm.Debug().Msg("warmup")
		if _, err := r.Sampler.Sample(ctx, bench(targets[0])); err != nil {
			warm.Error().Err(err).Msg("warmup failed")
			errs = append(errs, fmt.Errorf("warmup %s: %w", targets[0].Name(), err))
			release(0)
		}
	}

	var out []SampleStats
	for i, t := range targets {
		if closed[i] {
			continue
		}
		log := r.Log.With().Str("workload", w.Title).Str("driver", t.Name()).Logger()
		log.Debug().Msg("sampling")

		rs, err := r.Sampler.Sample(ctx, bench(t))
		release(i)
		if err != nil {
			log.Error().Err(err).Msg("sampling failed, driver skipped")
			errs = append(errs, fmt.Errorf("%s: %w", t.Name(), err))
			if ctx.Err() != nil {
				break
			}
			continue
		}

		s := Summarize(t.Name(), rs)
		log.Info().Float64("ops", s.Iteration).Float64("rme", s.Variation).Int("samples", len(rs.Sample)).Msg("measured")
		out = append(out, s)
	}
	return out, errors.Join(errs...)
}
