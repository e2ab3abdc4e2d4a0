package bench_test

import (
	"math"
	"testing"
	"time"

	"connector-bench/bench"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeKnownSample(t *testing.T) {
	rs := bench.Compute([]time.Duration{time.Second, 2 * time.Second, 3 * time.Second})

	assert.InDelta(t, 2.0, rs.Mean, 1e-9)
	assert.InDelta(t, 1.0, rs.Variance, 1e-9)
	assert.InDelta(t, 1.0, rs.Deviation, 1e-9)
	assert.InDelta(t, 1/math.Sqrt(3), rs.Sem, 1e-9)
	assert.InDelta(t, 4.303/math.Sqrt(3), rs.Moe, 1e-9)
	assert.InDelta(t, 4.303/math.Sqrt(3)/2*100, rs.Rme, 1e-6)
	assert.Equal(t, []float64{1, 2, 3}, rs.Sample)

	s := bench.Summarize("mysql", rs)
	assert.Equal(t, "mysql", s.Name)
	assert.InDelta(t, 0.5, s.Iteration, 1e-9)
	assert.Equal(t, rs.Rme, s.Variation)
}

func TestComputeLargeSampleUsesNormalCritical(t *testing.T) {
	samples := make([]time.Duration, 100)
	for i := range samples {
		samples[i] = time.Duration(i%2+1) * time.Millisecond
	}
	rs := bench.Compute(samples)
	assert.InDelta(t, rs.Sem*1.96, rs.Moe, 1e-12)
}

func TestComputeDegenerateSamples(t *testing.T) {
	rs := bench.Compute(nil)
	assert.Zero(t, rs.Mean)
	assert.Zero(t, bench.Summarize("x", rs).Iteration)

	rs = bench.Compute([]time.Duration{0})
	require.Greater(t, rs.Mean, 0.0)
	assert.Zero(t, rs.Rme)
	assert.False(t, math.IsNaN(rs.Deviation))

	s := bench.Summarize("x", bench.Compute([]time.Duration{0, 0, 0}))
	assert.Greater(t, s.Iteration, 0.0)
	assert.GreaterOrEqual(t, s.Variation, 0.0)
}
