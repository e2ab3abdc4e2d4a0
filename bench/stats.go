package bench

import (
	"math"
	"time"

	"github.com/montanaflynn/stats"
)

// tTable holds two-sided 95% Student's t critical values indexed by degrees of freedom.
var tTable = [...]float64{
	0, 12.706, 4.303, 3.182, 2.776, 2.571, 2.447, 2.365, 2.306, 2.262, 2.228,
	2.201, 2.179, 2.16, 2.145, 2.131, 2.12, 2.11, 2.101, 2.093, 2.086,
	2.08, 2.074, 2.069, 2.064, 2.06, 2.056, 2.052, 2.048, 2.045, 2.042,
}

func critical(df int) float64 {
	if df < 1 {
		return 0
	}
	if df < len(tTable) {
		return tTable[df]
	}
	return 1.96
}

// Compute derives the sampler statistics from per-sample durations.
func Compute(samples []time.Duration) RawStats {
	data := make(stats.Float64Data, len(samples))
	for i, d := range samples {
		if d < time.Nanosecond {
			d = time.Nanosecond
		}
		data[i] = d.Seconds()
	}
	rs := RawStats{Sample: data}
	if len(data) == 0 {
		return rs
	}

	rs.Mean, _ = stats.Mean(data)
	rs.P50, _ = stats.Percentile(data, 50)
	rs.P99, _ = stats.Percentile(data, 99)
	if len(data) < 2 {
		return rs
	}

	rs.Variance, _ = stats.SampleVariance(data)
	rs.Deviation, _ = stats.StandardDeviationSample(data)
	rs.Sem = rs.Deviation / math.Sqrt(float64(len(data)))
	rs.Moe = rs.Sem * critical(len(data)-1)
	if rs.Mean > 0 {
		rs.Rme = rs.Moe / rs.Mean * 100
	}
	return rs
}

// Summarize turns raw statistics into a result entry for one driver.
func Summarize(name string, rs RawStats) SampleStats {
	s := SampleStats{Name: name, Variation: rs.Rme, Stats: rs}
	if rs.Mean > 0 {
		s.Iteration = 1 / rs.Mean
	}
	return s
}
