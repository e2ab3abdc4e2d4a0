package bench_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"connector-bench/bench"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultsRecordKeepsOrder(t *testing.T) {
	r := bench.NewResults()
	r.Record("select 1", bench.SampleStats{Name: "mysql", Iteration: 10})
	r.Record("do 1", bench.SampleStats{Name: "mysql", Iteration: 20})
	r.Record("select 1", bench.SampleStats{Name: "mymysql", Iteration: 5})

	assert.Equal(t, []string{"select 1", "do 1"}, r.Titles())
	got := r.Get("select 1")
	require.Len(t, got, 2)
	assert.Equal(t, "mysql", got[0].Name)
	assert.Equal(t, "mymysql", got[1].Name)
}

func TestResultsFlushIsStable(t *testing.T) {
	r := bench.NewResults()
	for _, title := range []string{"b", "a", "c"} {
		r.Record(title, bench.SampleStats{
			Name: "mysql", Iteration: 1234.5, Variation: 0.7,
			Stats: bench.RawStats{Mean: 0.00081, Sample: []float64{0.0008, 0.00082}},
		})
	}

	path := filepath.Join(t.TempDir(), "bench_results_go.json")
	require.NoError(t, r.Flush(path))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, r.Flush(path))
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var decoded map[string][]map[string]any
	require.NoError(t, json.Unmarshal(first, &decoded))
	require.Len(t, decoded, 3)
	entry := decoded["a"][0]
	assert.Equal(t, "mysql", entry["name"])
	assert.InDelta(t, 1234.5, entry["iteration"], 1e-9)
	assert.InDelta(t, 0.7, entry["variation"], 1e-9)
	assert.Contains(t, entry["stats"], "rme")
	assert.Contains(t, entry["stats"], "sample")
}

func TestResultsFlushOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"stale":[]}`+"\n\n\n\n\n\n"), 0o644))

	require.NoError(t, bench.NewResults().Flush(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}

func TestResultsFlushReportsWriteError(t *testing.T) {
	err := bench.NewResults().Flush(filepath.Join(t.TempDir(), "missing", "out.json"))
	require.Error(t, err)
}
