package app

import (
	"bytes"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, "warn")
	assert.Equal(t, zerolog.WarnLevel, log.GetLevel())

	log.Info().Msg("hidden")
	log.Warn().Str("driver", "pq").Msg("shown")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "driver=")
	assert.Contains(t, out, "pq")
	assert.Contains(t, out, "run=")
}

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	for _, lvl := range []string{"", "loud"} {
		assert.Equal(t, zerolog.InfoLevel, NewLogger(&bytes.Buffer{}, lvl).GetLevel(), lvl)
	}
}

func TestNew(t *testing.T) {
	t.Setenv("BENCH_CONFIG", "")
	t.Setenv("TEST_PG_HOST", "")
	t.Setenv("BENCH_DRIVERS", "")

	a, err := New(&bytes.Buffer{})
	require.NoError(t, err)
	assert.True(t, a.Registry.Present("mysql"))
	assert.True(t, a.Registry.Present("mymysql"))
	assert.False(t, a.Registry.Present("pgx"))
	assert.False(t, a.Registry.Present("pq"))
	assert.Equal(t, "mysql", a.Registry.Reference().Name)
	assert.Equal(t, a.Config.Sampler, a.Suite.Runner.Sampler)
	assert.Equal(t, "mysql", a.Suite.Runner.Reference)
}

func TestNewWithoutReference(t *testing.T) {
	t.Setenv("BENCH_CONFIG", "")
	t.Setenv("BENCH_DRIVERS", "mymysql")

	_, err := New(os.Stdout)
	require.Error(t, err)
}
