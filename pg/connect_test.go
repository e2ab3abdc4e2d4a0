package pg

import (
	"testing"

	"connector-bench/bench"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testConn = bench.ConnConfig{
	Host:     "pg",
	Port:     5432,
	User:     "postgres",
	Password: "pw",
	Database: "bench",
}

func TestDSN(t *testing.T) {
	assert.Equal(t,
		"postgres://postgres:pw@pg:5432/bench?sslmode=disable&connect_timeout=2",
		DSN(testConn))

	c := testConn
	c.TLS = true
	assert.Contains(t, DSN(c), "sslmode=require")
}

func TestDSNParses(t *testing.T) {
	cfg, err := pgxpool.ParseConfig(DSN(testConn))
	require.NoError(t, err)
	assert.Equal(t, "pg", cfg.ConnConfig.Host)
	assert.EqualValues(t, 5432, cfg.ConnConfig.Port)
	assert.Equal(t, "bench", cfg.ConnConfig.Database)
}

func TestDrivers(t *testing.T) {
	drivers := Drivers(testConn)
	require.Len(t, drivers, 2)

	pgx, pq := drivers[0], drivers[1]
	assert.Equal(t, "pgx", pgx.Name)
	assert.Equal(t, WarmupQueries, pgx.WarmupQueries)
	assert.NotEmpty(t, pgx.WarmupSQL)
	assert.Equal(t, bench.Caps{Execute: true, Batch: true}, pgx.Caps)
	assert.Equal(t, "pq", pq.Name)
	assert.Zero(t, pq.WarmupQueries)

	for _, d := range drivers {
		assert.Equal(t, bench.Postgres, d.Engine)
		assert.False(t, d.Reference)
		assert.NotNil(t, d.Open, d.Name)
	}
}

func TestDriversAbsentWithoutHost(t *testing.T) {
	for _, d := range Drivers(bench.ConnConfig{}) {
		assert.Nil(t, d.Open, d.Name)
	}
}

func TestRebind(t *testing.T) {
	assert.Equal(t, "SELECT 1, 'b', $1::int", rebind("SELECT 1, 'b', ?::int"))
}
