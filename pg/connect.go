package pg

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"connector-bench/bench"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	_ "github.com/lib/pq"
)

// WarmupQueries is the number of statements pushed through pgx before sampling
// so its per-connection statement description cache is at steady state.
const WarmupQueries = 15000

func DSN(c bench.ConnConfig) string {
	sslmode := "disable"
	if c.TLS {
		sslmode = "require"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s&connect_timeout=%d",
		c.User, c.Password, c.Host, c.Port, c.Database, sslmode, int(bench.ConnectTimeout.Seconds()))
}

// Connect opens a pgx pool holding at most size connections.
func Connect(ctx context.Context, c bench.ConnConfig, size int) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(DSN(c))
	if err != nil {
		return nil, err
	}
	config.MaxConns = int32(size)
	config.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// ConnectPQ opens a lib/pq handle holding at most size connections.
func ConnectPQ(ctx context.Context, c bench.ConnConfig, size int) (*sqlx.DB, error) {
	db, err := sql.Open("postgres", DSN(c))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(size)
	db.SetMaxIdleConns(size)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return sqlx.NewDb(db, "postgres"), nil
}

// Drivers returns the PostgreSQL baseline drivers. They are absent when no
// Postgres host is configured.
func Drivers(c bench.ConnConfig) []bench.Driver {
	pgx := bench.Driver{
		Name:          "pgx",
		Engine:        bench.Postgres,
		Caps:          bench.Caps{Execute: true, Batch: true},
		WarmupQueries: WarmupQueries,
		WarmupSQL:     "SELECT 1, 'b', ?::int",
	}
	pq := bench.Driver{
		Name:   "pq",
		Engine: bench.Postgres,
		Caps:   bench.Caps{Execute: true},
	}
	if c.Host == "" {
		return []bench.Driver{pgx, pq}
	}

	pgx.Open = func(ctx context.Context, size int) (bench.Target, error) {
		pool, err := Connect(ctx, c, size)
		if err != nil {
			return nil, err
		}
		return NewTarget(pool), nil
	}
	pq.Open = func(ctx context.Context, size int) (bench.Target, error) {
		db, err := ConnectPQ(ctx, c, size)
		if err != nil {
			return nil, err
		}
		return bench.NewSQLTarget("pq", pq.Caps, db), nil
	}
	return []bench.Driver{pgx, pq}
}

// SeedSchema creates the test100 table used by the portable select workloads.
func SeedSchema(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM test100").Scan(&count); err == nil && count == 1 {
		log.Debug().Msg("test100 already seeded")
		return nil
	}

	cols := make([]string, 100)
	vals := make([]string, 100)
	for i := range cols {
		cols[i] = fmt.Sprintf("i%d INT", i+1)
		vals[i] = fmt.Sprint(i + 1)
	}

	log.Info().Msg("seeding test100 (postgres)")
	stmts := []string{
		"DROP TABLE IF EXISTS test100",
		"CREATE TABLE test100 (" + strings.Join(cols, ",") + ")",
		"INSERT INTO test100 VALUES (" + strings.Join(vals, ",") + ")",
	}
	for _, s := range stmts {
		if _, err := pool.Exec(ctx, s); err != nil {
			return fmt.Errorf("seed test100: %w", err)
		}
	}
	return nil
}
