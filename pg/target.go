package pg

import (
	"context"

	"connector-bench/bench"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
)

// Target measures pgx through its native pool. Query forces the simple
// protocol; Execute uses the default cached-statement mode.
type Target struct {
	pool *pgxpool.Pool
}

func NewTarget(pool *pgxpool.Pool) *Target {
	return &Target{pool: pool}
}

func (t *Target) Name() string     { return "pgx" }
func (t *Target) Caps() bench.Caps { return bench.Caps{Execute: true, Batch: true} }

func rebind(query string) string {
	return sqlx.Rebind(sqlx.DOLLAR, query)
}

func (t *Target) Query(ctx context.Context, query string, args ...any) (int, error) {
	rows, err := t.pool.Query(ctx, rebind(query), append([]any{pgx.QueryExecModeSimpleProtocol}, args...)...)
	if err != nil {
		return 0, err
	}
	return drain(rows)
}

func (t *Target) Execute(ctx context.Context, query string, args ...any) (int, error) {
	rows, err := t.pool.Query(ctx, rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return drain(rows)
}

func (t *Target) Exec(ctx context.Context, query string, args ...any) error {
	_, err := t.pool.Exec(ctx, rebind(query), args...)
	return err
}

// Batch pipelines every argument set in one round trip.
func (t *Target) Batch(ctx context.Context, query string, argSets [][]any) error {
	b := &pgx.Batch{}
	q := rebind(query)
	for _, set := range argSets {
		b.Queue(q, set...)
	}
	return t.pool.SendBatch(ctx, b).Close()
}

func (t *Target) Close() error {
	t.pool.Close()
	return nil
}

func drain(rows pgx.Rows) (int, error) {
	defer rows.Close()
	n := 0
	for rows.Next() {
		if _, err := rows.Values(); err != nil {
			return n, err
		}
		n++
	}
	return n, rows.Err()
}
