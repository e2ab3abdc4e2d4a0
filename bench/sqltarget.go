package bench

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jmoiron/sqlx"
)

// SQLTarget is a Target over a database/sql driver.
type SQLTarget struct {
	name string
	caps Caps
	db   *sqlx.DB

	mu    sync.Mutex
	stmts map[string]*sqlx.Stmt
}

// NewSQLTarget wraps db; its size must already be capped with SetMaxOpenConns.
func NewSQLTarget(name string, caps Caps, db *sqlx.DB) *SQLTarget {
	return &SQLTarget{name: name, caps: caps, db: db, stmts: map[string]*sqlx.Stmt{}}
}

func (t *SQLTarget) Name() string { return t.name }
func (t *SQLTarget) Caps() Caps   { return t.caps }
func (t *SQLTarget) DB() *sqlx.DB { return t.db }

func (t *SQLTarget) Query(ctx context.Context, query string, args ...any) (int, error) {
	rows, err := t.db.QueryxContext(ctx, t.db.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return drain(rows)
}

func (t *SQLTarget) Execute(ctx context.Context, query string, args ...any) (int, error) {
	if !t.caps.Execute {
		return 0, fmt.Errorf("%s: prepared statements not measured", t.name)
	}
	stmt, err := t.prepare(ctx, query)
	if err != nil {
		return 0, err
	}
	rows, err := stmt.QueryxContext(ctx, args...)
	if err != nil {
		return 0, err
	}
	return drain(rows)
}

func (t *SQLTarget) Exec(ctx context.Context, query string, args ...any) error {
	_, err := t.db.ExecContext(ctx, t.db.Rebind(query), args...)
	return err
}

// Batch rewrites a single-row INSERT ... VALUES (...) into one multi-row statement.
func (t *SQLTarget) Batch(ctx context.Context, query string, argSets [][]any) error {
	if !t.caps.Batch {
		return fmt.Errorf("%s: batch not supported", t.name)
	}
	if len(argSets) == 0 {
		return nil
	}
	q, err := RewriteBatch(query, len(argSets))
	if err != nil {
		return err
	}
	var args []any
	for _, set := range argSets {
		args = append(args, set...)
	}
	return t.Exec(ctx, q, args...)
}

func (t *SQLTarget) prepare(ctx context.Context, query string) (*sqlx.Stmt, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if stmt, ok := t.stmts[query]; ok {
		return stmt, nil
	}
	stmt, err := t.db.PreparexContext(ctx, t.db.Rebind(query))
	if err != nil {
		return nil, fmt.Errorf("prepare: %w", err)
	}
	t.stmts[query] = stmt
	return stmt, nil
}

func (t *SQLTarget) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	var errs []error
	for q, stmt := range t.stmts {
		errs = append(errs, stmt.Close())
		delete(t.stmts, q)
	}
	errs = append(errs, t.db.Close())
	return errors.Join(errs...)
}

func drain(rows *sqlx.Rows) (int, error) {
	defer rows.Close()
	n := 0
	for rows.Next() {
		if _, err := rows.SliceScan(); err != nil {
			return n, err
		}
		n++
	}
	return n, rows.Err()
}

// RewriteBatch repeats the VALUES tuple of a single-row INSERT n times.
func RewriteBatch(query string, n int) (string, error) {
	i := lastIndexFold(query, "VALUES")
	if i < 0 || n < 1 {
		return "", fmt.Errorf("cannot rewrite %q as a batch", query)
	}
	head := query[:i+len("VALUES")]
	tuple := strings.TrimSpace(query[i+len("VALUES"):])
	if !strings.HasPrefix(tuple, "(") || !strings.HasSuffix(tuple, ")") {
		return "", fmt.Errorf("cannot rewrite %q as a batch", query)
	}
	return head + " " + strings.TrimSuffix(strings.Repeat(tuple+",", n), ","), nil
}

// lastIndexFold is strings.LastIndex with ASCII case folding; byte offsets
// stay valid for the original string.
func lastIndexFold(s, word string) int {
	for i := len(s) - len(word); i >= 0; i-- {
		if asciiEqualFold(s[i:i+len(word)], word) {
			return i
		}
	}
	return -1
}

func asciiEqualFold(a, b string) bool {
	for i := 0; i < len(a); i++ {
		x, y := a[i], b[i]
		if 'a' <= x && x <= 'z' {
			x -= 'a' - 'A'
		}
		if 'a' <= y && y <= 'z' {
			y -= 'a' - 'A'
		}
		if x != y {
			return false
		}
	}
	return true
}
