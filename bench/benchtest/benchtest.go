// Package benchtest provides an in-memory database/sql server and a stub
// target for testing code built on package bench.
package benchtest

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"connector-bench/bench"

	"github.com/jmoiron/sqlx"
)

// Server is a fake database/sql backend that counts physical connections.
// Every query returns one row holding int64(1) after Delay.
type Server struct {
	Delay time.Duration

	open    atomic.Int64
	maxOpen atomic.Int64
	queries atomic.Int64

	mu    sync.Mutex
	execs []string
}

func (s *Server) Connect(context.Context) (driver.Conn, error) {
	n := s.open.Add(1)
	for {
		m := s.maxOpen.Load()
		if n <= m || s.maxOpen.CompareAndSwap(m, n) {
			break
		}
	}
	return &conn{s: s}, nil
}

func (s *Server) Driver() driver.Driver { return drv{s} }

// DB opens a sqlx handle on the server capped at size connections.
func (s *Server) DB(size int) *sqlx.DB {
	db := sql.OpenDB(s)
	db.SetMaxOpenConns(size)
	db.SetMaxIdleConns(size)
	return sqlx.NewDb(db, "benchtest")
}

// MaxOpen reports the highest number of simultaneously open connections.
func (s *Server) MaxOpen() int64 { return s.maxOpen.Load() }
func (s *Server) Open() int64    { return s.open.Load() }
func (s *Server) Queries() int64 { return s.queries.Load() }

// Execs returns the statements received through Exec, in order.
func (s *Server) Execs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.execs...)
}

type drv struct{ s *Server }

func (d drv) Open(string) (driver.Conn, error) { return d.s.Connect(context.Background()) }

type conn struct{ s *Server }

func (c *conn) Prepare(query string) (driver.Stmt, error) { return &stmt{c: c, query: query}, nil }
func (c *conn) Begin() (driver.Tx, error)                 { return nil, errors.New("benchtest: no transactions") }

func (c *conn) Close() error {
	c.s.open.Add(-1)
	return nil
}

func (c *conn) QueryContext(ctx context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	c.s.queries.Add(1)
	if c.s.Delay > 0 {
		select {
		case <-time.After(c.s.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return &rows{left: 1}, nil
}

func (c *conn) ExecContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Result, error) {
	c.s.mu.Lock()
	c.s.execs = append(c.s.execs, query)
	c.s.mu.Unlock()
	return driver.RowsAffected(1), nil
}

type stmt struct {
	c     *conn
	query string
}

func (s *stmt) Close() error  { return nil }
func (s *stmt) NumInput() int { return -1 }

func (s *stmt) Exec(args []driver.Value) (driver.Result, error) {
	return s.c.ExecContext(context.Background(), s.query, nil)
}

func (s *stmt) Query(args []driver.Value) (driver.Rows, error) {
	return s.c.QueryContext(context.Background(), s.query, nil)
}

type rows struct{ left int }

func (r *rows) Columns() []string { return []string{"1"} }
func (r *rows) Close() error      { return nil }

func (r *rows) Next(dest []driver.Value) error {
	if r.left == 0 {
		return io.EOF
	}
	r.left--
	dest[0] = int64(1)
	return nil
}

// Target is a scripted bench.Target recording what it was asked to do.
type Target struct {
	ID   string
	Cap  bench.Caps
	Fail error // returned by every call when set

	mu      sync.Mutex
	queries  []string
	executes int
	batches  int
	closed  int
}

func (t *Target) Name() string     { return t.ID }
func (t *Target) Caps() bench.Caps { return t.Cap }

func (t *Target) Query(_ context.Context, query string, _ ...any) (int, error) {
	return 1, t.record(query)
}

func (t *Target) Execute(_ context.Context, query string, _ ...any) (int, error) {
	t.mu.Lock()
	t.executes++
	t.mu.Unlock()
	return 1, t.record(query)
}

func (t *Target) Exec(_ context.Context, query string, _ ...any) error {
	return t.record(query)
}

func (t *Target) Batch(_ context.Context, query string, _ [][]any) error {
	t.mu.Lock()
	t.batches++
	t.mu.Unlock()
	return t.record(query)
}

func (t *Target) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed++
	return nil
}

func (t *Target) record(query string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.queries = append(t.queries, query)
	return t.Fail
}

func (t *Target) Queries() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.queries...)
}

// Executes counts the calls that went through Execute.
func (t *Target) Executes() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.executes
}

func (t *Target) Batches() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.batches
}

func (t *Target) Closed() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}
