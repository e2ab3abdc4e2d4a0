package bench

import (
	"context"
	"time"
)

type ConnConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	TLS      bool
}

// ConnectTimeout bounds connection establishment for every driver.
const ConnectTimeout = 2 * time.Second

type Engine string

const (
	MySQL    Engine = "mysql"
	Postgres Engine = "postgres"
)

// Caps describes what the harness measures on a target.
type Caps struct {
	Execute bool // prepared / binary protocol path
	Batch   bool // native batch (bulk or multi-row rewrite)
}

// Target is one driver under test: a single connection or a pool.
// Queries use '?' placeholders; targets rebind them to the driver's style.
type Target interface {
	Name() string
	Caps() Caps
	// Query runs a text protocol query and drains the rows.
	Query(ctx context.Context, query string, args ...any) (int, error)
	// Execute runs a prepared statement and drains the rows.
	Execute(ctx context.Context, query string, args ...any) (int, error)
	Exec(ctx context.Context, query string, args ...any) error
	// Batch executes query once per argument set in a single driver call.
	Batch(ctx context.Context, query string, argSets [][]any) error
	Close() error
}

// Workload is a named, fixed unit of SQL work measured across all targets.
type Workload struct {
	Title      string
	DisplaySQL string

	RequiresPool   bool
	RequireExecute bool
	ReferenceOnly  bool
	Portable       bool // SQL is valid on PostgreSQL as well

	PoolSize        int
	ConcurrentTasks int

	Init    func(ctx context.Context, t Target) error
	Cleanup func(ctx context.Context, t Target) error
	Bench   func(ctx context.Context, t Target) error
}

func (w Workload) size() int {
	if !w.RequiresPool || w.PoolSize < 1 {
		return 1
	}
	return w.PoolSize
}

// RawStats are the sampler statistics kept in the result file.
// Durations are expressed in seconds.
type RawStats struct {
	Moe       float64   `json:"moe"`
	Rme       float64   `json:"rme"`
	Sem       float64   `json:"sem"`
	Deviation float64   `json:"deviation"`
	Mean      float64   `json:"mean"`
	Variance  float64   `json:"variance"`
	P50       float64   `json:"p50"`
	P99       float64   `json:"p99"`
	Sample    []float64 `json:"sample"`
}

type SampleStats struct {
	Name      string   `json:"name"`
	Iteration float64  `json:"iteration"`
	Variation float64  `json:"variation"`
	Stats     RawStats `json:"stats"`
}
