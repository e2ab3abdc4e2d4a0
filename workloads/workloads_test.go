package workloads

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"connector-bench/bench"
	"connector-bench/bench/benchtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogue(t *testing.T) {
	seen := map[string]bool{}
	for _, w := range All() {
		assert.NotEmpty(t, w.Title)
		assert.NotEmpty(t, w.DisplaySQL, w.Title)
		require.NotNil(t, w.Bench, w.Title)
		assert.False(t, seen[w.Title], "duplicate title %q", w.Title)
		seen[w.Title] = true
	}
	assert.Len(t, seen, 10)
}

func TestFind(t *testing.T) {
	w, err := Find("select 1")
	require.NoError(t, err)
	assert.True(t, w.Portable)

	_, err = Find("select 2")
	require.Error(t, err)
}

func TestBinaryVariantsRequireExecute(t *testing.T) {
	for _, w := range All() {
		if strings.HasSuffix(w.Title, "- BINARY") {
			assert.True(t, w.RequireExecute, w.Title)
		}
	}
}

func TestBinaryVariantsUseExecute(t *testing.T) {
	ctx := context.Background()
	for _, w := range []bench.Workload{Do1000ParamsBinary, Select100IntBinary} {
		tg := &benchtest.Target{ID: "mysql", Cap: bench.Caps{Execute: true}}
		require.NoError(t, w.Bench(ctx, tg), w.Title)
		assert.Len(t, tg.Queries(), 1)
		assert.Equal(t, 1, tg.Executes(), w.Title)
	}
}

func TestDo1000Params(t *testing.T) {
	assert.Equal(t, 1000, strings.Count(do1000SQL, "?"))
	require.Len(t, do1000Args, 1000)
	assert.Equal(t, 1, do1000Args[0])
	assert.Equal(t, 1000, do1000Args[999])
}

func TestSelect1000RowsChecksRowCount(t *testing.T) {
	// the stub target reports one row per query
	tg := &benchtest.Target{ID: "mysql"}
	err := Select1000Rows.Bench(context.Background(), tg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want 1000")
}

func TestInsertBatchUsesBatchWhenSupported(t *testing.T) {
	ctx := context.Background()

	batcher := &benchtest.Target{ID: "mysql", Cap: bench.Caps{Batch: true}}
	require.NoError(t, InsertBatch.Bench(ctx, batcher))
	assert.Equal(t, 1, batcher.Batches())
	assert.Len(t, batcher.Queries(), 1)

	looper := &benchtest.Target{ID: "mymysql"}
	require.NoError(t, InsertBatch.Bench(ctx, looper))
	assert.Zero(t, looper.Batches())
	assert.Len(t, looper.Queries(), insertBatchRows)
	for _, q := range looper.Queries() {
		assert.Equal(t, insertBatchSQL, q)
	}
}

func TestInsertBatchHooks(t *testing.T) {
	ctx := context.Background()
	tg := &benchtest.Target{ID: "mysql"}
	require.NoError(t, InsertBatch.Init(ctx, tg))
	require.NoError(t, InsertBatch.Cleanup(ctx, tg))

	q := tg.Queries()
	assert.Equal(t, "DROP TABLE IF EXISTS perfTestTextBatch", q[0])
	assert.Contains(t, q, batchTable+" ENGINE = BLACKHOLE")
	assert.Equal(t, "TRUNCATE TABLE perfTestTextBatch", q[len(q)-1])
}

func TestRandomString(t *testing.T) {
	s := randomString(100)
	assert.Equal(t, 100, utf8.RuneCountInString(s))
}

func TestPoolWorkloadRespectsPoolCeiling(t *testing.T) {
	srv := &benchtest.Server{Delay: 2 * time.Millisecond}
	tg := bench.NewSQLTarget("mysql", bench.Caps{}, srv.DB(Select1Pool.PoolSize))
	defer tg.Close()

	require.NoError(t, Select1Pool.Bench(context.Background(), tg))

	assert.EqualValues(t, Select1Pool.ConcurrentTasks, srv.Queries())
	assert.LessOrEqual(t, srv.MaxOpen(), int64(16))
	assert.Greater(t, srv.MaxOpen(), int64(1))
}

func TestOrderFollowsFileNames(t *testing.T) {
	files := map[string]string{
		Do1.Title:                  "do_1.go",
		Do1000Params.Title:         "do_1000_params.go",
		Do1000ParamsBinary.Title:   "do_1000_params.go",
		InsertBatch.Title:          "insert_batch.go",
		Select1.Title:              "select_1.go",
		Select1000Rows.Title:       "select_1000_rows.go",
		Select1000RowsBinary.Title: "select_1000_rows.go",
		Select100Int.Title:         "select_100_int.go",
		Select100IntBinary.Title:   "select_100_int.go",
		Select1Pool.Title:          "select_1_pool.go",
	}
	var got []string
	for _, w := range All() {
		got = append(got, files[w.Title])
	}
	assert.True(t, sort.StringsAreSorted(got), got)
}
