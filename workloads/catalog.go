// Package workloads holds the fixed SQL workloads measured by the harness.
package workloads

import (
	"fmt"

	"connector-bench/bench"
)

// All returns every workload in file name order, the order the suite runs them.
func All() []bench.Workload {
	return []bench.Workload{
		Do1,
		Do1000Params,
		Do1000ParamsBinary,
		InsertBatch,
		Select1,
		Select1000Rows,
		Select1000RowsBinary,
		Select100Int,
		Select100IntBinary,
		Select1Pool,
	}
}

// Find looks a workload up by title.
func Find(title string) (bench.Workload, error) {
	for _, w := range All() {
		if w.Title == title {
			return w, nil
		}
	}
	return bench.Workload{}, fmt.Errorf("unknown workload %q", title)
}
