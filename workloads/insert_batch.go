package workloads

import (
	"context"
	"math/rand"
	"strings"

	"connector-bench/bench"
)

const (
	insertBatchSQL  = "INSERT INTO perfTestTextBatch(t0) VALUES (?)"
	insertBatchRows = 100
	batchTable      = "CREATE TABLE perfTestTextBatch (id MEDIUMINT NOT NULL AUTO_INCREMENT,t0 text, PRIMARY KEY (id)) COLLATE='utf8mb4_unicode_ci'"
)

var batchChars = append(strings.Split(`123456789abcdefghijklmnop\Z`, ""), "😎", "🌶", "🎤", "🥂")

func randomString(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString(batchChars[rand.Intn(len(batchChars))])
	}
	return b.String()
}

// InsertBatch inserts 100 rows of 100 characters: as one batch on targets that
// support it, one statement per row elsewhere.
var InsertBatch = bench.Workload{
	Title:      "100 * insert 100 characters using batch method (for mysql) or loop for other driver (batch doesn't exists)",
	DisplaySQL: "INSERT INTO perfTestTextBatch VALUES (?)",
	Init: func(ctx context.Context, t bench.Target) error {
		if err := t.Exec(ctx, "DROP TABLE IF EXISTS perfTestTextBatch"); err != nil {
			return err
		}
		// fails when the plugin is already installed or not shipped
		_ = t.Exec(ctx, "INSTALL SONAME 'ha_blackhole'")
		if err := t.Exec(ctx, batchTable+" ENGINE = BLACKHOLE"); err == nil {
			return nil
		}
		return t.Exec(ctx, batchTable)
	},
	Cleanup: func(ctx context.Context, t bench.Target) error {
		return t.Exec(ctx, "TRUNCATE TABLE perfTestTextBatch")
	},
	Bench: func(ctx context.Context, t bench.Target) error {
		params := []any{randomString(100)}
		if t.Caps().Batch {
			sets := make([][]any, insertBatchRows)
			for i := range sets {
				sets[i] = params
			}
			return t.Batch(ctx, insertBatchSQL, sets)
		}
		for i := 0; i < insertBatchRows; i++ {
			if err := t.Exec(ctx, insertBatchSQL, params...); err != nil {
				return err
			}
		}
		return nil
	},
}
