package my

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

const rowVal = "abcdefghijabcdefghijabcdefghijaa"

// Test100DDL creates the 100 int column table shared with the Postgres baseline.
func Test100DDL() string {
	cols := make([]string, 100)
	for i := range cols {
		cols[i] = fmt.Sprintf("i%d INT", i+1)
	}
	return "CREATE TABLE test100 (" + strings.Join(cols, ",") + ")"
}

// Test100Insert inserts the single test100 row (1..100).
func Test100Insert() string {
	vals := make([]string, 100)
	for i := range vals {
		vals[i] = fmt.Sprint(i + 1)
	}
	return "INSERT INTO test100 VALUES (" + strings.Join(vals, ",") + ")"
}

// SeedSchema creates and fills the read-only tables the select workloads use,
// leaving tables that already hold their rows untouched.
func SeedSchema(ctx context.Context, db *sqlx.DB, log zerolog.Logger) error {
	if err := seedRows(ctx, db, 1000, log); err != nil {
		return err
	}
	return seedTest100(ctx, db, log)
}

func seedRows(ctx context.Context, db *sqlx.DB, rows int, log zerolog.Logger) error {
	var count int
	if err := db.GetContext(ctx, &count, "SELECT COUNT(*) FROM `1000rows`"); err == nil && count == rows {
		log.Debug().Int("rows", count).Msg("1000rows already seeded")
		return nil
	}

	if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS `1000rows`"); err != nil {
		return fmt.Errorf("drop 1000rows: %w", err)
	}
	_, err := db.ExecContext(ctx, "CREATE TABLE `1000rows` (id INT NOT NULL AUTO_INCREMENT PRIMARY KEY, val VARCHAR(32))")
	if err != nil {
		return fmt.Errorf("create 1000rows: %w", err)
	}

	log.Info().Int("rows", rows).Msg("seeding 1000rows")

	batchSize := 500
	for i := 0; i < rows; i += batchSize {
		end := min(i+batchSize, rows)
		query := "INSERT INTO `1000rows` (val) VALUES "
		vals := make([]any, 0, end-i)
		for j := i; j < end; j++ {
			if j > i {
				query += ","
			}
			query += "(?)"
			vals = append(vals, rowVal)
		}
		if _, err := db.ExecContext(ctx, query, vals...); err != nil {
			return fmt.Errorf("seed batch at %d: %w", i, err)
		}
	}
	return nil
}

func seedTest100(ctx context.Context, db *sqlx.DB, log zerolog.Logger) error {
	var count int
	if err := db.GetContext(ctx, &count, "SELECT COUNT(*) FROM test100"); err == nil && count == 1 {
		log.Debug().Msg("test100 already seeded")
		return nil
	}

	if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS test100"); err != nil {
		return fmt.Errorf("drop test100: %w", err)
	}
	if _, err := db.ExecContext(ctx, Test100DDL()+" ENGINE = MEMORY"); err != nil {
		log.Debug().Err(err).Msg("MEMORY engine unavailable")
		if _, err := db.ExecContext(ctx, Test100DDL()); err != nil {
			return fmt.Errorf("create test100: %w", err)
		}
	}
	if _, err := db.ExecContext(ctx, Test100Insert()); err != nil {
		return fmt.Errorf("seed test100: %w", err)
	}
	return nil
}
