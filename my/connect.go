package my

import (
	"context"
	"database/sql"
	"fmt"

	"connector-bench/bench"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/ziutek/mymysql/godrv"
)

// DSN builds a go-sql-driver/mysql data source name. Parameters are interpolated
// client side so Query stays on the text protocol; prepared statements use the
// binary protocol.
func DSN(c bench.ConnConfig) string {
	tls := "false"
	if c.TLS {
		tls = "skip-verify"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?interpolateParams=true&timeout=%s&tls=%s&charset=utf8mb4",
		c.User, c.Password, c.Host, c.Port, c.Database, bench.ConnectTimeout, tls)
}

// MyMySQLDSN builds a ziutek/mymysql godrv data source name.
func MyMySQLDSN(c bench.ConnConfig) string {
	return fmt.Sprintf("tcp:%s:%d*%s/%s/%s", c.Host, c.Port, c.Database, c.User, c.Password)
}

// Connect opens a go-sql-driver/mysql handle holding at most size connections.
func Connect(ctx context.Context, c bench.ConnConfig, size int) (*sqlx.DB, error) {
	return open(ctx, "mysql", DSN(c), size)
}

func ConnectMyMySQL(ctx context.Context, c bench.ConnConfig, size int) (*sqlx.DB, error) {
	if c.TLS {
		return nil, fmt.Errorf("mymysql: TLS connections are not configured for this driver")
	}
	return open(ctx, "mymysql", MyMySQLDSN(c), size)
}

func open(ctx context.Context, driverName, dsn string, size int) (*sqlx.DB, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(size)
	db.SetMaxIdleConns(size)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return sqlx.NewDb(db, driverName), nil
}

// Drivers returns the MySQL client implementations under test, reference first.
func Drivers(c bench.ConnConfig) []bench.Driver {
	return []bench.Driver{
		{
			Name:      "mysql",
			Engine:    bench.MySQL,
			Caps:      bench.Caps{Execute: true, Batch: true},
			Reference: true,
			Open: func(ctx context.Context, size int) (bench.Target, error) {
				db, err := Connect(ctx, c, size)
				if err != nil {
					return nil, err
				}
				return bench.NewSQLTarget("mysql", bench.Caps{Execute: true, Batch: true}, db), nil
			},
		},
		{
			Name:   "mymysql",
			Engine: bench.MySQL,
			Open: func(ctx context.Context, size int) (bench.Target, error) {
				db, err := ConnectMyMySQL(ctx, c, size)
				if err != nil {
					return nil, err
				}
				return bench.NewSQLTarget("mymysql", bench.Caps{}, db), nil
			},
		},
	}
}
