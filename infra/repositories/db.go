package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Open returns a pooled handle for the postgres or sqlite drivers and checks
// connectivity before handing it out.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	var db *sql.DB
	var err error
	switch driver {
	case DriverPostgres:
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			return nil, err
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
	case DriverSQLite:
		db, err = sql.Open("sqlite", sqliteDSN(dsn))
		if err != nil {
			return nil, err
		}
		db.SetMaxOpenConns(1)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return db, nil
}

const sqlitePragmas = "_pragma=journal_mode(WAL)&_pragma=busy_timeout=5000"

func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&" + sqlitePragmas
	}
	return dsn + "?" + sqlitePragmas
}

const schema = `
CREATE TABLE IF NOT EXISTS sell_item(
  item_desc TEXT,
  quantity  INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS bill_tran(
  tran_desc TEXT,
  tran_qty  INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_sell_item_desc ON sell_item(item_desc);
CREATE INDEX IF NOT EXISTS idx_bill_tran_desc ON bill_tran(tran_desc);
`

func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}

type StockRecord struct {
	ItemDesc string
	Quantity int64
}

type IssueRecord struct {
	TranDesc string
	TranQty  int64
}

var (
	DemoStock = []StockRecord{
		{"Bearing 6204", 120},
		{"Bearing 6204", 40},
		{"Drive Belt A42", 30},
		{"Hydraulic Oil 20L", 75},
		{"Oil Filter", 200},
		{"Spark Plug", 60},
	}
	DemoIssues = []IssueRecord{
		{"Bearing 6204", 95},
		{"Drive Belt A42", 40},
		{"Hydraulic Oil 20L", 30},
		{"Oil Filter", 12},
		{"Spark Plug", 25},
		{"Fuse 10A", 7},
	}
)

// Seed inserts the demo records into an empty store. A store that already
// holds stock records is left untouched, so seeding on every start is safe.
func Seed(ctx context.Context, db *sql.DB, driver string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var existing int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM sell_item`).Scan(&existing); err != nil {
		return fmt.Errorf("count stock records: %w", err)
	}
	if existing > 0 {
		return nil
	}

	insertStock := `INSERT INTO sell_item(item_desc, quantity) VALUES(?, ?)`
	insertIssue := `INSERT INTO bill_tran(tran_desc, tran_qty) VALUES(?, ?)`
	if driver == DriverPostgres {
		insertStock = `INSERT INTO sell_item(item_desc, quantity) VALUES($1, $2)`
		insertIssue = `INSERT INTO bill_tran(tran_desc, tran_qty) VALUES($1, $2)`
	}

	for _, s := range DemoStock {
		if _, err := tx.ExecContext(ctx, insertStock, s.ItemDesc, s.Quantity); err != nil {
			return err
		}
	}
	for _, i := range DemoIssues {
		if _, err := tx.ExecContext(ctx, insertIssue, i.TranDesc, i.TranQty); err != nil {
			return err
		}
	}
	return tx.Commit()
}
