// Package sqlstore persists parcels in a relational database through
// database/sql. PostgreSQL is reached via the pgx stdlib driver and SQLite via
// the pure-Go modernc driver; both share one schema and one set of queries.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

// Open connects to the database behind dsn using one of the registered
// drivers and verifies the connection.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("open database: unsupported driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %s: %w", driver, err)
	}

	if driver == DriverSQLite {
		// SQLite allows a single writer.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open database: verify %s connection: %w", driver, err)
	}
	return db, nil
}

// InitSchema creates the parcels table and its indexes if they do not exist.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS parcels (
			id                      TEXT PRIMARY KEY,
			tracking_number         TEXT NOT NULL UNIQUE,
			sender_name             TEXT NOT NULL,
			sender_email            TEXT NOT NULL,
			sender_phone            TEXT NOT NULL,
			sender_address          VARCHAR(500) NOT NULL,
			recipient_name          TEXT NOT NULL,
			recipient_email         TEXT NOT NULL,
			recipient_phone         TEXT NOT NULL,
			recipient_address       VARCHAR(500) NOT NULL,
			weight_kg               DOUBLE PRECISION NOT NULL,
			length_cm               DOUBLE PRECISION NOT NULL,
			width_cm                DOUBLE PRECISION NOT NULL,
			height_cm               DOUBLE PRECISION NOT NULL,
			description             VARCHAR(1000) NOT NULL DEFAULT '',
			parcel_type             TEXT NOT NULL,
			delivery_type           TEXT NOT NULL,
			status                  TEXT NOT NULL,
			shipping_cost           DOUBLE PRECISION NOT NULL,
			estimated_delivery_date BIGINT NOT NULL,
			actual_delivery_date    BIGINT,
			created_at              BIGINT NOT NULL,
			updated_at              BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_parcels_sender_email ON parcels (sender_email, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_parcels_recipient_email ON parcels (recipient_email, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_parcels_status ON parcels (status, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_parcels_created_at ON parcels (created_at)`,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}
	return nil
}

// rebind rewrites '?' placeholders to the '$n' form PostgreSQL expects.
func rebind(driver, query string) string {
	if driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
