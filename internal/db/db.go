// Package db opens the backing relational store and runs work against it
// inside scoped transactions.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// DB is a connection pool that optionally traces every query.
type DB struct {
	*sqlx.DB
	driver string
	logger *log.Logger
}

// Tx is a database transaction.
type Tx struct {
	*sqlx.Tx
	logger *log.Logger
}

var (
	_ Handler = (*DB)(nil)
	_ Handler = (*Tx)(nil)
)

// Open opens a database connection for the given driver and DSN.
// Supported drivers: sqlite3, mysql, postgres.
func Open(ctx context.Context, driver, dsn string) (*DB, error) {
	var (
		dbx *sqlx.DB
		err error
	)
	switch driver {
	case "sqlite3":
		// modernc/sqlite uses "sqlite" as the driver name (CGO-free)
		dbx, err = sqlx.ConnectContext(ctx, "sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		// SQLite WAL mode for better concurrency. Foreign keys are enabled per
		// connection through the DSN (_pragma=foreign_keys(1)).
		if _, err := dbx.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			_ = dbx.Close()
			return nil, fmt.Errorf("enable WAL: %w", err)
		}
	case "mysql":
		dbx, err = sqlx.ConnectContext(ctx, "mysql", dsn)
		if err != nil {
			return nil, fmt.Errorf("open mysql: %w", err)
		}
	case "postgres":
		dbx, err = sqlx.ConnectContext(ctx, "postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown driver %q: must be sqlite3, mysql, or postgres", driver)
	}

	return &DB{DB: dbx, driver: driver}, nil
}

// Driver returns the configured driver name (sqlite3, mysql, or postgres).
func (d *DB) Driver() string {
	return d.driver
}

// WithTrace makes d log every query at debug level on logger.
func (d *DB) WithTrace(logger *log.Logger) *DB {
	d.logger = logger
	return d
}

// TransactionContext runs fn inside a transaction. The transaction commits
// when fn returns nil and rolls back otherwise.
func (d *DB) TransactionContext(ctx context.Context, fn func(tx *Tx) error) error {
	txx, err := d.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	tx := &Tx{txx, d.logger}
	if err := fn(tx); err != nil {
		return rollback(tx, err)
	}

	if err := tx.Commit(); err != nil {
		if errors.Is(err, sql.ErrTxDone) {
			return nil
		}
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func rollback(tx *Tx, err error) error {
	if rerr := tx.Rollback(); rerr != nil {
		if errors.Is(rerr, sql.ErrTxDone) {
			return err
		}
		return fmt.Errorf("failed to rollback: %s: %w", err.Error(), rerr)
	}

	return err
}
