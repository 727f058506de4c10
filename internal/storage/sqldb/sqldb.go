// Package sqldb provides a database/sql implementation of the storage.Store
// interface that runs on SQLite or PostgreSQL.
package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	_ "github.com/lib/pq"              // registers "postgres"
	_ "modernc.org/sqlite"             // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/tripsplit/internal/storage"
)

// Supported driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store implements storage.Store on top of database/sql.
type Store struct {
	db *sql.DB

	// dollar is set for drivers that expect $1-style placeholders.
	dollar bool
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// New creates a SQLite-backed Store at dbPath.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*Store, error) {
	return Open(DriverSQLite, dbPath)
}

// Open connects to the database with the given driver and runs migrations.
func Open(driver, dsn string) (*Store, error) {
	s := &Store{}
	switch driver {
	case DriverSQLite:
		// Create parent directory if it doesn't exist
		if dir := filepath.Dir(dsn); dsn != ":memory:" && !strings.HasPrefix(dsn, "file:") {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	case DriverPostgres, DriverPgx:
		s.dollar = true
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == DriverSQLite {
		// A single connection keeps PRAGMAs and writes consistent
		db.SetMaxOpenConns(1)
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	s.db = db
	if err := s.runMigrations(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// rebind rewrites ? placeholders to $n for PostgreSQL drivers.
func (s *Store) rebind(query string) string {
	if !s.dollar {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
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

// inTx runs fn inside a transaction, committing only if fn succeeds.
func (s *Store) inTx(ctx context.Context, fn func(q querier) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// nextPosition returns the next insertion position for rows matching where.
func (s *Store) nextPosition(ctx context.Context, q querier, table, where string, args ...any) (int64, error) {
	query := "SELECT COALESCE(MAX(position), 0) + 1 FROM " + table
	if where != "" {
		query += " WHERE " + where
	}
	var pos int64
	if err := q.QueryRowContext(ctx, s.rebind(query), args...).Scan(&pos); err != nil {
		return 0, fmt.Errorf("failed to compute position in %s: %w", table, err)
	}
	return pos, nil
}
