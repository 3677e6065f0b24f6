// Package store is the persistence gateway. It opens one of the two
// supported engines (PostgreSQL via pgx, SQLite via modernc) behind a single
// database/sql handle and hides every dialect difference — placeholder
// style, upsert syntax, generated-id retrieval — behind Dialect, so callers
// never branch on which engine is active.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/tahoebearjerky/storefront-api/internal/config"
)

// Tx is one transactional scope: all writes commit together or are entirely
// discarded. *sql.Tx satisfies it; tests substitute mocks.
type Tx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	Commit() error
	Rollback() error
}

type Store struct {
	db      *sql.DB
	dialect Dialect
}

// Open connects to the engine selected by cfg.DBEngine.
func Open(cfg *config.Config) (*Store, error) {
	switch cfg.DBEngine {
	case "postgres", "postgresql":
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			cfg.PostgresUser, cfg.PostgresPassword,
			cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresDB)
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(time.Hour)
		return &Store{db: db, dialect: postgresDialect{}}, nil

	case "sqlite":
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
		dsn := fmt.Sprintf("file:%s?_time_format=sqlite&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
			cfg.SQLitePath)
		db, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		// The file-backed engine serializes writers anyway.
		db.SetMaxOpenConns(1)
		return &Store{db: db, dialect: sqliteDialect{}}, nil

	default:
		return nil, fmt.Errorf("unknown DB_ENGINE %q (want postgres or sqlite)", cfg.DBEngine)
	}
}

func (s *Store) Dialect() Dialect { return s.dialect }

// Engine reports the active engine name, surfaced by the health endpoint.
func (s *Store) Engine() string { return s.dialect.Name() }

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) Close() error { return s.db.Close() }

// BeginTx opens one transactional scope. Callers must defer Rollback so a
// cancelled or failed path always releases the scope; Rollback after Commit
// is a no-op.
func (s *Store) BeginTx(ctx context.Context) (Tx, error) {
	return s.db.BeginTx(ctx, nil)
}

// The helpers below rebind the query for the active dialect. Queries
// throughout the codebase are written with ? placeholders.

func (s *Store) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.db.ExecContext(ctx, s.dialect.Rebind(query), args...)
}

func (s *Store) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, s.dialect.Rebind(query), args...)
}

func (s *Store) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return s.db.QueryRowContext(ctx, s.dialect.Rebind(query), args...)
}
