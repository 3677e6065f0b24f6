package store

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
)

//go:embed schema_postgres.sql
var schemaPostgres string

//go:embed schema_sqlite.sql
var schemaSQLite string

// Tables in foreign-key order; drops run in reverse.
var tables = []string{
	"categories",
	"products",
	"jerky_products",
	"customers",
	"addresses",
	"orders",
	"order_items",
	"inventory_transactions",
	"newsletter_subscribers",
}

// Migrate creates every table. Statements are idempotent (IF NOT EXISTS), so
// running it against a populated database is safe.
func (s *Store) Migrate(ctx context.Context) error {
	schema := schemaSQLite
	if s.dialect.Name() == "postgresql" {
		schema = schemaPostgres
	}

	// pgx's extended protocol rejects multi-statement strings, so execute
	// one statement at a time.
	for _, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Drop removes every table, children first.
func (s *Store) Drop(ctx context.Context) error {
	cascade := ""
	if s.dialect.Name() == "postgresql" {
		cascade = " CASCADE"
	}
	for i := len(tables) - 1; i >= 0; i-- {
		stmt := fmt.Sprintf("DROP TABLE IF EXISTS %s%s", tables[i], cascade)
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("drop %s: %w", tables[i], err)
		}
	}
	return nil
}
