package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tahoebearjerky/storefront-api/internal/config"
)

// newSQLiteStore opens a throwaway file-backed store with the schema applied.
func newSQLiteStore(t *testing.T) *Store {
	t.Helper()
	cfg := &config.Config{
		DBEngine:   "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
	}
	s, err := Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestPostgresUpsertQuery(t *testing.T) {
	got := postgresDialect{}.upsertQuery("customers", "email",
		[]string{"email", "first_name", "last_name", "phone"})

	assert.Equal(t,
		"INSERT INTO customers (email, first_name, last_name, phone) VALUES (?, ?, ?, ?) "+
			"ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email RETURNING id",
		got)
}

func TestSQLiteUpsertReturningIDIsIdempotent(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	upsert := func(firstName string) int64 {
		t.Helper()
		tx, err := s.BeginTx(ctx)
		require.NoError(t, err)
		id, err := s.Dialect().UpsertReturningID(ctx, tx,
			"customers", "email",
			[]string{"email", "first_name", "last_name", "phone"},
			"a@b.com", firstName, "Bear", "")
		require.NoError(t, err)
		require.NoError(t, tx.Commit())
		return id
	}

	first := upsert("Tahoe")
	second := upsert("Somebody Else")

	// The second submission of the same email must land on the same row.
	assert.Equal(t, first, second)

	var count int
	require.NoError(t, s.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM customers WHERE email = ?", "a@b.com").Scan(&count))
	assert.Equal(t, 1, count)

	// First write wins: the stored fields are untouched on conflict.
	var firstName string
	require.NoError(t, s.QueryRowContext(ctx,
		"SELECT first_name FROM customers WHERE email = ?", "a@b.com").Scan(&firstName))
	assert.Equal(t, "Tahoe", firstName)
}

func TestSQLiteUpsertDistinctKeysGetDistinctRows(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	tx, err := s.BeginTx(ctx)
	require.NoError(t, err)
	defer tx.Rollback()

	cols := []string{"email", "first_name", "last_name", "phone"}
	a, err := s.Dialect().UpsertReturningID(ctx, tx, "customers", "email", cols, "a@b.com", "", "", "")
	require.NoError(t, err)
	b, err := s.Dialect().UpsertReturningID(ctx, tx, "customers", "email", cols, "c@d.com", "", "", "")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	require.NoError(t, tx.Commit())
}
