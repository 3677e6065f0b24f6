package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tahoebearjerky/storefront-api/internal/config"
	"github.com/tahoebearjerky/storefront-api/internal/store"
)

func newSQLiteStore(t *testing.T) *store.Store {
	t.Helper()
	cfg := &config.Config{
		DBEngine:   "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
	}
	s, err := store.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

// Rows inserted outside the seed path may leave every optional column NULL;
// the catalog must still serve them.
func TestJerkyProductsWithNullOptionalColumns(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	_, err := s.ExecContext(ctx,
		"INSERT INTO jerky_products (name, slug, price) VALUES (?, ?, ?)",
		"Mystery Jerky", "mystery-jerky", "45.00")
	require.NoError(t, err)

	repo := NewCatalogRepository(s)

	jerky, err := repo.ListJerkyProducts(ctx)
	require.NoError(t, err)
	require.Len(t, jerky, 1)
	assert.Equal(t, "Mystery Jerky", jerky[0].Name)
	assert.Empty(t, jerky[0].Title)
	assert.Empty(t, jerky[0].Weight)
	assert.Empty(t, jerky[0].ImageURL)
	assert.Empty(t, jerky[0].Status)
	assert.Empty(t, jerky[0].BadgeText)
	assert.Nil(t, jerky[0].BadgeColor)

	got, err := repo.GetJerkyProduct(ctx, jerky[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "mystery-jerky", got.Slug)
	assert.Empty(t, got.Title)
}
