package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tahoebearjerky/storefront-api/internal/domain"
	"github.com/tahoebearjerky/storefront-api/internal/store"
)

// CatalogRepository serves the read-only storefront queries: projection,
// filter, and sort only.
type CatalogRepository interface {
	ListProducts(ctx context.Context, categorySlug string) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListJerkyProducts(ctx context.Context) ([]domain.JerkyProduct, error)
	GetJerkyProduct(ctx context.Context, id int64) (*domain.JerkyProduct, error)
}

type catalogRepository struct {
	s *store.Store
}

func NewCatalogRepository(s *store.Store) CatalogRepository {
	return &catalogRepository{s: s}
}

const productColumns = `
	p.id, p.name, p.slug, p.category_id, p.description, p.price, p.image_url,
	p.emoji, p.stock_quantity, p.is_active, p.featured, p.created_at,
	c.name AS category_name, c.slug AS category_slug`

func scanProduct(row interface{ Scan(...any) error }) (*domain.Product, error) {
	var (
		p           domain.Product
		description sql.NullString
		emoji       sql.NullString
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.CategoryID, &description, &p.Price,
		&p.ImageURL, &emoji, &p.StockQuantity, &p.IsActive, &p.Featured,
		&p.CreatedAt, &p.CategoryName, &p.CategorySlug,
	)
	if err != nil {
		return nil, err
	}
	p.Description = description.String
	p.Emoji = emoji.String
	return &p, nil
}

// ListProducts returns active products, optionally filtered by category
// slug, featured first then alphabetical. An empty or "all" slug means no
// filter.
func (r *catalogRepository) ListProducts(ctx context.Context, categorySlug string) ([]domain.Product, error) {
	query := `
		SELECT` + productColumns + `
		FROM products p
		JOIN categories c ON p.category_id = c.id
		WHERE p.is_active = TRUE`
	var args []any
	if categorySlug != "" && categorySlug != "all" {
		query += " AND c.slug = ?"
		args = append(args, categorySlug)
	}
	query += " ORDER BY p.featured DESC, p.name ASC"

	rows, err := r.s.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (r *catalogRepository) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT` + productColumns + `
		FROM products p
		JOIN categories c ON p.category_id = c.id
		WHERE p.id = ? AND p.is_active = TRUE`

	p, err := scanProduct(r.s.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

func (r *catalogRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.s.QueryContext(ctx, `
		SELECT id, name, slug, description, display_order, created_at
		FROM categories
		ORDER BY display_order ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]domain.Category, 0)
	for rows.Next() {
		var (
			c           domain.Category
			description sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &description, &c.DisplayOrder, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.Description = description.String
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

const jerkyColumns = `
	id, name, slug, title, description, price, weight, image_url, status,
	badge_text, badge_color, display_order, is_active, created_at`

func scanJerky(row interface{ Scan(...any) error }) (*domain.JerkyProduct, error) {
	// Every text column except name and slug is nullable in the schema.
	var (
		j                           domain.JerkyProduct
		title, description, weight  sql.NullString
		imageURL, status, badgeText sql.NullString
	)
	err := row.Scan(
		&j.ID, &j.Name, &j.Slug, &title, &description, &j.Price, &weight,
		&imageURL, &status, &badgeText, &j.BadgeColor, &j.DisplayOrder,
		&j.IsActive, &j.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	j.Title = title.String
	j.Description = description.String
	j.Weight = weight.String
	j.ImageURL = imageURL.String
	j.Status = status.String
	j.BadgeText = badgeText.String
	return &j, nil
}

func (r *catalogRepository) ListJerkyProducts(ctx context.Context) ([]domain.JerkyProduct, error) {
	rows, err := r.s.QueryContext(ctx, `
		SELECT`+jerkyColumns+`
		FROM jerky_products
		WHERE is_active = TRUE
		ORDER BY display_order ASC`)
	if err != nil {
		return nil, fmt.Errorf("list jerky products: %w", err)
	}
	defer rows.Close()

	jerky := make([]domain.JerkyProduct, 0)
	for rows.Next() {
		j, err := scanJerky(rows)
		if err != nil {
			return nil, fmt.Errorf("scan jerky product: %w", err)
		}
		jerky = append(jerky, *j)
	}
	return jerky, rows.Err()
}

func (r *catalogRepository) GetJerkyProduct(ctx context.Context, id int64) (*domain.JerkyProduct, error) {
	j, err := scanJerky(r.s.QueryRowContext(ctx, `
		SELECT`+jerkyColumns+`
		FROM jerky_products
		WHERE id = ? AND is_active = TRUE`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get jerky product %d: %w", id, err)
	}
	return j, nil
}
