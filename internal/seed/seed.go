// Package seed loads the storefront's initial catalog. Every insert is
// engine-appropriate insert-or-ignore, and failures are tolerated per row,
// so reseeding over a partially populated database is safe.
package seed

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tahoebearjerky/storefront-api/internal/store"
)

type category struct {
	name, slug, description string
	displayOrder            int
}

type product struct {
	name, slug, categorySlug, description string
	price                                 string
	emoji                                 string
	stock                                 int
	active, featured                      bool
}

type jerkyProduct struct {
	name, slug, title, description string
	price, weight, imageURL        string
	status, badgeText              string
	displayOrder                   int
	active                         bool
}

var categories = []category{
	{"T-Shirts", "tshirts", "Comfortable and stylish t-shirts", 1},
	{"Sweaters", "sweaters", "Cozy sweaters and hoodies", 2},
	{"Hats", "hats", "Hats and beanies for all seasons", 3},
	{"Stickers", "stickers", "Weatherproof vinyl stickers", 4},
}

var products = []product{
	{"Classic Bear Tee", "classic-bear-tee", "tshirts",
		"Our signature tee featuring the iconic Tahoe Bear. Made from 100% organic cotton.",
		"29.99", "👕", 50, true, true},
	{"Don't Feed The Bears Tee", "dont-feed-bears-tee", "tshirts",
		"A friendly reminder to keep our wildlife wild. Soft and comfortable fit.",
		"29.99", "👕", 45, true, false},
	{"Grid Life Hoodie", "grid-life-hoodie", "sweaters",
		"Perfect for chilly Tahoe evenings. Represents the Kings Beach Grid lifestyle.",
		"59.99", "🧥", 30, true, true},
	{"Cozy Cabin Crewneck", "cozy-cabin-crewneck", "sweaters",
		"The ultimate lounging sweater. Guaranteed to make you want to hibernate.",
		"54.99", "🧥", 25, true, false},
	{"Trucker Hat", "trucker-hat", "hats",
		"Keep the sun out of your eyes while spotting bears. Mesh back for breathability.",
		"24.99", "🧢", 60, true, true},
	{"Beanie Cap", "beanie-cap", "hats",
		"Warm knit beanie for those snowy powder days.",
		"22.99", "🧶", 40, true, false},
	{"Bear Crossing Sticker", "bear-crossing-sticker", "stickers",
		"High-quality vinyl sticker. Weatherproof and bear-proof.",
		"4.99", "🏷️", 200, true, true},
	{"Tahoe Outline Sticker", "tahoe-outline-sticker", "stickers",
		"Show your love for the lake. Perfect for water bottles and laptops.",
		"4.99", "🏔️", 150, true, false},
}

var jerkyProducts = []jerkyProduct{
	{"Premium Bear Jerky", "premium-bear-jerky", "Premium Bear Jerky",
		"The original classic. Tough, chewy, and tastes vaguely of trash bags and pine needles.",
		"45.00", "4oz", "https://tahoebearjerky.com/bear_with_jerky.png",
		"sold_out", "SOLD OUT", 1, true},
	{"Spicy Lynx Jerky", "spicy-lynx-jerky", "Spicy Lynx Jerky",
		"Elusive flavor for the elusive palate. Catches you by surprise.",
		"55.00", "3oz", "https://tahoebearjerky.com/lynx_with_jerky.png",
		"coming_soon", "COMING SOON", 2, true},
	{"Coyote Snack Sticks", "coyote-snack-sticks", "Coyote Snack Sticks",
		"Lean, mean, and howlin' with flavor. Best enjoyed under a full moon.",
		"35.00", "6oz", "https://tahoebearjerky.com/coyote_with_sign.png",
		"seasonal", "SEASONAL", 3, true},
}

// Run seeds categories, products, and jerky products.
func Run(ctx context.Context, s *store.Store, logger *zap.Logger) error {
	catInsert := s.Dialect().InsertOrIgnore("categories", "slug",
		[]string{"name", "slug", "description", "display_order"})
	for _, c := range categories {
		if _, err := s.ExecContext(ctx, catInsert, c.name, c.slug, c.description, c.displayOrder); err != nil {
			logger.Warn("skipping category", zap.String("slug", c.slug), zap.Error(err))
		}
	}
	logger.Info("seeded categories", zap.Int("count", len(categories)))

	// Resolve category ids by slug rather than assuming insertion order.
	categoryIDs := make(map[string]int64, len(categories))
	rows, err := s.QueryContext(ctx, "SELECT id, slug FROM categories")
	if err != nil {
		return fmt.Errorf("load category ids: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id   int64
			slug string
		)
		if err := rows.Scan(&id, &slug); err != nil {
			return fmt.Errorf("scan category id: %w", err)
		}
		categoryIDs[slug] = id
	}
	if err := rows.Err(); err != nil {
		return err
	}

	prodInsert := s.Dialect().InsertOrIgnore("products", "slug",
		[]string{"name", "slug", "category_id", "description", "price", "emoji", "stock_quantity", "is_active", "featured"})
	for _, p := range products {
		catID, ok := categoryIDs[p.categorySlug]
		if !ok {
			logger.Warn("skipping product, unknown category", zap.String("slug", p.slug))
			continue
		}
		if _, err := s.ExecContext(ctx, prodInsert,
			p.name, p.slug, catID, p.description, p.price, p.emoji, p.stock, p.active, p.featured); err != nil {
			logger.Warn("skipping product", zap.String("slug", p.slug), zap.Error(err))
		}
	}
	logger.Info("seeded products", zap.Int("count", len(products)))

	jerkyInsert := s.Dialect().InsertOrIgnore("jerky_products", "slug",
		[]string{"name", "slug", "title", "description", "price", "weight", "image_url", "status", "badge_text", "display_order", "is_active"})
	for _, j := range jerkyProducts {
		if _, err := s.ExecContext(ctx, jerkyInsert,
			j.name, j.slug, j.title, j.description, j.price, j.weight, j.imageURL,
			j.status, j.badgeText, j.displayOrder, j.active); err != nil {
			logger.Warn("skipping jerky product", zap.String("slug", j.slug), zap.Error(err))
		}
	}
	logger.Info("seeded jerky products", zap.Int("count", len(jerkyProducts)))

	return nil
}
