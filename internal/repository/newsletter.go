package repository

import (
	"context"
	"fmt"

	"github.com/tahoebearjerky/storefront-api/internal/store"
)

type NewsletterRepository interface {
	// Subscribe records the email, silently keeping the existing row when
	// it is already subscribed.
	Subscribe(ctx context.Context, email string) error
}

type newsletterRepository struct {
	s *store.Store
}

func NewNewsletterRepository(s *store.Store) NewsletterRepository {
	return &newsletterRepository{s: s}
}

func (r *newsletterRepository) Subscribe(ctx context.Context, email string) error {
	query := r.s.Dialect().InsertOrIgnore("newsletter_subscribers", "email", []string{"email"})
	if _, err := r.s.ExecContext(ctx, query, email); err != nil {
		return fmt.Errorf("subscribe %s: %w", email, err)
	}
	return nil
}
