package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/tahoebearjerky/storefront-api/internal/domain"
	"github.com/tahoebearjerky/storefront-api/internal/repository"
)

type NewsletterService struct {
	repo   repository.NewsletterRepository
	logger *zap.Logger
}

func NewNewsletterService(repo repository.NewsletterRepository, logger *zap.Logger) *NewsletterService {
	return &NewsletterService{repo: repo, logger: logger}
}

// Subscribe upserts the email into the subscriber list; resubscribing is a
// no-op, not an error.
func (s *NewsletterService) Subscribe(ctx context.Context, email string) error {
	if email == "" {
		return domain.NewValidationError("email is required")
	}
	if err := s.repo.Subscribe(ctx, email); err != nil {
		return err
	}
	s.logger.Info("newsletter subscription", zap.String("email", email))
	return nil
}
