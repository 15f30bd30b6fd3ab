package reviews

import (
	"context"

	"github.com/bistro-boss/backend/internal/domain/review"
	"github.com/bistro-boss/backend/internal/storage"
)

// Service reads customer reviews. There is no write path.
type Service struct {
	store storage.ReviewStore
}

// New constructs a review service.
func New(store storage.ReviewStore) *Service {
	return &Service{store: store}
}

// List returns every review.
func (s *Service) List(ctx context.Context) ([]review.Review, error) {
	return s.store.ListReviews(ctx)
}
