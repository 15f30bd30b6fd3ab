package carts

import (
	"context"
	"fmt"
	"strings"

	"github.com/bistro-boss/backend/internal/domain/cart"
	"github.com/bistro-boss/backend/internal/storage"
	"github.com/bistro-boss/backend/pkg/logger"
)

// Service manages shopping carts. Carts are scoped by owner email only;
// there is no ownership enforcement beyond the query filter.
type Service struct {
	store storage.CartStore
	log   *logger.Logger
}

// New constructs a cart service.
func New(store storage.CartStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("carts")
	}
	return &Service{store: store, log: log}
}

// List returns the cart items belonging to the email.
func (s *Service) List(ctx context.Context, email string) ([]cart.Item, error) {
	return s.store.ListCartItems(ctx, email)
}

// Add places an item in a cart.
func (s *Service) Add(ctx context.Context, it cart.Item) (cart.Item, error) {
	if strings.TrimSpace(it.Email) == "" {
		return cart.Item{}, fmt.Errorf("email is required")
	}
	return s.store.CreateCartItem(ctx, it)
}

// Remove deletes one cart item by id.
func (s *Service) Remove(ctx context.Context, id string) error {
	return s.store.DeleteCartItem(ctx, id)
}
