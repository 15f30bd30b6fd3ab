package menusvc

import (
	"context"
	"fmt"
	"strings"

	"github.com/bistro-boss/backend/internal/domain/menu"
	"github.com/bistro-boss/backend/internal/storage"
	"github.com/bistro-boss/backend/pkg/logger"
)

// Service manages the menu.
type Service struct {
	store storage.MenuStore
	log   *logger.Logger
}

// New constructs a menu service.
func New(store storage.MenuStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("menu")
	}
	return &Service{store: store, log: log}
}

// List returns the full menu.
func (s *Service) List(ctx context.Context) ([]menu.Item, error) {
	return s.store.ListMenuItems(ctx)
}

// Get returns a single item by id.
func (s *Service) Get(ctx context.Context, id string) (menu.Item, error) {
	return s.store.GetMenuItem(ctx, id)
}

// Create adds an item to the menu.
func (s *Service) Create(ctx context.Context, it menu.Item) (menu.Item, error) {
	if strings.TrimSpace(it.Name) == "" {
		return menu.Item{}, fmt.Errorf("name is required")
	}
	created, err := s.store.CreateMenuItem(ctx, it)
	if err != nil {
		return menu.Item{}, err
	}
	s.log.WithField("item_id", created.ID).WithField("category", created.Category).Info("menu item created")
	return created, nil
}

// Update replaces the mutable fields of an item.
func (s *Service) Update(ctx context.Context, id string, upd menu.Update) error {
	return s.store.UpdateMenuItem(ctx, id, upd)
}

// Delete removes an item from the menu.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteMenuItem(ctx, id); err != nil {
		return err
	}
	s.log.WithField("item_id", id).Info("menu item deleted")
	return nil
}
