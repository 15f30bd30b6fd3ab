// Package rediscache decorates the menu store with a Redis read-through
// cache. The menu is read on every page load but written only by admins, so
// the full listing is cached and dropped on any write.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/bistro-boss/backend/internal/domain/menu"
	"github.com/bistro-boss/backend/internal/storage"
	"github.com/bistro-boss/backend/pkg/logger"
)

const menuListKey = "menu:all"

// MenuStore wraps another storage.MenuStore with caching. Cache failures are
// logged and fall through to the underlying store.
type MenuStore struct {
	next storage.MenuStore
	rdb  *redis.Client
	ttl  time.Duration
	log  *logger.Logger
}

var _ storage.MenuStore = (*MenuStore)(nil)

// NewMenuStore creates a caching wrapper around next.
func NewMenuStore(next storage.MenuStore, rdb *redis.Client, ttl time.Duration, log *logger.Logger) *MenuStore {
	if log == nil {
		log = logger.NewDefault("rediscache")
	}
	return &MenuStore{next: next, rdb: rdb, ttl: ttl, log: log}
}

func (c *MenuStore) ListMenuItems(ctx context.Context) ([]menu.Item, error) {
	cached, err := c.rdb.Get(ctx, menuListKey).Bytes()
	if err == nil {
		var items []menu.Item
		if err := json.Unmarshal(cached, &items); err == nil {
			return items, nil
		}
		// corrupt entry, fall through and overwrite
	} else if !errors.Is(err, redis.Nil) {
		c.log.WithError(err).Warn("menu cache read failed")
	}

	items, err := c.next.ListMenuItems(ctx)
	if err != nil {
		return nil, err
	}
	if encoded, err := json.Marshal(items); err == nil {
		if err := c.rdb.Set(ctx, menuListKey, encoded, c.ttl).Err(); err != nil {
			c.log.WithError(err).Warn("menu cache write failed")
		}
	}
	return items, nil
}

func (c *MenuStore) invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, menuListKey).Err(); err != nil {
		c.log.WithError(err).Warn("menu cache invalidation failed")
	}
}

func (c *MenuStore) CreateMenuItem(ctx context.Context, it menu.Item) (menu.Item, error) {
	created, err := c.next.CreateMenuItem(ctx, it)
	if err != nil {
		return menu.Item{}, err
	}
	c.invalidate(ctx)
	return created, nil
}

func (c *MenuStore) GetMenuItem(ctx context.Context, id string) (menu.Item, error) {
	return c.next.GetMenuItem(ctx, id)
}

func (c *MenuStore) UpdateMenuItem(ctx context.Context, id string, upd menu.Update) error {
	if err := c.next.UpdateMenuItem(ctx, id, upd); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *MenuStore) DeleteMenuItem(ctx context.Context, id string) error {
	if err := c.next.DeleteMenuItem(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *MenuStore) CountMenuItems(ctx context.Context) (int64, error) {
	return c.next.CountMenuItems(ctx)
}
