// Package memory provides a thread-safe in-memory implementation of the
// storage interfaces. It is intended for tests and prototyping and
// deliberately keeps the implementation simple.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bistro-boss/backend/internal/domain/cart"
	"github.com/bistro-boss/backend/internal/domain/menu"
	"github.com/bistro-boss/backend/internal/domain/payment"
	"github.com/bistro-boss/backend/internal/domain/review"
	"github.com/bistro-boss/backend/internal/domain/user"
	"github.com/bistro-boss/backend/internal/storage"
)

// Store keeps every collection in maps guarded by a single lock.
type Store struct {
	mu       sync.RWMutex
	nextID   int64
	users    map[string]user.User
	menu     map[string]menu.Item
	reviews  map[string]review.Review
	carts    map[string]cart.Item
	payments map[string]payment.Payment
}

var _ storage.UserStore = (*Store)(nil)
var _ storage.MenuStore = (*Store)(nil)
var _ storage.ReviewStore = (*Store)(nil)
var _ storage.CartStore = (*Store)(nil)
var _ storage.PaymentStore = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		nextID:   1,
		users:    make(map[string]user.User),
		menu:     make(map[string]menu.Item),
		reviews:  make(map[string]review.Review),
		carts:    make(map[string]cart.Item),
		payments: make(map[string]payment.Payment),
	}
}

func (s *Store) nextIDLocked() string {
	id := s.nextID
	s.nextID++
	return fmt.Sprintf("%d", id)
}

// UserStore implementation ----------------------------------------------------

func (s *Store) CreateUser(_ context.Context, u user.User) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email {
			return user.User{}, storage.ErrDuplicate
		}
	}

	if u.ID == "" {
		u.ID = s.nextIDLocked()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	s.users[u.ID] = u
	return u, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, storage.ErrNotFound
}

func (s *Store) ListUsers(_ context.Context) ([]user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]user.User, 0, len(s.users))
	for _, u := range s.users {
		result = append(result, u)
	}
	return result, nil
}

func (s *Store) PromoteUser(_ context.Context, id string) error {
	if id == "" {
		return storage.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return storage.ErrNotFound
	}
	u.Role = user.RoleAdmin
	s.users[id] = u
	return nil
}

func (s *Store) DeleteUser(_ context.Context, id string) error {
	if id == "" {
		return storage.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *Store) CountUsers(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.users)), nil
}

// MenuStore implementation ----------------------------------------------------

func (s *Store) CreateMenuItem(_ context.Context, it menu.Item) (menu.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if it.ID == "" {
		it.ID = s.nextIDLocked()
	}
	s.menu[it.ID] = it
	return it, nil
}

func (s *Store) GetMenuItem(_ context.Context, id string) (menu.Item, error) {
	if id == "" {
		return menu.Item{}, storage.ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.menu[id]
	if !ok {
		return menu.Item{}, storage.ErrNotFound
	}
	return it, nil
}

func (s *Store) ListMenuItems(_ context.Context) ([]menu.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]menu.Item, 0, len(s.menu))
	for _, it := range s.menu {
		result = append(result, it)
	}
	return result, nil
}

func (s *Store) UpdateMenuItem(_ context.Context, id string, upd menu.Update) error {
	if id == "" {
		return storage.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.menu[id]
	if !ok {
		return storage.ErrNotFound
	}
	it.Name = upd.Name
	it.Category = upd.Category
	it.Price = upd.Price
	it.Recipe = upd.Recipe
	it.Image = upd.Image
	s.menu[id] = it
	return nil
}

func (s *Store) DeleteMenuItem(_ context.Context, id string) error {
	if id == "" {
		return storage.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.menu[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.menu, id)
	return nil
}

func (s *Store) CountMenuItems(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.menu)), nil
}

// ReviewStore implementation --------------------------------------------------

// CreateReview seeds a review. Reviews have no API write path; this exists
// for tests and fixtures.
func (s *Store) CreateReview(_ context.Context, rv review.Review) (review.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rv.ID == "" {
		rv.ID = s.nextIDLocked()
	}
	s.reviews[rv.ID] = rv
	return rv, nil
}

func (s *Store) ListReviews(_ context.Context) ([]review.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]review.Review, 0, len(s.reviews))
	for _, rv := range s.reviews {
		result = append(result, rv)
	}
	return result, nil
}

// CartStore implementation ----------------------------------------------------

func (s *Store) CreateCartItem(_ context.Context, it cart.Item) (cart.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if it.ID == "" {
		it.ID = s.nextIDLocked()
	}
	s.carts[it.ID] = it
	return it, nil
}

func (s *Store) ListCartItems(_ context.Context, email string) ([]cart.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]cart.Item, 0)
	for _, it := range s.carts {
		if it.Email == email {
			result = append(result, it)
		}
	}
	return result, nil
}

func (s *Store) DeleteCartItem(_ context.Context, id string) error {
	if id == "" {
		return storage.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.carts[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.carts, id)
	return nil
}

func (s *Store) DeleteCartItems(_ context.Context, ids []string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for _, id := range ids {
		if id == "" {
			return deleted, storage.ErrInvalidID
		}
		if _, ok := s.carts[id]; ok {
			delete(s.carts, id)
			deleted++
		}
	}
	return deleted, nil
}

// PaymentStore implementation -------------------------------------------------

func (s *Store) CreatePayment(_ context.Context, p payment.Payment) (payment.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = s.nextIDLocked()
	}
	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}
	p.CartIDs = append([]string(nil), p.CartIDs...)
	p.MenuItemIDs = append([]string(nil), p.MenuItemIDs...)
	s.payments[p.ID] = p
	return p, nil
}

func (s *Store) ListPaymentsByEmail(_ context.Context, email string) ([]payment.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]payment.Payment, 0)
	for _, p := range s.payments {
		if p.Email == email {
			result = append(result, p)
		}
	}
	return result, nil
}

func (s *Store) CountPayments(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.payments)), nil
}

func (s *Store) TotalRevenue(_ context.Context) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total float64
	for _, p := range s.payments {
		total += p.Price
	}
	return total, nil
}

func (s *Store) CategorySales(_ context.Context) ([]payment.CategorySales, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	groups := make(map[string]*payment.CategorySales)
	for _, p := range s.payments {
		for _, itemID := range p.MenuItemIDs {
			it, ok := s.menu[itemID]
			if !ok {
				// inner-join semantics: unmatched ids are dropped
				continue
			}
			g, ok := groups[it.Category]
			if !ok {
				g = &payment.CategorySales{Category: it.Category}
				groups[it.Category] = g
			}
			g.Quantity++
			g.Revenue += it.Price
		}
	}

	result := make([]payment.CategorySales, 0, len(groups))
	for _, g := range groups {
		result = append(result, *g)
	}
	return result, nil
}
