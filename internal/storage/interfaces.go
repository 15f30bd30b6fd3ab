package storage

import (
	"context"
	"errors"

	"github.com/bistro-boss/backend/internal/domain/cart"
	"github.com/bistro-boss/backend/internal/domain/menu"
	"github.com/bistro-boss/backend/internal/domain/payment"
	"github.com/bistro-boss/backend/internal/domain/review"
	"github.com/bistro-boss/backend/internal/domain/user"
)

var (
	// ErrNotFound is returned when the target of a by-id operation does not
	// exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidID is returned when an identifier fails validation before it
	// reaches the underlying collection.
	ErrInvalidID = errors.New("invalid id")

	// ErrDuplicate is returned by CreateUser when the email is already
	// registered. Callers treat it as an "already exists" signal, not a
	// failure.
	ErrDuplicate = errors.New("already exists")
)

// UserStore persists registered accounts.
type UserStore interface {
	CreateUser(ctx context.Context, u user.User) (user.User, error)
	GetUserByEmail(ctx context.Context, email string) (user.User, error)
	ListUsers(ctx context.Context) ([]user.User, error)
	PromoteUser(ctx context.Context, id string) error
	DeleteUser(ctx context.Context, id string) error
	CountUsers(ctx context.Context) (int64, error)
}

// MenuStore persists menu items.
type MenuStore interface {
	CreateMenuItem(ctx context.Context, it menu.Item) (menu.Item, error)
	GetMenuItem(ctx context.Context, id string) (menu.Item, error)
	ListMenuItems(ctx context.Context) ([]menu.Item, error)
	UpdateMenuItem(ctx context.Context, id string, upd menu.Update) error
	DeleteMenuItem(ctx context.Context, id string) error
	CountMenuItems(ctx context.Context) (int64, error)
}

// ReviewStore reads customer reviews. The API has no write path for them.
type ReviewStore interface {
	ListReviews(ctx context.Context) ([]review.Review, error)
}

// CartStore persists cart items keyed by owner email.
type CartStore interface {
	CreateCartItem(ctx context.Context, it cart.Item) (cart.Item, error)
	ListCartItems(ctx context.Context, email string) ([]cart.Item, error)
	DeleteCartItem(ctx context.Context, id string) error
	// DeleteCartItems removes every cart item whose id appears in ids and
	// returns the number actually deleted. Missing ids are skipped.
	DeleteCartItems(ctx context.Context, ids []string) (int64, error)
}

// PaymentStore persists payments and answers the two analytics queries.
type PaymentStore interface {
	CreatePayment(ctx context.Context, p payment.Payment) (payment.Payment, error)
	ListPaymentsByEmail(ctx context.Context, email string) ([]payment.Payment, error)
	CountPayments(ctx context.Context) (int64, error)
	// TotalRevenue sums the price of every payment, 0 when there are none.
	TotalRevenue(ctx context.Context) (float64, error)
	// CategorySales expands each payment's menuItemIds, joins them against
	// the menu collection and groups by category. Ids with no matching menu
	// item are dropped. Group order is unspecified.
	CategorySales(ctx context.Context) ([]payment.CategorySales, error)
}
