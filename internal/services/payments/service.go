package payments

import (
	"context"
	"fmt"
	"strings"

	"github.com/bistro-boss/backend/internal/billing"
	"github.com/bistro-boss/backend/internal/domain/payment"
	"github.com/bistro-boss/backend/internal/metrics"
	"github.com/bistro-boss/backend/internal/storage"
	"github.com/bistro-boss/backend/pkg/logger"
)

// Service handles checkout: payment intents, payment records with their cart
// cascade, and the two analytics reports.
type Service struct {
	payments storage.PaymentStore
	carts    storage.CartStore
	users    storage.UserStore
	menu     storage.MenuStore
	intents  billing.IntentCreator
	log      *logger.Logger
}

// New constructs a payment service. intents may be nil when no payment
// provider is configured; CreateIntent then fails cleanly.
func New(payments storage.PaymentStore, carts storage.CartStore, users storage.UserStore, menu storage.MenuStore, intents billing.IntentCreator, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("payments")
	}
	return &Service{payments: payments, carts: carts, users: users, menu: menu, intents: intents, log: log}
}

// CreateIntent asks the payment provider for a client secret covering the
// given price.
func (s *Service) CreateIntent(ctx context.Context, price float64) (string, error) {
	if s.intents == nil {
		return "", fmt.Errorf("payment provider not configured")
	}
	return s.intents.CreateIntent(ctx, price)
}

// Record stores the payment and then deletes the cart items it references.
// The two steps are sequential and not atomic: when the cascade fails the
// payment stays recorded with stale cart references, and no retry happens.
func (s *Service) Record(ctx context.Context, p payment.Payment) (payment.Payment, int64, error) {
	if strings.TrimSpace(p.Email) == "" {
		return payment.Payment{}, 0, fmt.Errorf("email is required")
	}

	created, err := s.payments.CreatePayment(ctx, p)
	if err != nil {
		metrics.RecordCheckout(false, 0)
		return payment.Payment{}, 0, err
	}

	deleted, err := s.carts.DeleteCartItems(ctx, created.CartIDs)
	if err != nil {
		metrics.RecordCheckout(false, deleted)
		s.log.WithError(err).
			WithField("payment_id", created.ID).
			Error("cart cascade failed, payment kept")
		return created, deleted, err
	}

	metrics.RecordCheckout(true, deleted)
	s.log.WithField("payment_id", created.ID).
		WithField("email", created.Email).
		WithField("carts_deleted", deleted).
		Info("payment recorded")
	return created, deleted, nil
}

// ListByEmail returns the payments belonging to the email.
func (s *Service) ListByEmail(ctx context.Context, email string) ([]payment.Payment, error) {
	return s.payments.ListPaymentsByEmail(ctx, email)
}

// AdminStats returns collection counts and total revenue.
func (s *Service) AdminStats(ctx context.Context) (payment.AdminStats, error) {
	users, err := s.users.CountUsers(ctx)
	if err != nil {
		return payment.AdminStats{}, err
	}
	menuItems, err := s.menu.CountMenuItems(ctx)
	if err != nil {
		return payment.AdminStats{}, err
	}
	orders, err := s.payments.CountPayments(ctx)
	if err != nil {
		return payment.AdminStats{}, err
	}
	revenue, err := s.payments.TotalRevenue(ctx)
	if err != nil {
		return payment.AdminStats{}, err
	}
	return payment.AdminStats{Users: users, MenuItems: menuItems, Orders: orders, Revenue: revenue}, nil
}

// OrderStats returns the category-level sales breakdown.
func (s *Service) OrderStats(ctx context.Context) ([]payment.CategorySales, error) {
	return s.payments.CategorySales(ctx)
}
