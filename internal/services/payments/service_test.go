package payments

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bistro-boss/backend/internal/domain/cart"
	"github.com/bistro-boss/backend/internal/domain/menu"
	"github.com/bistro-boss/backend/internal/domain/payment"
	"github.com/bistro-boss/backend/internal/domain/user"
	"github.com/bistro-boss/backend/internal/storage/memory"
)

type fakeIntents struct {
	lastPrice float64
	fail      bool
}

func (f *fakeIntents) CreateIntent(_ context.Context, price float64) (string, error) {
	if f.fail {
		return "", fmt.Errorf("provider down")
	}
	f.lastPrice = price
	return "secret_123", nil
}

func newService(store *memory.Store, intents *fakeIntents) *Service {
	if intents == nil {
		return New(store, store, store, store, nil, nil)
	}
	return New(store, store, store, store, intents, nil)
}

func TestRecordCascadesCartDeletion(t *testing.T) {
	store := memory.New()
	svc := newService(store, nil)
	ctx := context.Background()

	var cartIDs []string
	for i := 0; i < 3; i++ {
		it, err := store.CreateCartItem(ctx, cart.Item{Email: "alice@example.com", Price: 5})
		if err != nil {
			t.Fatalf("create cart item: %v", err)
		}
		cartIDs = append(cartIDs, it.ID)
	}
	untouched, err := store.CreateCartItem(ctx, cart.Item{Email: "alice@example.com", Price: 9})
	if err != nil {
		t.Fatalf("create cart item: %v", err)
	}

	created, deleted, err := svc.Record(ctx, payment.Payment{
		Email:   "alice@example.com",
		Price:   15,
		CartIDs: cartIDs,
		Status:  "pending",
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected payment id")
	}
	if deleted != 3 {
		t.Fatalf("deleted = %d, want 3", deleted)
	}

	remaining, err := store.ListCartItems(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("list carts: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != untouched.ID {
		t.Fatalf("expected only the unreferenced cart item to remain, got %v", remaining)
	}

	payments, err := svc.ListByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("list payments: %v", err)
	}
	if len(payments) != 1 {
		t.Fatalf("expected 1 payment, got %d", len(payments))
	}
}

func TestRecordRequiresEmail(t *testing.T) {
	svc := newService(memory.New(), nil)

	if _, _, err := svc.Record(context.Background(), payment.Payment{Price: 10}); err == nil {
		t.Fatal("expected error for missing email")
	}
}

func TestCreateIntent(t *testing.T) {
	intents := &fakeIntents{}
	svc := newService(memory.New(), intents)

	secret, err := svc.CreateIntent(context.Background(), 12.5)
	if err != nil {
		t.Fatalf("create intent: %v", err)
	}
	if secret != "secret_123" {
		t.Fatalf("secret = %q", secret)
	}
	if intents.lastPrice != 12.5 {
		t.Fatalf("price = %v, want 12.5", intents.lastPrice)
	}

	unconfigured := newService(memory.New(), nil)
	if _, err := unconfigured.CreateIntent(context.Background(), 1); err == nil {
		t.Fatal("expected error without a configured provider")
	}
}

func TestAdminStats(t *testing.T) {
	store := memory.New()
	svc := newService(store, nil)
	ctx := context.Background()

	stats, err := svc.AdminStats(ctx)
	if err != nil {
		t.Fatalf("admin stats: %v", err)
	}
	assert.Equal(t, payment.AdminStats{}, stats)

	if _, err := store.CreateUser(ctx, user.User{Email: "alice@example.com"}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := store.CreateMenuItem(ctx, menu.Item{Name: "Caesar", Category: "Salad", Price: 5}); err != nil {
		t.Fatalf("create item: %v", err)
	}
	for _, price := range []float64{10, 20, 5} {
		if _, err := store.CreatePayment(ctx, payment.Payment{Email: "alice@example.com", Price: price}); err != nil {
			t.Fatalf("create payment: %v", err)
		}
	}

	stats, err = svc.AdminStats(ctx)
	if err != nil {
		t.Fatalf("admin stats: %v", err)
	}
	assert.Equal(t, payment.AdminStats{Users: 1, MenuItems: 1, Orders: 3, Revenue: 35}, stats)
}

func TestOrderStats(t *testing.T) {
	store := memory.New()
	svc := newService(store, nil)
	ctx := context.Background()

	cheap, _ := store.CreateMenuItem(ctx, menu.Item{Name: "Caesar", Category: "Salad", Price: 5})
	pricier, _ := store.CreateMenuItem(ctx, menu.Item{Name: "Greek", Category: "Salad", Price: 6})
	soup, _ := store.CreateMenuItem(ctx, menu.Item{Name: "Tomato", Category: "Soup", Price: 8})

	if _, _, err := svc.Record(ctx, payment.Payment{
		Email:       "alice@example.com",
		MenuItemIDs: []string{cheap.ID, cheap.ID},
	}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, _, err := svc.Record(ctx, payment.Payment{
		Email:       "bob@example.com",
		MenuItemIDs: []string{pricier.ID, soup.ID},
	}); err != nil {
		t.Fatalf("record: %v", err)
	}

	groups, err := svc.OrderStats(ctx)
	if err != nil {
		t.Fatalf("order stats: %v", err)
	}
	assert.ElementsMatch(t, []payment.CategorySales{
		{Category: "Salad", Quantity: 3, Revenue: 16},
		{Category: "Soup", Quantity: 1, Revenue: 8},
	}, groups)
}
