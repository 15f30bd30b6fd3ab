package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/bistro-boss/backend/internal/domain/cart"
	"github.com/bistro-boss/backend/internal/domain/menu"
	"github.com/bistro-boss/backend/internal/domain/payment"
	"github.com/bistro-boss/backend/internal/domain/user"
	"github.com/bistro-boss/backend/internal/storage"
)

func TestCreateUserDuplicate(t *testing.T) {
	store := New()
	ctx := context.Background()

	first, err := store.CreateUser(ctx, user.User{Name: "Alice", Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if first.ID == "" {
		t.Fatal("expected assigned id")
	}

	_, err = store.CreateUser(ctx, user.User{Name: "Other Alice", Email: "alice@example.com"})
	if !errors.Is(err, storage.ErrDuplicate) {
		t.Fatalf("second create = %v, want ErrDuplicate", err)
	}

	users, err := store.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
}

func TestPromoteUser(t *testing.T) {
	store := New()
	ctx := context.Background()

	u, err := store.CreateUser(ctx, user.User{Email: "bob@example.com"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	if err := store.PromoteUser(ctx, u.ID); err != nil {
		t.Fatalf("promote: %v", err)
	}
	got, err := store.GetUserByEmail(ctx, "bob@example.com")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if !got.IsAdmin() {
		t.Fatal("expected admin role after promotion")
	}
	if got.Email != u.Email || got.Name != u.Name {
		t.Fatal("promotion must not touch other fields")
	}

	if err := store.PromoteUser(ctx, "999"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("promote missing = %v, want ErrNotFound", err)
	}
	if err := store.PromoteUser(ctx, ""); !errors.Is(err, storage.ErrInvalidID) {
		t.Fatalf("promote empty id = %v, want ErrInvalidID", err)
	}
}

func TestMenuCRUD(t *testing.T) {
	store := New()
	ctx := context.Background()

	it, err := store.CreateMenuItem(ctx, menu.Item{Name: "Caesar", Category: "Salad", Price: 5})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}

	if err := store.UpdateMenuItem(ctx, it.ID, menu.Update{Name: "Caesar", Category: "Salad", Price: 6}); err != nil {
		t.Fatalf("update item: %v", err)
	}
	got, err := store.GetMenuItem(ctx, it.ID)
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if got.Price != 6 {
		t.Fatalf("price = %v, want 6", got.Price)
	}

	if err := store.DeleteMenuItem(ctx, it.ID); err != nil {
		t.Fatalf("delete item: %v", err)
	}
	if _, err := store.GetMenuItem(ctx, it.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get deleted = %v, want ErrNotFound", err)
	}
	if err := store.DeleteMenuItem(ctx, it.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("delete missing = %v, want ErrNotFound", err)
	}
}

func TestDeleteCartItemsLeavesOthers(t *testing.T) {
	store := New()
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		it, err := store.CreateCartItem(ctx, cart.Item{Email: "alice@example.com", Price: 5})
		if err != nil {
			t.Fatalf("create cart item: %v", err)
		}
		ids = append(ids, it.ID)
	}
	other, err := store.CreateCartItem(ctx, cart.Item{Email: "bob@example.com", Price: 7})
	if err != nil {
		t.Fatalf("create other cart item: %v", err)
	}

	deleted, err := store.DeleteCartItems(ctx, ids)
	if err != nil {
		t.Fatalf("delete cart items: %v", err)
	}
	if deleted != 3 {
		t.Fatalf("deleted = %d, want 3", deleted)
	}

	remaining, err := store.ListCartItems(ctx, "bob@example.com")
	if err != nil {
		t.Fatalf("list carts: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != other.ID {
		t.Fatalf("expected bob's cart untouched, got %v", remaining)
	}

	// missing ids are skipped, not errors
	deleted, err = store.DeleteCartItems(ctx, ids)
	if err != nil {
		t.Fatalf("re-delete: %v", err)
	}
	if deleted != 0 {
		t.Fatalf("re-delete count = %d, want 0", deleted)
	}
}

func TestTotalRevenue(t *testing.T) {
	store := New()
	ctx := context.Background()

	revenue, err := store.TotalRevenue(ctx)
	if err != nil {
		t.Fatalf("revenue: %v", err)
	}
	if revenue != 0 {
		t.Fatalf("empty revenue = %v, want 0", revenue)
	}

	for _, price := range []float64{10, 20, 5} {
		if _, err := store.CreatePayment(ctx, payment.Payment{Email: "alice@example.com", Price: price}); err != nil {
			t.Fatalf("create payment: %v", err)
		}
	}

	revenue, err = store.TotalRevenue(ctx)
	if err != nil {
		t.Fatalf("revenue: %v", err)
	}
	if revenue != 35 {
		t.Fatalf("revenue = %v, want 35", revenue)
	}
}

func TestCategorySalesInnerJoin(t *testing.T) {
	store := New()
	ctx := context.Background()

	salad1, _ := store.CreateMenuItem(ctx, menu.Item{Name: "Caesar", Category: "Salad", Price: 5})
	salad2, _ := store.CreateMenuItem(ctx, menu.Item{Name: "Greek", Category: "Salad", Price: 6})
	soup, _ := store.CreateMenuItem(ctx, menu.Item{Name: "Tomato", Category: "Soup", Price: 8})

	if _, err := store.CreatePayment(ctx, payment.Payment{
		Email:       "alice@example.com",
		MenuItemIDs: []string{salad1.ID, salad1.ID, soup.ID},
	}); err != nil {
		t.Fatalf("create payment: %v", err)
	}
	if _, err := store.CreatePayment(ctx, payment.Payment{
		Email:       "bob@example.com",
		MenuItemIDs: []string{salad2.ID, "no-such-item"},
	}); err != nil {
		t.Fatalf("create payment: %v", err)
	}

	groups, err := store.CategorySales(ctx)
	if err != nil {
		t.Fatalf("category sales: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %v", groups)
	}

	byCategory := make(map[string]payment.CategorySales)
	for _, g := range groups {
		byCategory[g.Category] = g
	}
	if g := byCategory["Salad"]; g.Quantity != 3 || g.Revenue != 16 {
		t.Fatalf("Salad = %+v, want quantity 3 revenue 16", g)
	}
	if g := byCategory["Soup"]; g.Quantity != 1 || g.Revenue != 8 {
		t.Fatalf("Soup = %+v, want quantity 1 revenue 8", g)
	}
}
