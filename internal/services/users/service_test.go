package users

import (
	"context"
	"testing"

	"github.com/bistro-boss/backend/internal/domain/user"
	"github.com/bistro-boss/backend/internal/storage/memory"
)

func TestRegisterIdempotent(t *testing.T) {
	store := memory.New()
	svc := New(store, nil)
	ctx := context.Background()

	first, created, err := svc.Register(ctx, user.User{Name: "Alice", Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if !created || first.ID == "" {
		t.Fatalf("expected fresh registration, got created=%v id=%q", created, first.ID)
	}

	second, created, err := svc.Register(ctx, user.User{Name: "Alice Again", Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("re-register: %v", err)
	}
	if created || second.ID != "" {
		t.Fatalf("expected already-exists signal, got created=%v id=%q", created, second.ID)
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 user, got %d", len(list))
	}
}

func TestRegisterRequiresEmail(t *testing.T) {
	svc := New(memory.New(), nil)

	if _, _, err := svc.Register(context.Background(), user.User{Name: "No Email"}); err == nil {
		t.Fatal("expected error for missing email")
	}
}

func TestIsAdmin(t *testing.T) {
	store := memory.New()
	svc := New(store, nil)
	ctx := context.Background()

	u, created, err := svc.Register(ctx, user.User{Email: "bob@example.com"})
	if err != nil || !created {
		t.Fatalf("register: created=%v err=%v", created, err)
	}

	isAdmin, err := svc.IsAdmin(ctx, "bob@example.com")
	if err != nil {
		t.Fatalf("is admin: %v", err)
	}
	if isAdmin {
		t.Fatal("fresh user must not be admin")
	}

	// unknown emails are not errors, just not admins
	isAdmin, err = svc.IsAdmin(ctx, "stranger@example.com")
	if err != nil || isAdmin {
		t.Fatalf("unknown email: admin=%v err=%v", isAdmin, err)
	}

	if err := svc.Promote(ctx, u.ID); err != nil {
		t.Fatalf("promote: %v", err)
	}
	isAdmin, err = svc.IsAdmin(ctx, "bob@example.com")
	if err != nil {
		t.Fatalf("is admin: %v", err)
	}
	if !isAdmin {
		t.Fatal("expected admin after promotion")
	}
}
