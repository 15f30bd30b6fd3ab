package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bistro-boss/backend/internal/domain/user"
	"github.com/bistro-boss/backend/internal/storage"
	"github.com/bistro-boss/backend/pkg/logger"
)

// Service manages registered accounts.
type Service struct {
	store storage.UserStore
	log   *logger.Logger
}

// New constructs a user service.
func New(store storage.UserStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("users")
	}
	return &Service{store: store, log: log}
}

// Register stores a new account. Registration is idempotent on email: when
// the email is already known no document is created and created is false.
func (s *Service) Register(ctx context.Context, u user.User) (user.User, bool, error) {
	if strings.TrimSpace(u.Email) == "" {
		return user.User{}, false, fmt.Errorf("email is required")
	}

	created, err := s.store.CreateUser(ctx, u)
	if errors.Is(err, storage.ErrDuplicate) {
		return user.User{}, false, nil
	}
	if err != nil {
		return user.User{}, false, err
	}
	s.log.WithField("email", created.Email).Info("user registered")
	return created, true, nil
}

// List returns every registered account.
func (s *Service) List(ctx context.Context) ([]user.User, error) {
	return s.store.ListUsers(ctx)
}

// IsAdmin reports whether the email belongs to an admin. Unknown emails are
// simply not admins.
func (s *Service) IsAdmin(ctx context.Context, email string) (bool, error) {
	u, err := s.store.GetUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return u.IsAdmin(), nil
}

// Promote grants the admin role to the account with the given id. Other
// fields are left untouched.
func (s *Service) Promote(ctx context.Context, id string) error {
	if err := s.store.PromoteUser(ctx, id); err != nil {
		return err
	}
	s.log.WithField("user_id", id).Info("user promoted to admin")
	return nil
}

// Delete removes the account with the given id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.log.WithField("user_id", id).Info("user deleted")
	return nil
}
