package userbus_test

import (
	"context"
	"errors"
	"io"
	"net/mail"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/negocio360/platform/business/domain/userbus"
	"github.com/negocio360/platform/business/sdk/order"
	"github.com/negocio360/platform/business/sdk/page"
	"github.com/negocio360/platform/business/sdk/sqldb"
	"github.com/negocio360/platform/business/types/name"
	"github.com/negocio360/platform/business/types/password"
	"github.com/negocio360/platform/foundation/logger"
)

func newTestCore(t *testing.T) *userbus.Core {
	t.Helper()

	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)
	return userbus.NewCore(log, &fakeStore{})
}

func TestCreate(t *testing.T) {
	core := newTestCore(t)

	nu := userbus.NewUser{
		Name:     name.MustParse("Maria Silva"),
		Email:    mail.Address{Address: "maria@negocio.com"},
		Password: password.MustParse("Gopher123!"),
	}

	usr, err := core.Create(context.Background(), nu)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if !usr.Enabled {
		t.Error("expected new user to be enabled")
	}
	if len(usr.PasswordHash) == 0 {
		t.Error("expected password hash to be set")
	}

	got, err := core.QueryByID(context.Background(), usr.ID)
	if err != nil {
		t.Fatalf("QueryByID: %v", err)
	}

	if diff := cmp.Diff(usr, got); diff != "" {
		t.Errorf("stored user mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateDuplicateEmail(t *testing.T) {
	core := newTestCore(t)

	nu := userbus.NewUser{
		Name:     name.MustParse("Maria Silva"),
		Email:    mail.Address{Address: "maria@negocio.com"},
		Password: password.MustParse("Gopher123!"),
	}

	if _, err := core.Create(context.Background(), nu); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := core.Create(context.Background(), nu); !errors.Is(err, userbus.ErrUniqueEmail) {
		t.Fatalf("expected ErrUniqueEmail, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	core := newTestCore(t)

	nu := userbus.NewUser{
		Name:     name.MustParse("Maria Silva"),
		Email:    mail.Address{Address: "maria@negocio.com"},
		Password: password.MustParse("Gopher123!"),
	}

	usr, err := core.Create(context.Background(), nu)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		got, err := core.Authenticate(context.Background(), usr.Email, "Gopher123!")
		if err != nil {
			t.Fatalf("Authenticate: %v", err)
		}
		if diff := cmp.Diff(usr, got); diff != "" {
			t.Errorf("authenticated user mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if _, err := core.Authenticate(context.Background(), usr.Email, "WrongPass1!"); !errors.Is(err, userbus.ErrAuthenticationFailure) {
			t.Fatalf("expected ErrAuthenticationFailure, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		if _, err := core.Authenticate(context.Background(), mail.Address{Address: "nobody@negocio.com"}, "Gopher123!"); !errors.Is(err, userbus.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("disabled user", func(t *testing.T) {
		disabled := false
		if _, err := core.Update(context.Background(), usr, userbus.UpdateUser{Enabled: &disabled}); err != nil {
			t.Fatalf("Update: %v", err)
		}

		if _, err := core.Authenticate(context.Background(), usr.Email, "Gopher123!"); !errors.Is(err, userbus.ErrAuthenticationFailure) {
			t.Fatalf("expected ErrAuthenticationFailure for disabled user, got %v", err)
		}
	})
}

// =============================================================================

type fakeStore struct {
	users []userbus.User
}

func (s *fakeStore) NewWithTx(tx sqldb.CommitRollbacker) (userbus.Storer, error) {
	return s, nil
}

func (s *fakeStore) Create(ctx context.Context, usr userbus.User) error {
	for _, u := range s.users {
		if u.Email.Address == usr.Email.Address {
			return userbus.ErrUniqueEmail
		}
	}
	s.users = append(s.users, usr)
	return nil
}

func (s *fakeStore) Update(ctx context.Context, usr userbus.User) error {
	for i, u := range s.users {
		if u.ID == usr.ID {
			s.users[i] = usr
			return nil
		}
	}
	return userbus.ErrNotFound
}

func (s *fakeStore) Query(ctx context.Context, filter userbus.QueryFilter, orderBy order.By, page page.Page) ([]userbus.User, error) {
	return s.users, nil
}

func (s *fakeStore) Count(ctx context.Context, filter userbus.QueryFilter) (int, error) {
	return len(s.users), nil
}

func (s *fakeStore) QueryByID(ctx context.Context, userID uuid.UUID) (userbus.User, error) {
	for _, u := range s.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return userbus.User{}, userbus.ErrNotFound
}

func (s *fakeStore) QueryByEmail(ctx context.Context, email mail.Address) (userbus.User, error) {
	for _, u := range s.users {
		if u.Email.Address == email.Address {
			return u, nil
		}
	}
	return userbus.User{}, userbus.ErrNotFound
}
