package memberbus_test

import (
	"context"
	"errors"
	"io"
	"net/mail"
	"testing"

	"github.com/google/uuid"
	"github.com/negocio360/platform/business/domain/memberbus"
	"github.com/negocio360/platform/business/domain/userbus"
	"github.com/negocio360/platform/business/sdk/order"
	"github.com/negocio360/platform/business/sdk/page"
	"github.com/negocio360/platform/business/sdk/sqldb"
	"github.com/negocio360/platform/business/types/memberstatus"
	"github.com/negocio360/platform/business/types/role"
	"github.com/negocio360/platform/foundation/logger"
)

func newTestCore(t *testing.T, users ...userbus.User) (*memberbus.Core, *fakeStore) {
	t.Helper()

	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)

	us := &fakeUserStore{users: users}
	store := &fakeStore{members: make(map[uuid.UUID]memberbus.Member)}

	return memberbus.NewCore(log, store, userbus.NewCore(log, us)), store
}

func testUser(email string) userbus.User {
	return userbus.User{
		ID:      uuid.New(),
		Email:   mail.Address{Address: email},
		Enabled: true,
	}
}

func member(tenantID uuid.UUID, r role.Role) memberbus.Member {
	return memberbus.Member{
		ID:       uuid.New(),
		TenantID: tenantID,
		UserID:   uuid.New(),
		Role:     r,
		Status:   memberstatus.Active,
	}
}

func TestCreateOwner(t *testing.T) {
	owner := testUser("owner@negocio.com")
	core, store := newTestCore(t, owner)

	tenantID := uuid.New()

	m, err := core.CreateOwner(context.Background(), tenantID, owner.ID)
	if err != nil {
		t.Fatalf("CreateOwner: %v", err)
	}

	if !m.Role.Equal(role.Owner) {
		t.Errorf("expected owner role, got %s", m.Role)
	}
	if !m.Status.Equal(memberstatus.Active) {
		t.Errorf("expected active status, got %s", m.Status)
	}
	if m.UserID != owner.ID || m.TenantID != tenantID {
		t.Errorf("membership not bound to tenant/owner: %+v", m)
	}
	if len(store.members) != 1 {
		t.Errorf("expected 1 stored member, got %d", len(store.members))
	}
}

func TestCreateOwnerDuplicate(t *testing.T) {
	owner := testUser("owner@negocio.com")
	core, _ := newTestCore(t, owner)

	tenantID := uuid.New()

	if _, err := core.CreateOwner(context.Background(), tenantID, owner.ID); err != nil {
		t.Fatalf("CreateOwner: %v", err)
	}

	if _, err := core.CreateOwner(context.Background(), tenantID, owner.ID); !errors.Is(err, memberbus.ErrDuplicateOwner) {
		t.Fatalf("expected ErrDuplicateOwner, got %v", err)
	}
}

func TestCreateOwnerUnknownPrincipal(t *testing.T) {
	core, _ := newTestCore(t)

	if _, err := core.CreateOwner(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, memberbus.ErrPrincipalNotFound) {
		t.Fatalf("expected ErrPrincipalNotFound, got %v", err)
	}
}

func TestInvitePolicy(t *testing.T) {
	tests := []struct {
		name    string
		actor   role.Role
		invite  role.Role
		wantErr error
	}{
		{"owner invites admin", role.Owner, role.Admin, nil},
		{"owner invites employee", role.Owner, role.Employee, nil},
		{"admin invites manager", role.Admin, role.Manager, nil},
		{"admin invites employee", role.Admin, role.Employee, nil},
		{"manager invites employee", role.Manager, role.Employee, nil},
		{"admin cannot invite admin", role.Admin, role.Admin, memberbus.ErrInsufficientRole},
		{"admin cannot invite owner", role.Admin, role.Owner, memberbus.ErrInsufficientRole},
		{"manager cannot invite manager", role.Manager, role.Manager, memberbus.ErrInsufficientRole},
		{"employee cannot invite", role.Employee, role.Employee, memberbus.ErrInsufficientRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			invitee := testUser("new@negocio.com")
			core, _ := newTestCore(t, invitee)

			tenantID := uuid.New()
			actor := member(tenantID, tt.actor)

			inv := memberbus.NewInvite{
				TenantID: tenantID,
				Email:    invitee.Email,
				Role:     tt.invite,
			}

			m, err := core.Invite(context.Background(), actor, inv)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Invite: %v", err)
			}
			if !m.Role.Equal(tt.invite) {
				t.Errorf("expected role %s, got %s", tt.invite, m.Role)
			}
			if m.InvitedBy != actor.UserID {
				t.Errorf("expected InvitedBy %s, got %s", actor.UserID, m.InvitedBy)
			}
		})
	}
}

func TestCapabilityOverrides(t *testing.T) {
	tenantID := uuid.New()

	t.Run("revoked admin cannot invite", func(t *testing.T) {
		invitee := testUser("new@negocio.com")
		core, _ := newTestCore(t, invitee)

		actor := member(tenantID, role.Admin)
		actor.Capabilities = memberbus.CapabilitySet{memberbus.CapManageMembers: false}

		inv := memberbus.NewInvite{TenantID: tenantID, Email: invitee.Email, Role: role.Employee}

		if _, err := core.Invite(context.Background(), actor, inv); !errors.Is(err, memberbus.ErrInsufficientRole) {
			t.Fatalf("expected ErrInsufficientRole, got %v", err)
		}
	})

	t.Run("revoked manager cannot invite employee", func(t *testing.T) {
		invitee := testUser("new@negocio.com")
		core, _ := newTestCore(t, invitee)

		actor := member(tenantID, role.Manager)
		actor.Capabilities = memberbus.CapabilitySet{memberbus.CapManageMembers: false}

		inv := memberbus.NewInvite{TenantID: tenantID, Email: invitee.Email, Role: role.Employee}

		if _, err := core.Invite(context.Background(), actor, inv); !errors.Is(err, memberbus.ErrInsufficientRole) {
			t.Fatalf("expected ErrInsufficientRole, got %v", err)
		}
	})

	t.Run("granted manager can update roles", func(t *testing.T) {
		core, _ := newTestCore(t)

		actor := member(tenantID, role.Manager)
		actor.Capabilities = memberbus.CapabilitySet{memberbus.CapManageMembers: true}

		target := member(tenantID, role.Employee)

		if _, err := core.UpdateRole(context.Background(), actor, target, role.Employee); err != nil {
			t.Fatalf("UpdateRole: %v", err)
		}
	})

	t.Run("granted manager still cannot invite manager", func(t *testing.T) {
		invitee := testUser("new@negocio.com")
		core, _ := newTestCore(t, invitee)

		actor := member(tenantID, role.Manager)
		actor.Capabilities = memberbus.CapabilitySet{memberbus.CapManageMembers: true}

		inv := memberbus.NewInvite{TenantID: tenantID, Email: invitee.Email, Role: role.Manager}

		if _, err := core.Invite(context.Background(), actor, inv); !errors.Is(err, memberbus.ErrInsufficientRole) {
			t.Fatalf("expected ErrInsufficientRole, got %v", err)
		}
	})
}

func TestInviteUnregisteredEmail(t *testing.T) {
	core, _ := newTestCore(t)

	tenantID := uuid.New()
	actor := member(tenantID, role.Owner)

	inv := memberbus.NewInvite{
		TenantID: tenantID,
		Email:    mail.Address{Address: "nobody@negocio.com"},
		Role:     role.Employee,
	}

	if _, err := core.Invite(context.Background(), actor, inv); !errors.Is(err, memberbus.ErrPrincipalNotFound) {
		t.Fatalf("expected ErrPrincipalNotFound, got %v", err)
	}
}

func TestUpdateRole(t *testing.T) {
	tenantID := uuid.New()

	tests := []struct {
		name    string
		actor   role.Role
		target  role.Role
		newRole role.Role
		wantErr error
	}{
		{"owner promotes employee to admin", role.Owner, role.Employee, role.Admin, nil},
		{"admin demotes manager to employee", role.Admin, role.Manager, role.Employee, nil},
		{"admin demotes admin to manager", role.Admin, role.Admin, role.Manager, nil},
		{"owner role is immutable", role.Owner, role.Owner, role.Admin, memberbus.ErrInsufficientRole},
		{"admin cannot promote to admin", role.Admin, role.Manager, role.Admin, memberbus.ErrInsufficientRole},
		{"manager cannot change roles", role.Manager, role.Employee, role.Employee, memberbus.ErrInsufficientRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, _ := newTestCore(t)

			actor := member(tenantID, tt.actor)
			target := member(tenantID, tt.target)

			m, err := core.UpdateRole(context.Background(), actor, target, tt.newRole)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("UpdateRole: %v", err)
			}
			if !m.Role.Equal(tt.newRole) {
				t.Errorf("expected role %s, got %s", tt.newRole, m.Role)
			}
		})
	}
}

func TestRemove(t *testing.T) {
	tenantID := uuid.New()

	t.Run("owner cannot be removed", func(t *testing.T) {
		core, _ := newTestCore(t)

		actor := member(tenantID, role.Owner)
		target := member(tenantID, role.Owner)

		if _, err := core.Remove(context.Background(), actor, target); !errors.Is(err, memberbus.ErrCannotRemoveOwner) {
			t.Fatalf("expected ErrCannotRemoveOwner, got %v", err)
		}
	})

	t.Run("admin removes employee", func(t *testing.T) {
		core, _ := newTestCore(t)

		actor := member(tenantID, role.Admin)
		target := member(tenantID, role.Employee)

		m, err := core.Remove(context.Background(), actor, target)
		if err != nil {
			t.Fatalf("Remove: %v", err)
		}
		if !m.Status.Equal(memberstatus.Inactive) {
			t.Errorf("expected inactive status, got %s", m.Status)
		}
	})

	t.Run("admin removes admin", func(t *testing.T) {
		core, _ := newTestCore(t)

		actor := member(tenantID, role.Admin)
		target := member(tenantID, role.Admin)

		m, err := core.Remove(context.Background(), actor, target)
		if err != nil {
			t.Fatalf("Remove: %v", err)
		}
		if !m.Status.Equal(memberstatus.Inactive) {
			t.Errorf("expected inactive status, got %s", m.Status)
		}
	})

	t.Run("manager cannot remove", func(t *testing.T) {
		core, _ := newTestCore(t)

		actor := member(tenantID, role.Manager)
		target := member(tenantID, role.Employee)

		if _, err := core.Remove(context.Background(), actor, target); !errors.Is(err, memberbus.ErrInsufficientRole) {
			t.Fatalf("expected ErrInsufficientRole, got %v", err)
		}
	})
}

func TestQueryRole(t *testing.T) {
	core, store := newTestCore(t)

	tenantID := uuid.New()

	active := member(tenantID, role.Manager)
	store.members[active.ID] = active

	inactive := member(tenantID, role.Employee)
	inactive.Status = memberstatus.Inactive
	store.members[inactive.ID] = inactive

	r, err := core.QueryRole(context.Background(), tenantID, active.UserID)
	if err != nil {
		t.Fatalf("QueryRole: %v", err)
	}
	if !r.Equal(role.Manager) {
		t.Errorf("expected manager, got %s", r)
	}

	if _, err := core.QueryRole(context.Background(), tenantID, inactive.UserID); !errors.Is(err, memberbus.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for inactive membership, got %v", err)
	}

	if _, err := core.QueryRole(context.Background(), tenantID, uuid.New()); !errors.Is(err, memberbus.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing membership, got %v", err)
	}
}

func TestAllowedDefaults(t *testing.T) {
	tenantID := uuid.New()

	tests := []struct {
		name string
		r    role.Role
		cap  memberbus.Capability
		want bool
	}{
		{"owner manages billing", role.Owner, memberbus.CapManageBilling, true},
		{"admin cannot manage billing", role.Admin, memberbus.CapManageBilling, false},
		{"admin manages settings", role.Admin, memberbus.CapManageSettings, true},
		{"manager views reports", role.Manager, memberbus.CapViewReports, true},
		{"employee cannot view reports", role.Employee, memberbus.CapViewReports, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := member(tenantID, tt.r)
			if got := m.Allowed(tt.cap); got != tt.want {
				t.Errorf("Allowed(%s) for %s = %v, want %v", tt.cap, tt.r, got, tt.want)
			}
		})
	}
}

func TestParseCapability(t *testing.T) {
	c, err := memberbus.ParseCapability("manage_members")
	if err != nil {
		t.Fatalf("ParseCapability: %v", err)
	}
	if !c.Equal(memberbus.CapManageMembers) {
		t.Errorf("expected CapManageMembers, got %s", c)
	}

	if _, err := memberbus.ParseCapability("launch_rockets"); err == nil {
		t.Error("expected error for unknown capability")
	}
}

// =============================================================================

type fakeStore struct {
	members map[uuid.UUID]memberbus.Member
}

func (s *fakeStore) NewWithTx(tx sqldb.CommitRollbacker) (memberbus.Storer, error) {
	return s, nil
}

func (s *fakeStore) Create(ctx context.Context, m memberbus.Member) error {
	for _, existing := range s.members {
		if existing.TenantID == m.TenantID && existing.UserID == m.UserID {
			return memberbus.ErrUniqueMember
		}
	}
	s.members[m.ID] = m
	return nil
}

func (s *fakeStore) Update(ctx context.Context, m memberbus.Member) error {
	s.members[m.ID] = m
	return nil
}

func (s *fakeStore) QueryByID(ctx context.Context, memberID uuid.UUID) (memberbus.Member, error) {
	m, exists := s.members[memberID]
	if !exists {
		return memberbus.Member{}, memberbus.ErrNotFound
	}
	return m, nil
}

func (s *fakeStore) QueryByTenantUser(ctx context.Context, tenantID uuid.UUID, userID uuid.UUID) (memberbus.Member, error) {
	for _, m := range s.members {
		if m.TenantID == tenantID && m.UserID == userID {
			return m, nil
		}
	}
	return memberbus.Member{}, memberbus.ErrNotFound
}

func (s *fakeStore) QueryByTenant(ctx context.Context, tenantID uuid.UUID, filter memberbus.QueryFilter, orderBy order.By, page page.Page) ([]memberbus.Member, error) {
	var members []memberbus.Member
	for _, m := range s.members {
		if m.TenantID == tenantID {
			members = append(members, m)
		}
	}
	return members, nil
}

func (s *fakeStore) Count(ctx context.Context, tenantID uuid.UUID, filter memberbus.QueryFilter) (int, error) {
	n := 0
	for _, m := range s.members {
		if m.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

// =============================================================================

type fakeUserStore struct {
	users []userbus.User
}

func (s *fakeUserStore) NewWithTx(tx sqldb.CommitRollbacker) (userbus.Storer, error) {
	return s, nil
}

func (s *fakeUserStore) Create(ctx context.Context, usr userbus.User) error {
	s.users = append(s.users, usr)
	return nil
}

func (s *fakeUserStore) Update(ctx context.Context, usr userbus.User) error {
	for i, u := range s.users {
		if u.ID == usr.ID {
			s.users[i] = usr
			return nil
		}
	}
	return userbus.ErrNotFound
}

func (s *fakeUserStore) Query(ctx context.Context, filter userbus.QueryFilter, orderBy order.By, page page.Page) ([]userbus.User, error) {
	return s.users, nil
}

func (s *fakeUserStore) Count(ctx context.Context, filter userbus.QueryFilter) (int, error) {
	return len(s.users), nil
}

func (s *fakeUserStore) QueryByID(ctx context.Context, userID uuid.UUID) (userbus.User, error) {
	for _, u := range s.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return userbus.User{}, userbus.ErrNotFound
}

func (s *fakeUserStore) QueryByEmail(ctx context.Context, email mail.Address) (userbus.User, error) {
	for _, u := range s.users {
		if u.Email.Address == email.Address {
			return u, nil
		}
	}
	return userbus.User{}, userbus.ErrNotFound
}
