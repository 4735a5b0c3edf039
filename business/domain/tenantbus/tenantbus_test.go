package tenantbus_test

import (
	"context"
	"errors"
	"io"
	"net/mail"
	"testing"

	"github.com/google/uuid"
	"github.com/negocio360/platform/business/domain/memberbus"
	"github.com/negocio360/platform/business/domain/tenantbus"
	"github.com/negocio360/platform/business/domain/userbus"
	"github.com/negocio360/platform/business/sdk/order"
	"github.com/negocio360/platform/business/sdk/page"
	"github.com/negocio360/platform/business/sdk/sqldb"
	"github.com/negocio360/platform/business/types/memberstatus"
	"github.com/negocio360/platform/business/types/name"
	"github.com/negocio360/platform/business/types/role"
	"github.com/negocio360/platform/business/types/subdomain"
	"github.com/negocio360/platform/business/types/tenantstatus"
	"github.com/negocio360/platform/foundation/logger"
)

const platformHost = "negocio360.com"

func newTestCore(t *testing.T, users ...userbus.User) (*tenantbus.Core, *fakeTenantStore, *fakeMemberStore) {
	t.Helper()

	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)

	us := &fakeUserStore{users: users}
	ms := &fakeMemberStore{}
	ts := &fakeTenantStore{}

	memberBus := memberbus.NewCore(log, ms, userbus.NewCore(log, us))

	return tenantbus.NewCore(log, ts, memberBus, platformHost), ts, ms
}

func testUser(email string) userbus.User {
	return userbus.User{
		ID:      uuid.New(),
		Email:   mail.Address{Address: email},
		Enabled: true,
	}
}

func seedTenant(ts *fakeTenantStore, ownerID uuid.UUID, sub string) tenantbus.Tenant {
	t := tenantbus.Tenant{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      name.MustParse("Acme Corp"),
		Subdomain: subdomain.MustParse(sub),
		Status:    tenantstatus.Active,
	}
	ts.tenants = append(ts.tenants, t)
	return t
}

func seedMember(ms *fakeMemberStore, tenantID uuid.UUID, userID uuid.UUID, r role.Role) {
	ms.members = append(ms.members, memberbus.Member{
		ID:       uuid.New(),
		TenantID: tenantID,
		UserID:   userID,
		Role:     r,
		Status:   memberstatus.Active,
	})
}

func TestAllocate(t *testing.T) {
	tests := []struct {
		name     string
		business string
		taken    []string
		want     string
	}{
		{"base free", "Acme Corp", nil, "acmecorp"},
		{"base taken", "Acme Corp", []string{"acmecorp"}, "acmecorp1"},
		{"base and first suffix taken", "Acme Corp", []string{"acmecorp", "acmecorp1"}, "acmecorp2"},
		{"unicode name", "Çafé & Cia!", nil, "afcia"},
		{"empty slug falls back", "!!!", nil, subdomain.DefaultBase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, ts, _ := newTestCore(t)
			for _, taken := range tt.taken {
				seedTenant(ts, uuid.New(), taken)
			}

			sub, err := core.Allocate(context.Background(), tt.business)
			if err != nil {
				t.Fatalf("Allocate: %v", err)
			}
			if sub.String() != tt.want {
				t.Errorf("Allocate(%q) = %q, want %q", tt.business, sub, tt.want)
			}
		})
	}
}

func TestAllocateExhausted(t *testing.T) {
	core, ts, _ := newTestCore(t)
	ts.allTaken = true

	if _, err := core.Allocate(context.Background(), "Acme Corp"); !errors.Is(err, tenantbus.ErrAllocationExhausted) {
		t.Fatalf("expected ErrAllocationExhausted, got %v", err)
	}
}

func TestCreate(t *testing.T) {
	owner := testUser("owner@negocio.com")
	core, _, ms := newTestCore(t, owner)

	nt := tenantbus.NewTenant{
		OwnerID: owner.ID,
		Name:    name.MustParse("Acme Corp"),
	}

	tnt, err := core.Create(context.Background(), nt)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if tnt.Subdomain.String() != "acmecorp" {
		t.Errorf("expected subdomain acmecorp, got %s", tnt.Subdomain)
	}
	if !tnt.Status.Equal(tenantstatus.Active) {
		t.Errorf("expected active status, got %s", tnt.Status)
	}

	if len(ms.members) != 1 {
		t.Fatalf("expected 1 owner membership, got %d", len(ms.members))
	}
	m := ms.members[0]
	if m.TenantID != tnt.ID || m.UserID != owner.ID || !m.Role.Equal(role.Owner) {
		t.Errorf("owner membership mismatch: %+v", m)
	}
}

func TestCreateAlreadyProvisioned(t *testing.T) {
	owner := testUser("owner@negocio.com")
	core, ts, _ := newTestCore(t, owner)
	seedTenant(ts, owner.ID, "existing")

	nt := tenantbus.NewTenant{
		OwnerID: owner.ID,
		Name:    name.MustParse("Second Venture"),
	}

	if _, err := core.Create(context.Background(), nt); !errors.Is(err, tenantbus.ErrAlreadyProvisioned) {
		t.Fatalf("expected ErrAlreadyProvisioned, got %v", err)
	}
}

func TestCreateRetriesOnSubdomainRace(t *testing.T) {
	owner := testUser("owner@negocio.com")
	core, ts, _ := newTestCore(t, owner)

	// The first insert loses a race: the constraint rejects the candidate
	// and the conflicting row becomes visible for the next probe.
	ts.conflictOnce = true

	nt := tenantbus.NewTenant{
		OwnerID: owner.ID,
		Name:    name.MustParse("Acme Corp"),
	}

	tnt, err := core.Create(context.Background(), nt)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if tnt.Subdomain.String() != "acmecorp1" {
		t.Errorf("expected reallocated subdomain acmecorp1, got %s", tnt.Subdomain)
	}
}

func TestResolvePlatformHost(t *testing.T) {
	owner := testUser("owner@negocio.com")
	core, ts, ms := newTestCore(t, owner)

	tnt := seedTenant(ts, owner.ID, "acmecorp")
	seedMember(ms, tnt.ID, owner.ID, role.Owner)

	res, err := core.Resolve(context.Background(), owner.ID, platformHost+":3000")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if res.Tenant.ID != tnt.ID {
		t.Errorf("resolved wrong tenant: %s", res.Tenant.ID)
	}
	if !res.Role.Equal(role.Owner) {
		t.Errorf("expected owner role, got %s", res.Role)
	}
}

func TestResolvePlatformHostNoTenant(t *testing.T) {
	usr := testUser("drifter@negocio.com")
	core, _, _ := newTestCore(t, usr)

	if _, err := core.Resolve(context.Background(), usr.ID, platformHost); !errors.Is(err, tenantbus.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolvePlatformHostMultipleTenants(t *testing.T) {
	owner := testUser("owner@negocio.com")
	core, ts, _ := newTestCore(t, owner)

	seedTenant(ts, owner.ID, "first")
	seedTenant(ts, owner.ID, "second")

	if _, err := core.Resolve(context.Background(), owner.ID, platformHost); !errors.Is(err, tenantbus.ErrDataIntegrity) {
		t.Fatalf("expected ErrDataIntegrity, got %v", err)
	}
}

func TestResolveSubdomainHost(t *testing.T) {
	owner := testUser("owner@negocio.com")
	employee := testUser("employee@negocio.com")
	core, ts, ms := newTestCore(t, owner, employee)

	tnt := seedTenant(ts, owner.ID, "acmecorp")
	seedMember(ms, tnt.ID, employee.ID, role.Employee)

	res, err := core.Resolve(context.Background(), employee.ID, "acmecorp."+platformHost)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if res.Tenant.ID != tnt.ID {
		t.Errorf("resolved wrong tenant: %s", res.Tenant.ID)
	}
	if !res.Role.Equal(role.Employee) {
		t.Errorf("expected employee role, got %s", res.Role)
	}
}

func TestResolveSubdomainHostNotMember(t *testing.T) {
	owner := testUser("owner@negocio.com")
	outsider := testUser("outsider@negocio.com")
	core, ts, ms := newTestCore(t, owner, outsider)

	tnt := seedTenant(ts, owner.ID, "acmecorp")
	seedMember(ms, tnt.ID, owner.ID, role.Owner)

	if _, err := core.Resolve(context.Background(), outsider.ID, "acmecorp."+platformHost); !errors.Is(err, tenantbus.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolveOrphanOwnerMembership(t *testing.T) {
	owner := testUser("owner@negocio.com")
	core, ts, _ := newTestCore(t, owner)

	// Tenant exists but the owner membership row is missing.
	seedTenant(ts, owner.ID, "acmecorp")

	if _, err := core.Resolve(context.Background(), owner.ID, platformHost); !errors.Is(err, tenantbus.ErrDataIntegrity) {
		t.Fatalf("expected ErrDataIntegrity, got %v", err)
	}
}

func TestResolveCustomDomain(t *testing.T) {
	owner := testUser("owner@negocio.com")
	core, ts, ms := newTestCore(t, owner)

	tnt := seedTenant(ts, owner.ID, "acmecorp")
	seedMember(ms, tnt.ID, owner.ID, role.Owner)

	ts.tenants[0].CustomDomain = "app.acme.com.br"
	ts.tenants[0].DomainVerified = true

	res, err := core.Resolve(context.Background(), owner.ID, "app.acme.com.br")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Tenant.ID != tnt.ID {
		t.Errorf("resolved wrong tenant: %s", res.Tenant.ID)
	}
}

func TestResolveUnverifiedCustomDomain(t *testing.T) {
	owner := testUser("owner@negocio.com")
	core, ts, ms := newTestCore(t, owner)

	tnt := seedTenant(ts, owner.ID, "acmecorp")
	seedMember(ms, tnt.ID, owner.ID, role.Owner)

	ts.tenants[0].CustomDomain = "app.acme.com.br"

	if _, err := core.Resolve(context.Background(), owner.ID, "app.acme.com.br"); !errors.Is(err, tenantbus.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unverified domain, got %v", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	owner := testUser("owner@negocio.com")
	core, ts, _ := newTestCore(t, owner)

	tnt := seedTenant(ts, owner.ID, "acmecorp")

	suspended, err := core.UpdateStatus(context.Background(), tnt, tenantstatus.Suspended)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	cancelled, err := core.UpdateStatus(context.Background(), suspended, tenantstatus.Cancelled)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	if _, err := core.UpdateStatus(context.Background(), cancelled, tenantstatus.Active); !errors.Is(err, tenantbus.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition out of cancelled, got %v", err)
	}
}

func TestSetCustomDomainResetsVerification(t *testing.T) {
	owner := testUser("owner@negocio.com")
	core, ts, _ := newTestCore(t, owner)

	tnt := seedTenant(ts, owner.ID, "acmecorp")
	tnt.CustomDomain = "old.acme.com.br"
	tnt.DomainVerified = true

	updated, err := core.SetCustomDomain(context.Background(), tnt, "new.acme.com.br")
	if err != nil {
		t.Fatalf("SetCustomDomain: %v", err)
	}

	if updated.CustomDomain != "new.acme.com.br" {
		t.Errorf("expected new domain, got %s", updated.CustomDomain)
	}
	if updated.DomainVerified {
		t.Error("expected verification to reset on domain change")
	}
}

// =============================================================================

type fakeTenantStore struct {
	tenants      []tenantbus.Tenant
	allTaken     bool
	conflictOnce bool
}

func (s *fakeTenantStore) NewWithTx(tx sqldb.CommitRollbacker) (tenantbus.Storer, error) {
	return s, nil
}

func (s *fakeTenantStore) Create(ctx context.Context, t tenantbus.Tenant) error {
	if s.conflictOnce {
		s.conflictOnce = false
		conflicting := t
		conflicting.ID = uuid.New()
		conflicting.OwnerID = uuid.New()
		s.tenants = append(s.tenants, conflicting)
		return tenantbus.ErrUniqueSubdomain
	}

	for _, existing := range s.tenants {
		if existing.Subdomain.Equal(t.Subdomain) {
			return tenantbus.ErrUniqueSubdomain
		}
	}

	s.tenants = append(s.tenants, t)
	return nil
}

func (s *fakeTenantStore) Update(ctx context.Context, t tenantbus.Tenant) error {
	for i, existing := range s.tenants {
		if existing.ID == t.ID {
			s.tenants[i] = t
			return nil
		}
	}
	return tenantbus.ErrNotFound
}

func (s *fakeTenantStore) QueryByID(ctx context.Context, tenantID uuid.UUID) (tenantbus.Tenant, error) {
	for _, t := range s.tenants {
		if t.ID == tenantID {
			return t, nil
		}
	}
	return tenantbus.Tenant{}, tenantbus.ErrNotFound
}

func (s *fakeTenantStore) QueryByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]tenantbus.Tenant, error) {
	var tenants []tenantbus.Tenant
	for _, t := range s.tenants {
		if t.OwnerID == ownerID {
			tenants = append(tenants, t)
		}
	}
	return tenants, nil
}

func (s *fakeTenantStore) QueryBySubdomain(ctx context.Context, sub subdomain.Subdomain) (tenantbus.Tenant, error) {
	for _, t := range s.tenants {
		if t.Subdomain.Equal(sub) {
			return t, nil
		}
	}
	return tenantbus.Tenant{}, tenantbus.ErrNotFound
}

func (s *fakeTenantStore) QueryByCustomDomain(ctx context.Context, domain string) (tenantbus.Tenant, error) {
	for _, t := range s.tenants {
		if t.CustomDomain == domain {
			return t, nil
		}
	}
	return tenantbus.Tenant{}, tenantbus.ErrNotFound
}

func (s *fakeTenantStore) ExistsBySubdomain(ctx context.Context, sub subdomain.Subdomain) (bool, error) {
	if s.allTaken {
		return true, nil
	}
	for _, t := range s.tenants {
		if t.Subdomain.Equal(sub) {
			return true, nil
		}
	}
	return false, nil
}

// =============================================================================

type fakeMemberStore struct {
	members []memberbus.Member
}

func (s *fakeMemberStore) NewWithTx(tx sqldb.CommitRollbacker) (memberbus.Storer, error) {
	return s, nil
}

func (s *fakeMemberStore) Create(ctx context.Context, m memberbus.Member) error {
	s.members = append(s.members, m)
	return nil
}

func (s *fakeMemberStore) Update(ctx context.Context, m memberbus.Member) error {
	for i, existing := range s.members {
		if existing.ID == m.ID {
			s.members[i] = m
			return nil
		}
	}
	return memberbus.ErrNotFound
}

func (s *fakeMemberStore) QueryByID(ctx context.Context, memberID uuid.UUID) (memberbus.Member, error) {
	for _, m := range s.members {
		if m.ID == memberID {
			return m, nil
		}
	}
	return memberbus.Member{}, memberbus.ErrNotFound
}

func (s *fakeMemberStore) QueryByTenantUser(ctx context.Context, tenantID uuid.UUID, userID uuid.UUID) (memberbus.Member, error) {
	for _, m := range s.members {
		if m.TenantID == tenantID && m.UserID == userID {
			return m, nil
		}
	}
	return memberbus.Member{}, memberbus.ErrNotFound
}

func (s *fakeMemberStore) QueryByTenant(ctx context.Context, tenantID uuid.UUID, filter memberbus.QueryFilter, orderBy order.By, page page.Page) ([]memberbus.Member, error) {
	var members []memberbus.Member
	for _, m := range s.members {
		if m.TenantID == tenantID {
			members = append(members, m)
		}
	}
	return members, nil
}

func (s *fakeMemberStore) Count(ctx context.Context, tenantID uuid.UUID, filter memberbus.QueryFilter) (int, error) {
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
