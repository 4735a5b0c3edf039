// Package tenantbus provides business access to tenant provisioning and
// resolution in the system.
package tenantbus

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/negocio360/platform/business/domain/memberbus"
	"github.com/negocio360/platform/business/sdk/sqldb"
	"github.com/negocio360/platform/business/types/subdomain"
	"github.com/negocio360/platform/business/types/tenantstatus"
	"github.com/negocio360/platform/foundation/logger"
	"github.com/negocio360/platform/foundation/otel"
)

// Set of error variables for tenant operations.
var (
	ErrNotFound            = errors.New("tenant not found")
	ErrAlreadyProvisioned  = errors.New("owner already has a tenant")
	ErrUniqueSubdomain     = errors.New("subdomain is not unique")
	ErrUniqueDomain        = errors.New("custom domain is not unique")
	ErrAllocationExhausted = errors.New("subdomain allocation attempts exhausted")
	ErrDataIntegrity       = errors.New("tenant data integrity violation")
	ErrInvalidTransition   = errors.New("invalid tenant status transition")
)

// maxAllocationAttempts bounds the collision probe loop so a pathological
// collision storm fails fast instead of hanging the request.
const maxAllocationAttempts = 1000

// createRetries bounds how often Create re-allocates after the storage
// uniqueness constraint rejects a candidate that raced another creation.
const createRetries = 3

// Storer defines the behavior required by the tenantbus to interact with
// the database.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)

	Create(ctx context.Context, t Tenant) error
	Update(ctx context.Context, t Tenant) error
	QueryByID(ctx context.Context, tenantID uuid.UUID) (Tenant, error)
	QueryByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]Tenant, error)
	QueryBySubdomain(ctx context.Context, sub subdomain.Subdomain) (Tenant, error)
	QueryByCustomDomain(ctx context.Context, domain string) (Tenant, error)
	ExistsBySubdomain(ctx context.Context, sub subdomain.Subdomain) (bool, error)
}

// Core manages the set of APIs for tenant access.
type Core struct {
	log          *logger.Logger
	storer       Storer
	memberBus    *memberbus.Core
	platformHost string
}

// NewCore constructs a core for tenant api access. The platformHost is the
// default serving host; requests arriving on any other host resolve by
// domain instead of by owner.
func NewCore(log *logger.Logger, storer Storer, memberBus *memberbus.Core, platformHost string) *Core {
	return &Core{
		log:          log,
		storer:       storer,
		memberBus:    memberBus,
		platformHost: platformHost,
	}
}

// NewWithTx constructs a new Core value replacing the Storer value with a
// Storer value that is currently inside a transaction. The membership core
// is rewrapped so the owner membership insert joins the same transaction.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, fmt.Errorf("newWithTx: %w", err)
	}

	memberBus, err := c.memberBus.NewWithTx(tx)
	if err != nil {
		return nil, fmt.Errorf("newWithTx: %w", err)
	}

	return &Core{
		log:          c.log,
		storer:       storer,
		memberBus:    memberBus,
		platformHost: c.platformHost,
	}, nil
}

// Allocate derives a collision-free subdomain candidate for the specified
// business name. The result is advisory: the storage uniqueness constraint
// remains the authoritative guard and Create retries on conflict.
func (c *Core) Allocate(ctx context.Context, businessName string) (subdomain.Subdomain, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.allocate")
	defer span.End()

	base := subdomain.Derive(businessName)

	candidate := base
	for attempt := 1; attempt <= maxAllocationAttempts; attempt++ {
		taken, err := c.storer.ExistsBySubdomain(ctx, candidate)
		if err != nil {
			return subdomain.Subdomain{}, fmt.Errorf("existsBySubdomain[%s]: %w", candidate, err)
		}

		if !taken {
			return candidate, nil
		}

		candidate = base.WithSuffix(attempt)
	}

	return subdomain.Subdomain{}, ErrAllocationExhausted
}

// Create provisions a new tenant for the specified owner, allocating a
// unique subdomain and creating the owner membership. Callers are expected
// to run this inside a transaction so tenant and owner membership commit
// atomically.
func (c *Core) Create(ctx context.Context, nt NewTenant) (Tenant, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.create")
	defer span.End()

	existing, err := c.storer.QueryByOwnerID(ctx, nt.OwnerID)
	if err != nil {
		return Tenant{}, fmt.Errorf("queryByOwnerID: %w", err)
	}
	if len(existing) > 0 {
		return Tenant{}, ErrAlreadyProvisioned
	}

	now := time.Now()

	t := Tenant{
		ID:           uuid.New(),
		OwnerID:      nt.OwnerID,
		SegmentID:    nt.SegmentID,
		Name:         nt.Name,
		ContactPhone: nt.ContactPhone,
		LogoURL:      nt.LogoURL,
		BrandColors:  nt.BrandColors,
		Settings:     nt.Settings,
		Status:       tenantstatus.Active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The pre-check in Allocate and the insert below race against
	// concurrent creations for the same base name. The unique constraint
	// decides; on conflict we allocate again with a fresh probe.
	for attempt := 0; ; attempt++ {
		sub, err := c.Allocate(ctx, nt.Name.String())
		if err != nil {
			return Tenant{}, fmt.Errorf("allocate: %w", err)
		}
		t.Subdomain = sub

		err = c.storer.Create(ctx, t)
		if err == nil {
			break
		}

		if errors.Is(err, ErrUniqueSubdomain) && attempt < createRetries {
			c.log.Info(ctx, "tenantbus: subdomain conflict on insert, reallocating", "subdomain", sub)
			continue
		}

		return Tenant{}, fmt.Errorf("create: %w", err)
	}

	if _, err := c.memberBus.CreateOwner(ctx, t.ID, t.OwnerID); err != nil {
		return Tenant{}, fmt.Errorf("createOwner: %w", err)
	}

	return t, nil
}

// Resolve determines which tenant context applies to a request. A request
// arriving on a non-platform host resolves by verified custom domain or by
// the first host label as subdomain; otherwise it resolves by owner. The
// effective role of the principal is resolved alongside.
func (c *Core) Resolve(ctx context.Context, principalID uuid.UUID, requestHost string) (Resolved, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.resolve")
	defer span.End()

	t, err := c.resolveTenant(ctx, principalID, requestHost)
	if err != nil {
		return Resolved{}, err
	}

	r, err := c.memberBus.QueryRole(ctx, t.ID, principalID)
	if err != nil {
		if errors.Is(err, memberbus.ErrNotFound) {
			if t.OwnerID == principalID {
				c.log.Error(ctx, "tenantbus: tenant has no owner membership", "tenant_id", t.ID, "owner_id", t.OwnerID)
				return Resolved{}, fmt.Errorf("owner membership missing: tenant[%s]: %w", t.ID, ErrDataIntegrity)
			}
			return Resolved{}, fmt.Errorf("principal[%s] tenant[%s]: %w", principalID, t.ID, ErrNotFound)
		}
		return Resolved{}, fmt.Errorf("queryRole: %w", err)
	}

	return Resolved{Tenant: t, Role: r}, nil
}

func (c *Core) resolveTenant(ctx context.Context, principalID uuid.UUID, requestHost string) (Tenant, error) {
	host := hostName(requestHost)

	if c.isPlatformHost(host) {
		tenants, err := c.storer.QueryByOwnerID(ctx, principalID)
		if err != nil {
			return Tenant{}, fmt.Errorf("queryByOwnerID[%s]: %w", principalID, err)
		}

		switch len(tenants) {
		case 0:
			return Tenant{}, ErrNotFound
		case 1:
			return tenants[0], nil
		default:
			c.log.Error(ctx, "tenantbus: multiple tenants for one owner", "owner_id", principalID, "count", len(tenants))
			return Tenant{}, fmt.Errorf("owner[%s] matches %d tenants: %w", principalID, len(tenants), ErrDataIntegrity)
		}
	}

	t, err := c.storer.QueryByCustomDomain(ctx, host)
	if err == nil {
		if !t.DomainVerified {
			return Tenant{}, ErrNotFound
		}
		return t, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Tenant{}, fmt.Errorf("queryByCustomDomain[%s]: %w", host, err)
	}

	label, _, found := strings.Cut(host, ".")
	if !found {
		return Tenant{}, ErrNotFound
	}

	sub, err := subdomain.Parse(label)
	if err != nil {
		return Tenant{}, ErrNotFound
	}

	t, err = c.storer.QueryBySubdomain(ctx, sub)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Tenant{}, ErrNotFound
		}
		return Tenant{}, fmt.Errorf("queryBySubdomain[%s]: %w", sub, err)
	}

	return t, nil
}

// QueryByID finds the tenant by the specified ID.
func (c *Core) QueryByID(ctx context.Context, tenantID uuid.UUID) (Tenant, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.queryByID")
	defer span.End()

	t, err := c.storer.QueryByID(ctx, tenantID)
	if err != nil {
		return Tenant{}, fmt.Errorf("query: tenantID[%s]: %w", tenantID, err)
	}

	return t, nil
}

// Update modifies presentation and settings data about a tenant.
func (c *Core) Update(ctx context.Context, t Tenant, ut UpdateTenant) (Tenant, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.update")
	defer span.End()

	if ut.Name != nil {
		t.Name = *ut.Name
	}

	if ut.SegmentID != nil {
		t.SegmentID = *ut.SegmentID
	}

	if ut.ContactPhone != nil {
		t.ContactPhone = *ut.ContactPhone
	}

	if ut.LogoURL != nil {
		t.LogoURL = *ut.LogoURL
	}

	if ut.BrandColors != nil {
		t.BrandColors = ut.BrandColors
	}

	if ut.Settings != nil {
		t.Settings = ut.Settings
	}

	t.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, t); err != nil {
		return Tenant{}, fmt.Errorf("update: %w", err)
	}

	return t, nil
}

// UpdateStatus transitions the tenant lifecycle status. Active and suspended
// move between each other; cancelled is terminal.
func (c *Core) UpdateStatus(ctx context.Context, t Tenant, target tenantstatus.Status) (Tenant, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.updateStatus")
	defer span.End()

	if !t.Status.CanTransition(target) {
		return Tenant{}, fmt.Errorf("%s -> %s: %w", t.Status, target, ErrInvalidTransition)
	}

	t.Status = target
	t.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, t); err != nil {
		return Tenant{}, fmt.Errorf("update: %w", err)
	}

	return t, nil
}

// SetCustomDomain sets or changes the tenant's custom domain. Changing the
// value always regresses the domain to unverified; a fresh probe has to
// confirm the new value.
func (c *Core) SetCustomDomain(ctx context.Context, t Tenant, domain string) (Tenant, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.setCustomDomain")
	defer span.End()

	t.CustomDomain = domain
	t.DomainVerified = false
	t.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, t); err != nil {
		return Tenant{}, fmt.Errorf("update: %w", err)
	}

	return t, nil
}

// MarkDomainVerified records a successful reachability probe for the
// tenant's current custom domain.
func (c *Core) MarkDomainVerified(ctx context.Context, t Tenant) (Tenant, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.markDomainVerified")
	defer span.End()

	t.DomainVerified = true
	t.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, t); err != nil {
		return Tenant{}, fmt.Errorf("update: %w", err)
	}

	return t, nil
}

func (c *Core) isPlatformHost(host string) bool {
	return host == c.platformHost || host == "localhost"
}

func hostName(requestHost string) string {
	if host, _, err := net.SplitHostPort(requestHost); err == nil {
		return host
	}
	return requestHost
}
