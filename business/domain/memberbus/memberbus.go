// Package memberbus provides business access to tenant membership and the
// role policy that governs who may manage whom.
package memberbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/negocio360/platform/business/domain/userbus"
	"github.com/negocio360/platform/business/sdk/order"
	"github.com/negocio360/platform/business/sdk/page"
	"github.com/negocio360/platform/business/sdk/sqldb"
	"github.com/negocio360/platform/business/types/memberstatus"
	"github.com/negocio360/platform/business/types/role"
	"github.com/negocio360/platform/foundation/logger"
	"github.com/negocio360/platform/foundation/otel"
)

// Set of error variables for membership operations.
var (
	ErrNotFound          = errors.New("member not found")
	ErrUniqueMember      = errors.New("member already exists")
	ErrDuplicateOwner    = errors.New("tenant owner membership already exists")
	ErrPrincipalNotFound = errors.New("principal is not registered")
	ErrInsufficientRole  = errors.New("actor role is insufficient")
	ErrCannotRemoveOwner = errors.New("owner membership cannot be removed")
)

// Storer defines the behavior required by the memberbus to interact with
// the database.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)

	Create(ctx context.Context, m Member) error
	Update(ctx context.Context, m Member) error
	QueryByID(ctx context.Context, memberID uuid.UUID) (Member, error)
	QueryByTenantUser(ctx context.Context, tenantID uuid.UUID, userID uuid.UUID) (Member, error)
	QueryByTenant(ctx context.Context, tenantID uuid.UUID, filter QueryFilter, orderBy order.By, page page.Page) ([]Member, error)
	Count(ctx context.Context, tenantID uuid.UUID, filter QueryFilter) (int, error)
}

// Core manages the set of APIs for membership access.
type Core struct {
	log     *logger.Logger
	storer  Storer
	userBus *userbus.Core
}

// NewCore constructs a core for membership api access.
func NewCore(log *logger.Logger, storer Storer, userBus *userbus.Core) *Core {
	return &Core{
		log:     log,
		storer:  storer,
		userBus: userBus,
	}
}

// NewWithTx constructs a new Core value replacing the Storer value with a
// Storer value that is currently inside a transaction.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, fmt.Errorf("newWithTx: %w", err)
	}

	userBus, err := c.userBus.NewWithTx(tx)
	if err != nil {
		return nil, fmt.Errorf("newWithTx: %w", err)
	}

	return &Core{
		log:     c.log,
		storer:  storer,
		userBus: userBus,
	}, nil
}

// CreateOwner records the owner membership for a freshly provisioned tenant.
// It is called exactly once per tenant, inside the provisioning transaction;
// a second call for the same pair fails with ErrDuplicateOwner.
func (c *Core) CreateOwner(ctx context.Context, tenantID uuid.UUID, ownerID uuid.UUID) (Member, error) {
	ctx, span := otel.AddSpan(ctx, "business.memberbus.createOwner")
	defer span.End()

	usr, err := c.userBus.QueryByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, userbus.ErrNotFound) {
			return Member{}, fmt.Errorf("owner[%s]: %w", ownerID, ErrPrincipalNotFound)
		}
		return Member{}, fmt.Errorf("queryByID: %w", err)
	}

	now := time.Now()

	m := Member{
		ID:        uuid.New(),
		TenantID:  tenantID,
		UserID:    ownerID,
		Email:     usr.Email,
		Role:      role.Owner,
		Status:    memberstatus.Active,
		InvitedBy: ownerID,
		InvitedAt: now,
		JoinedAt:  now,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storer.Create(ctx, m); err != nil {
		if errors.Is(err, ErrUniqueMember) {
			return Member{}, fmt.Errorf("tenant[%s] owner[%s]: %w", tenantID, ownerID, ErrDuplicateOwner)
		}
		return Member{}, fmt.Errorf("create: %w", err)
	}

	return m, nil
}

// Invite adds an already registered principal to the actor's tenant. The
// actor can only grant roles strictly below their own, except the owner who
// may grant any non-owner role. An explicit revocation of the manage-members
// capability blocks inviting regardless of role.
func (c *Core) Invite(ctx context.Context, actor Member, inv NewInvite) (Member, error) {
	ctx, span := otel.AddSpan(ctx, "business.memberbus.invite")
	defer span.End()

	if actor.Revoked(CapManageMembers) {
		return Member{}, fmt.Errorf("actor capability[%s] revoked: %w", CapManageMembers, ErrInsufficientRole)
	}

	if !actor.Role.CanGrant(inv.Role) {
		return Member{}, fmt.Errorf("actor role[%s] cannot grant[%s]: %w", actor.Role, inv.Role, ErrInsufficientRole)
	}

	usr, err := c.userBus.QueryByEmail(ctx, inv.Email)
	if err != nil {
		if errors.Is(err, userbus.ErrNotFound) {
			return Member{}, fmt.Errorf("email[%s]: %w", inv.Email.Address, ErrPrincipalNotFound)
		}
		return Member{}, fmt.Errorf("queryByEmail: %w", err)
	}

	now := time.Now()

	m := Member{
		ID:        uuid.New(),
		TenantID:  inv.TenantID,
		UserID:    usr.ID,
		Email:     usr.Email,
		Role:      inv.Role,
		Status:    memberstatus.Active,
		InvitedBy: actor.UserID,
		InvitedAt: now,
		JoinedAt:  now,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storer.Create(ctx, m); err != nil {
		return Member{}, fmt.Errorf("create: %w", err)
	}

	return m, nil
}

// UpdateRole changes the role of an existing member. Owner memberships are
// immutable and the actor can only assign roles strictly below their own.
func (c *Core) UpdateRole(ctx context.Context, actor Member, target Member, newRole role.Role) (Member, error) {
	ctx, span := otel.AddSpan(ctx, "business.memberbus.updateRole")
	defer span.End()

	if !actor.Allowed(CapManageMembers) {
		return Member{}, fmt.Errorf("actor role[%s]: %w", actor.Role, ErrInsufficientRole)
	}

	if target.Role.Equal(role.Owner) {
		return Member{}, fmt.Errorf("target is owner: %w", ErrInsufficientRole)
	}

	if !actor.Role.CanGrant(newRole) {
		return Member{}, fmt.Errorf("actor role[%s] cannot grant[%s]: %w", actor.Role, newRole, ErrInsufficientRole)
	}

	target.Role = newRole
	target.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, target); err != nil {
		return Member{}, fmt.Errorf("update: %w", err)
	}

	return target, nil
}

// UpdateCapabilities replaces the explicit capability overrides on a member.
func (c *Core) UpdateCapabilities(ctx context.Context, actor Member, target Member, caps CapabilitySet) (Member, error) {
	ctx, span := otel.AddSpan(ctx, "business.memberbus.updateCapabilities")
	defer span.End()

	if !actor.Allowed(CapManageMembers) {
		return Member{}, fmt.Errorf("actor role[%s]: %w", actor.Role, ErrInsufficientRole)
	}

	if target.Role.Equal(role.Owner) {
		return Member{}, fmt.Errorf("target is owner: %w", ErrInsufficientRole)
	}

	target.Capabilities = caps
	target.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, target); err != nil {
		return Member{}, fmt.Errorf("update: %w", err)
	}

	return target, nil
}

// Remove deactivates a membership. The owner membership can never be
// removed; removal is a soft transition to the inactive status so the
// historical record survives.
func (c *Core) Remove(ctx context.Context, actor Member, target Member) (Member, error) {
	ctx, span := otel.AddSpan(ctx, "business.memberbus.remove")
	defer span.End()

	if target.Role.Equal(role.Owner) {
		return Member{}, ErrCannotRemoveOwner
	}

	if !actor.Allowed(CapManageMembers) {
		return Member{}, fmt.Errorf("actor role[%s]: %w", actor.Role, ErrInsufficientRole)
	}

	target.Status = memberstatus.Inactive
	target.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, target); err != nil {
		return Member{}, fmt.Errorf("update: %w", err)
	}

	return target, nil
}

// QueryRole returns the effective role the principal holds in the tenant.
// Only active memberships grant a role.
func (c *Core) QueryRole(ctx context.Context, tenantID uuid.UUID, userID uuid.UUID) (role.Role, error) {
	ctx, span := otel.AddSpan(ctx, "business.memberbus.queryRole")
	defer span.End()

	m, err := c.storer.QueryByTenantUser(ctx, tenantID, userID)
	if err != nil {
		return role.Role{}, fmt.Errorf("queryByTenantUser: user[%s] tenant[%s]: %w", userID, tenantID, err)
	}

	if !m.Status.Equal(memberstatus.Active) {
		return role.Role{}, fmt.Errorf("user[%s] tenant[%s]: %w", userID, tenantID, ErrNotFound)
	}

	return m.Role, nil
}

// QueryMembership returns the full membership record for the principal in
// the tenant, active or not.
func (c *Core) QueryMembership(ctx context.Context, tenantID uuid.UUID, userID uuid.UUID) (Member, error) {
	ctx, span := otel.AddSpan(ctx, "business.memberbus.queryMembership")
	defer span.End()

	m, err := c.storer.QueryByTenantUser(ctx, tenantID, userID)
	if err != nil {
		return Member{}, fmt.Errorf("queryByTenantUser: user[%s] tenant[%s]: %w", userID, tenantID, err)
	}

	return m, nil
}

// QueryByID finds the member by the specified ID.
func (c *Core) QueryByID(ctx context.Context, memberID uuid.UUID) (Member, error) {
	ctx, span := otel.AddSpan(ctx, "business.memberbus.queryByID")
	defer span.End()

	m, err := c.storer.QueryByID(ctx, memberID)
	if err != nil {
		return Member{}, fmt.Errorf("query: memberID[%s]: %w", memberID, err)
	}

	return m, nil
}

// QueryByTenant retrieves a page of members for the tenant.
func (c *Core) QueryByTenant(ctx context.Context, tenantID uuid.UUID, filter QueryFilter, orderBy order.By, page page.Page) ([]Member, error) {
	ctx, span := otel.AddSpan(ctx, "business.memberbus.queryByTenant")
	defer span.End()

	members, err := c.storer.QueryByTenant(ctx, tenantID, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return members, nil
}

// Count returns the total number of members matching the filter.
func (c *Core) Count(ctx context.Context, tenantID uuid.UUID, filter QueryFilter) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.memberbus.count")
	defer span.End()

	return c.storer.Count(ctx, tenantID, filter)
}
