package tenantbus

import (
	"time"

	"github.com/google/uuid"
	"github.com/negocio360/platform/business/types/name"
	"github.com/negocio360/platform/business/types/phone"
	"github.com/negocio360/platform/business/types/role"
	"github.com/negocio360/platform/business/types/subdomain"
	"github.com/negocio360/platform/business/types/tenantstatus"
)

// Tenant represents one provisioned business instance in the platform.
type Tenant struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	SegmentID      uuid.UUID
	Name           name.Name
	Subdomain      subdomain.Subdomain
	CustomDomain   string
	DomainVerified bool
	ContactPhone   phone.Null
	LogoURL        string
	BrandColors    map[string]string
	Settings       map[string]string
	Status         tenantstatus.Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewTenant contains information needed to provision a new tenant.
type NewTenant struct {
	OwnerID      uuid.UUID
	SegmentID    uuid.UUID
	Name         name.Name
	ContactPhone phone.Null
	LogoURL      string
	BrandColors  map[string]string
	Settings     map[string]string
}

// UpdateTenant contains information needed to update a tenant. Fields that
// are nil are left untouched.
type UpdateTenant struct {
	Name         *name.Name
	SegmentID    *uuid.UUID
	ContactPhone *phone.Null
	LogoURL      *string
	BrandColors  map[string]string
	Settings     map[string]string
}

// Resolved carries the outcome of tenant resolution for a request: the
// tenant plus the effective role of the resolving principal.
type Resolved struct {
	Tenant Tenant
	Role   role.Role
}
