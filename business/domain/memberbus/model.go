package memberbus

import (
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/negocio360/platform/business/types/memberstatus"
	"github.com/negocio360/platform/business/types/role"
)

// Member represents one principal's relationship to one tenant.
type Member struct {
	ID           uuid.UUID
	TenantID     uuid.UUID
	UserID       uuid.UUID
	Email        mail.Address
	Role         role.Role
	Capabilities CapabilitySet
	Status       memberstatus.Status
	InvitedBy    uuid.UUID
	InvitedAt    time.Time
	JoinedAt     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewInvite contains information needed to invite a principal into a tenant.
type NewInvite struct {
	TenantID uuid.UUID
	Email    mail.Address
	Role     role.Role
}
