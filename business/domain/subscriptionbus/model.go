package subscriptionbus

import (
	"time"

	"github.com/google/uuid"
	"github.com/negocio360/platform/business/types/substatus"
)

// Subscription represents one tenant's subscription to a plan. The plan slug
// is denormalized onto the record so entitlement checks need no catalog
// round trip.
type Subscription struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	PlanID      uuid.UUID
	PlanSlug    string
	Status      substatus.Status
	TrialEndsAt time.Time
	CancelledAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
