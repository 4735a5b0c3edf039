package planbus

import (
	"time"

	"github.com/google/uuid"
)

// Segment represents one business vertical the platform serves.
type Segment struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	Active    bool
	CreatedAt time.Time
}

// Plan represents one subscription plan offered for a segment.
type Plan struct {
	ID          uuid.UUID
	SegmentID   uuid.UUID
	Name        string
	Slug        string
	Description string
	PriceCents  int
	TrialDays   int
	Active      bool
	CreatedAt   time.Time
}
