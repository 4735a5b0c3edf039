package plandb

import (
	"time"

	"github.com/google/uuid"
	"github.com/negocio360/platform/business/domain/planbus"
)

type segmentDB struct {
	ID        uuid.UUID `db:"segment_id"`
	Name      string    `db:"name"`
	Slug      string    `db:"slug"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
}

func toBusSegment(db segmentDB) planbus.Segment {
	return planbus.Segment{
		ID:        db.ID,
		Name:      db.Name,
		Slug:      db.Slug,
		Active:    db.Active,
		CreatedAt: db.CreatedAt.In(time.Local),
	}
}

func toBusSegments(dbs []segmentDB) []planbus.Segment {
	bus := make([]planbus.Segment, len(dbs))
	for i, db := range dbs {
		bus[i] = toBusSegment(db)
	}
	return bus
}

type planDB struct {
	ID          uuid.UUID `db:"plan_id"`
	SegmentID   uuid.UUID `db:"segment_id"`
	Name        string    `db:"name"`
	Slug        string    `db:"slug"`
	Description string    `db:"description"`
	PriceCents  int       `db:"price_cents"`
	TrialDays   int       `db:"trial_days"`
	Active      bool      `db:"active"`
	CreatedAt   time.Time `db:"created_at"`
}

func toBusPlan(db planDB) planbus.Plan {
	return planbus.Plan{
		ID:          db.ID,
		SegmentID:   db.SegmentID,
		Name:        db.Name,
		Slug:        db.Slug,
		Description: db.Description,
		PriceCents:  db.PriceCents,
		TrialDays:   db.TrialDays,
		Active:      db.Active,
		CreatedAt:   db.CreatedAt.In(time.Local),
	}
}

func toBusPlans(dbs []planDB) []planbus.Plan {
	bus := make([]planbus.Plan, len(dbs))
	for i, db := range dbs {
		bus[i] = toBusPlan(db)
	}
	return bus
}
