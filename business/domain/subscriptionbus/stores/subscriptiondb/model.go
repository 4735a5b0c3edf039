package subscriptiondb

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/negocio360/platform/business/domain/subscriptionbus"
	"github.com/negocio360/platform/business/types/substatus"
)

type subscriptionDB struct {
	ID          uuid.UUID    `db:"subscription_id"`
	TenantID    uuid.UUID    `db:"tenant_id"`
	PlanID      uuid.UUID    `db:"plan_id"`
	PlanSlug    string       `db:"plan_slug"`
	Status      string       `db:"status"`
	TrialEndsAt sql.NullTime `db:"trial_ends_at"`
	CancelledAt sql.NullTime `db:"cancelled_at"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
}

func toDBSubscription(bus subscriptionbus.Subscription) subscriptionDB {
	return subscriptionDB{
		ID:          bus.ID,
		TenantID:    bus.TenantID,
		PlanID:      bus.PlanID,
		PlanSlug:    bus.PlanSlug,
		Status:      bus.Status.String(),
		TrialEndsAt: sql.NullTime{Time: bus.TrialEndsAt.UTC(), Valid: !bus.TrialEndsAt.IsZero()},
		CancelledAt: sql.NullTime{Time: bus.CancelledAt.UTC(), Valid: !bus.CancelledAt.IsZero()},
		CreatedAt:   bus.CreatedAt.UTC(),
		UpdatedAt:   bus.UpdatedAt.UTC(),
	}
}

func toBusSubscription(db subscriptionDB) (subscriptionbus.Subscription, error) {
	status, err := substatus.Parse(db.Status)
	if err != nil {
		return subscriptionbus.Subscription{}, fmt.Errorf("parse status: %w", err)
	}

	bus := subscriptionbus.Subscription{
		ID:        db.ID,
		TenantID:  db.TenantID,
		PlanID:    db.PlanID,
		PlanSlug:  db.PlanSlug,
		Status:    status,
		CreatedAt: db.CreatedAt.In(time.Local),
		UpdatedAt: db.UpdatedAt.In(time.Local),
	}

	if db.TrialEndsAt.Valid {
		bus.TrialEndsAt = db.TrialEndsAt.Time.In(time.Local)
	}

	if db.CancelledAt.Valid {
		bus.CancelledAt = db.CancelledAt.Time.In(time.Local)
	}

	return bus, nil
}
