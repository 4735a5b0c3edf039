// Package plandb contains catalog related read functionality.
package plandb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/negocio360/platform/business/domain/planbus"
	"github.com/negocio360/platform/business/sdk/sqldb"
	"github.com/negocio360/platform/foundation/logger"
)

// Store manages the set of APIs for catalog database access.
type Store struct {
	log *logger.Logger
	db  sqlx.ExtContext
}

// NewStore constructs the api for data access.
func NewStore(log *logger.Logger, db *sqlx.DB) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

// QuerySegments retrieves the active segments from the database.
func (s *Store) QuerySegments(ctx context.Context) ([]planbus.Segment, error) {
	const q = `
	SELECT
		s.segment_id, s.name, s.slug, s.active, s.created_at
	FROM
		"public"."segments" AS s
	WHERE
		s.active = true
	ORDER BY
		s.name`

	var dbSgms []segmentDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, map[string]any{}, &dbSgms); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusSegments(dbSgms), nil
}

// QuerySegmentByID gets the specified segment from the database.
func (s *Store) QuerySegmentByID(ctx context.Context, segmentID uuid.UUID) (planbus.Segment, error) {
	data := struct {
		ID string `db:"segment_id"`
	}{
		ID: segmentID.String(),
	}

	const q = `
	SELECT
		s.segment_id, s.name, s.slug, s.active, s.created_at
	FROM
		"public"."segments" AS s
	WHERE
		s.segment_id = :segment_id`

	var dbSgm segmentDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbSgm); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return planbus.Segment{}, fmt.Errorf("db: %w", planbus.ErrNotFound)
		}
		return planbus.Segment{}, fmt.Errorf("db: %w", err)
	}

	return toBusSegment(dbSgm), nil
}

// QueryPlansBySegment retrieves the active plans for the segment ordered by
// price.
func (s *Store) QueryPlansBySegment(ctx context.Context, segmentID uuid.UUID) ([]planbus.Plan, error) {
	data := map[string]any{
		"segment_id": segmentID.String(),
	}

	const q = `
	SELECT
		p.plan_id, p.segment_id, p.name, p.slug, p.description, p.price_cents, p.trial_days, p.active, p.created_at
	FROM
		"public"."plans" AS p
	WHERE
		p.segment_id = :segment_id AND p.active = true
	ORDER BY
		p.price_cents`

	var dbPlns []planDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbPlns); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusPlans(dbPlns), nil
}

// QueryPlanByID gets the specified plan from the database.
func (s *Store) QueryPlanByID(ctx context.Context, planID uuid.UUID) (planbus.Plan, error) {
	data := struct {
		ID string `db:"plan_id"`
	}{
		ID: planID.String(),
	}

	const q = `
	SELECT
		p.plan_id, p.segment_id, p.name, p.slug, p.description, p.price_cents, p.trial_days, p.active, p.created_at
	FROM
		"public"."plans" AS p
	WHERE
		p.plan_id = :plan_id`

	var dbPln planDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbPln); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return planbus.Plan{}, fmt.Errorf("db: %w", planbus.ErrNotFound)
		}
		return planbus.Plan{}, fmt.Errorf("db: %w", err)
	}

	return toBusPlan(dbPln), nil
}
