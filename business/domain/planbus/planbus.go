// Package planbus provides business access to the catalog of business
// segments and subscription plans.
package planbus

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/negocio360/platform/foundation/logger"
	"github.com/negocio360/platform/foundation/otel"
)

// SlugAdvanced is the plan that unlocks the premium feature set.
const SlugAdvanced = "avancado"

// Set of error variables for plan operations.
var (
	ErrNotFound = errors.New("plan not found")
)

// Storer defines the behavior required by the planbus to interact with
// the database. The catalog is read-only from the service's point of view.
type Storer interface {
	QuerySegments(ctx context.Context) ([]Segment, error)
	QuerySegmentByID(ctx context.Context, segmentID uuid.UUID) (Segment, error)
	QueryPlansBySegment(ctx context.Context, segmentID uuid.UUID) ([]Plan, error)
	QueryPlanByID(ctx context.Context, planID uuid.UUID) (Plan, error)
}

// Core manages the set of APIs for catalog access.
type Core struct {
	log    *logger.Logger
	storer Storer
}

// NewCore constructs a core for catalog api access.
func NewCore(log *logger.Logger, storer Storer) *Core {
	return &Core{
		log:    log,
		storer: storer,
	}
}

// QuerySegments retrieves the active business segments.
func (c *Core) QuerySegments(ctx context.Context) ([]Segment, error) {
	ctx, span := otel.AddSpan(ctx, "business.planbus.querySegments")
	defer span.End()

	segments, err := c.storer.QuerySegments(ctx)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return segments, nil
}

// QuerySegmentByID finds the segment by the specified ID.
func (c *Core) QuerySegmentByID(ctx context.Context, segmentID uuid.UUID) (Segment, error) {
	ctx, span := otel.AddSpan(ctx, "business.planbus.querySegmentByID")
	defer span.End()

	sgm, err := c.storer.QuerySegmentByID(ctx, segmentID)
	if err != nil {
		return Segment{}, fmt.Errorf("query: segmentID[%s]: %w", segmentID, err)
	}

	return sgm, nil
}

// QueryPlansBySegment retrieves the active plans for a segment ordered by
// price.
func (c *Core) QueryPlansBySegment(ctx context.Context, segmentID uuid.UUID) ([]Plan, error) {
	ctx, span := otel.AddSpan(ctx, "business.planbus.queryPlansBySegment")
	defer span.End()

	plans, err := c.storer.QueryPlansBySegment(ctx, segmentID)
	if err != nil {
		return nil, fmt.Errorf("query: segmentID[%s]: %w", segmentID, err)
	}

	return plans, nil
}

// QueryPlanByID finds the plan by the specified ID.
func (c *Core) QueryPlanByID(ctx context.Context, planID uuid.UUID) (Plan, error) {
	ctx, span := otel.AddSpan(ctx, "business.planbus.queryPlanByID")
	defer span.End()

	pln, err := c.storer.QueryPlanByID(ctx, planID)
	if err != nil {
		return Plan{}, fmt.Errorf("query: planID[%s]: %w", planID, err)
	}

	return pln, nil
}
