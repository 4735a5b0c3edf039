// Package planapp maintains the app layer api for the catalog domain.
package planapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/negocio360/platform/app/sdk/errs"
	"github.com/negocio360/platform/business/domain/planbus"
	"github.com/negocio360/platform/business/sdk/web"
)

type app struct {
	planBus *planbus.Core
}

func newApp(planBus *planbus.Core) *app {
	return &app{
		planBus: planBus,
	}
}

func (a *app) querySegments(ctx context.Context, r *http.Request) web.Encoder {
	segments, err := a.planBus.QuerySegments(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return toAppSegments(segments)
}

func (a *app) queryPlans(ctx context.Context, r *http.Request) web.Encoder {
	segmentID, err := uuid.Parse(web.Param(r, "segment_id"))
	if err != nil {
		return errs.NewFieldErrors("segment_id", err)
	}

	if _, err := a.planBus.QuerySegmentByID(ctx, segmentID); err != nil {
		if errors.Is(err, planbus.ErrNotFound) {
			return errs.New(errs.NotFound, planbus.ErrNotFound)
		}
		return errs.New(errs.Internal, err)
	}

	plans, err := a.planBus.QueryPlansBySegment(ctx, segmentID)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return toAppPlans(plans)
}
