// Package subscriptionapp maintains the app layer api for the billing domain.
package subscriptionapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/negocio360/platform/app/sdk/errs"
	"github.com/negocio360/platform/app/sdk/mid"
	"github.com/negocio360/platform/business/domain/planbus"
	"github.com/negocio360/platform/business/domain/subscriptionbus"
	"github.com/negocio360/platform/business/sdk/web"
)

type app struct {
	subBus  *subscriptionbus.Core
	planBus *planbus.Core
}

func newApp(subBus *subscriptionbus.Core, planBus *planbus.Core) *app {
	return &app{
		subBus:  subBus,
		planBus: planBus,
	}
}

func (a *app) queryCurrent(ctx context.Context, r *http.Request) web.Encoder {
	res, err := mid.GetTenant(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	sub, err := a.subBus.QueryCurrent(ctx, res.Tenant.ID)
	if err != nil {
		if errors.Is(err, subscriptionbus.ErrNotFound) {
			return errs.New(errs.NotFound, subscriptionbus.ErrNotFound)
		}
		return errs.New(errs.Internal, err)
	}

	return toAppSubscription(sub)
}

func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var req NewSubscription

	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	res, err := mid.GetTenant(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	planID, err := uuid.Parse(req.PlanID)
	if err != nil {
		return errs.NewFieldErrors("planId", err)
	}

	plan, err := a.planBus.QueryPlanByID(ctx, planID)
	if err != nil {
		if errors.Is(err, planbus.ErrNotFound) {
			return errs.New(errs.NotFound, planbus.ErrNotFound)
		}
		return errs.New(errs.Internal, err)
	}

	sub, err := a.subBus.Create(ctx, res.Tenant.ID, plan, req.Confirmation)
	if err != nil {
		if errors.Is(err, subscriptionbus.ErrAlreadyActive) {
			return errs.New(errs.AlreadyExists, subscriptionbus.ErrAlreadyActive)
		}
		return errs.New(errs.Internal, err)
	}

	return toAppSubscription(sub)
}

func (a *app) cancel(ctx context.Context, r *http.Request) web.Encoder {
	res, err := mid.GetTenant(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	subID, err := uuid.Parse(web.Param(r, "subscription_id"))
	if err != nil {
		return errs.NewFieldErrors("subscription_id", err)
	}

	sub, err := a.subBus.QueryByID(ctx, subID)
	if err != nil {
		if errors.Is(err, subscriptionbus.ErrNotFound) {
			return errs.New(errs.NotFound, subscriptionbus.ErrNotFound)
		}
		return errs.New(errs.Internal, err)
	}

	if sub.TenantID != res.Tenant.ID {
		return errs.New(errs.NotFound, subscriptionbus.ErrNotFound)
	}

	cancelled, err := a.subBus.Cancel(ctx, sub)
	if err != nil {
		if errors.Is(err, subscriptionbus.ErrNotCancelable) {
			return errs.New(errs.FailedPrecondition, err)
		}
		return errs.New(errs.Internal, err)
	}

	return toAppSubscription(cancelled)
}
