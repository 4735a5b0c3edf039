// Package tenantapp maintains the app layer api for the tenant domain.
package tenantapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/negocio360/platform/app/sdk/errs"
	"github.com/negocio360/platform/app/sdk/mid"
	"github.com/negocio360/platform/business/domain/domainbus"
	"github.com/negocio360/platform/business/domain/subscriptionbus"
	"github.com/negocio360/platform/business/domain/tenantbus"
	"github.com/negocio360/platform/business/sdk/web"
	"github.com/negocio360/platform/business/types/feature"
)

type app struct {
	tenantBus *tenantbus.Core
	subBus    *subscriptionbus.Core
	domainBus *domainbus.Core
}

func newApp(tenantBus *tenantbus.Core, subBus *subscriptionbus.Core, domainBus *domainbus.Core) *app {
	return &app{
		tenantBus: tenantBus,
		subBus:    subBus,
		domainBus: domainBus,
	}
}

// newWithTx constructs a new app value using a tenant core bound to the
// transaction in the context.
func (a *app) newWithTx(ctx context.Context) (*app, error) {
	tx, err := mid.GetTran(ctx)
	if err != nil {
		return nil, err
	}

	tenantBus, err := a.tenantBus.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return &app{
		tenantBus: tenantBus,
		subBus:    a.subBus,
		domainBus: a.domainBus,
	}, nil
}

func (a *app) provision(ctx context.Context, r *http.Request) web.Encoder {
	var req NewTenant

	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	nt, err := toBusNewTenant(req, userID)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	txApp, err := a.newWithTx(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	t, err := txApp.tenantBus.Create(ctx, nt)
	if err != nil {
		switch {
		case errors.Is(err, tenantbus.ErrAlreadyProvisioned):
			return errs.New(errs.AlreadyExists, tenantbus.ErrAlreadyProvisioned)
		case errors.Is(err, tenantbus.ErrAllocationExhausted):
			return errs.New(errs.ResourceExhausted, tenantbus.ErrAllocationExhausted)
		default:
			return errs.New(errs.Internal, err)
		}
	}

	return toAppTenant(t)
}

func (a *app) current(ctx context.Context, r *http.Request) web.Encoder {
	res, err := mid.GetTenant(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return toAppResolved(res)
}

func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var req UpdateTenant

	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	t, err := a.tenantFromPath(ctx, r)
	if err != nil {
		return errs.NewFieldErrors("tenant_id", err)
	}

	ut, err := toBusUpdateTenant(req)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	updated, err := a.tenantBus.Update(ctx, t, ut)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return toAppTenant(updated)
}

func (a *app) updateStatus(ctx context.Context, r *http.Request) web.Encoder {
	var req UpdateStatus

	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	t, err := a.tenantFromPath(ctx, r)
	if err != nil {
		return errs.NewFieldErrors("tenant_id", err)
	}

	target, err := toBusStatus(req)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	updated, err := a.tenantBus.UpdateStatus(ctx, t, target)
	if err != nil {
		if errors.Is(err, tenantbus.ErrInvalidTransition) {
			return errs.New(errs.FailedPrecondition, err)
		}
		return errs.New(errs.Internal, err)
	}

	return toAppTenant(updated)
}

func (a *app) setDomain(ctx context.Context, r *http.Request) web.Encoder {
	var req SetDomain

	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	t, err := a.tenantFromPath(ctx, r)
	if err != nil {
		return errs.NewFieldErrors("tenant_id", err)
	}

	if req.Domain != "" {
		sub, err := a.subBus.QueryCurrent(ctx, t.ID)
		if err != nil && !errors.Is(err, subscriptionbus.ErrNotFound) {
			return errs.New(errs.Internal, err)
		}

		if !subscriptionbus.IsFeatureEnabled(sub, feature.CustomDomain) {
			return errs.Errorf(errs.PermissionDenied, "plan does not include custom domains")
		}

		available, err := a.domainBus.CheckAvailability(ctx, req.Domain)
		if err != nil {
			return errs.New(errs.Internal, err)
		}
		if !available && t.CustomDomain != req.Domain {
			return errs.Errorf(errs.AlreadyExists, "domain %q is taken", req.Domain)
		}
	}

	updated, err := a.tenantBus.SetCustomDomain(ctx, t, req.Domain)
	if err != nil {
		if errors.Is(err, tenantbus.ErrUniqueDomain) {
			return errs.New(errs.AlreadyExists, tenantbus.ErrUniqueDomain)
		}
		return errs.New(errs.Internal, err)
	}

	return toAppTenant(updated)
}

func (a *app) verifyDomain(ctx context.Context, r *http.Request) web.Encoder {
	t, err := a.tenantFromPath(ctx, r)
	if err != nil {
		return errs.NewFieldErrors("tenant_id", err)
	}

	if t.CustomDomain == "" {
		return errs.Errorf(errs.FailedPrecondition, "tenant has no custom domain")
	}

	verified, err := a.domainBus.Verify(ctx, t.CustomDomain)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	if verified {
		if _, err := a.tenantBus.MarkDomainVerified(ctx, t); err != nil {
			return errs.New(errs.Internal, err)
		}
	}

	return VerifyResult{
		Domain:   t.CustomDomain,
		Verified: verified,
	}
}

func (a *app) availability(ctx context.Context, r *http.Request) web.Encoder {
	domain := r.URL.Query().Get("domain")
	if domain == "" {
		return errs.Errorf(errs.InvalidArgument, "missing domain query parameter")
	}

	available, err := a.domainBus.CheckAvailability(ctx, domain)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return Availability{
		Domain:    domain,
		Available: available,
	}
}

// tenantFromPath returns the resolved tenant after checking it matches the
// tenant id in the request path. A mismatch is reported as not found so the
// existence of other tenants does not leak.
func (a *app) tenantFromPath(ctx context.Context, r *http.Request) (tenantbus.Tenant, error) {
	res, err := mid.GetTenant(ctx)
	if err != nil {
		return tenantbus.Tenant{}, err
	}

	tenantID, err := uuid.Parse(web.Param(r, "tenant_id"))
	if err != nil {
		return tenantbus.Tenant{}, tenantbus.ErrNotFound
	}

	if res.Tenant.ID != tenantID {
		return tenantbus.Tenant{}, tenantbus.ErrNotFound
	}

	return res.Tenant, nil
}
