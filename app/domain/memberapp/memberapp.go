// Package memberapp maintains the app layer api for the membership domain.
package memberapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/negocio360/platform/app/sdk/errs"
	"github.com/negocio360/platform/app/sdk/mid"
	"github.com/negocio360/platform/app/sdk/query"
	"github.com/negocio360/platform/business/domain/memberbus"
	"github.com/negocio360/platform/business/sdk/order"
	"github.com/negocio360/platform/business/sdk/page"
	"github.com/negocio360/platform/business/sdk/web"
	"github.com/negocio360/platform/business/types/role"
)

type app struct {
	memberBus *memberbus.Core
}

func newApp(memberBus *memberbus.Core) *app {
	return &app{
		memberBus: memberBus,
	}
}

func (a *app) query(ctx context.Context, r *http.Request) web.Encoder {
	res, err := mid.GetTenant(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	qp := r.URL.Query()

	pg, err := page.Parse(qp.Get("page"), qp.Get("rows"))
	if err != nil {
		return errs.NewFieldErrors("page", err)
	}

	filter, err := parseFilter(r)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	orderBy, err := order.Parse(orderByFields, qp.Get("orderBy"), memberbus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	members, err := a.memberBus.QueryByTenant(ctx, res.Tenant.ID, filter, orderBy, pg)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	total, err := a.memberBus.Count(ctx, res.Tenant.ID, filter)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return query.NewResult(toAppMembers(members), total, pg.Number(), pg.RowsPerPage())
}

func (a *app) invite(ctx context.Context, r *http.Request) web.Encoder {
	var req NewInvite

	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	actor, err := mid.GetMember(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	email, rl, err := toBusNewInvite(req)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	inv := memberbus.NewInvite{
		TenantID: actor.TenantID,
		Email:    email,
		Role:     rl,
	}

	m, err := a.memberBus.Invite(ctx, actor, inv)
	if err != nil {
		switch {
		case errors.Is(err, memberbus.ErrPrincipalNotFound):
			return errs.New(errs.FailedPrecondition, memberbus.ErrPrincipalNotFound)
		case errors.Is(err, memberbus.ErrInsufficientRole):
			return errs.New(errs.PermissionDenied, err)
		case errors.Is(err, memberbus.ErrUniqueMember):
			return errs.New(errs.AlreadyExists, memberbus.ErrUniqueMember)
		default:
			return errs.New(errs.Internal, err)
		}
	}

	return toAppMember(m)
}

func (a *app) updateRole(ctx context.Context, r *http.Request) web.Encoder {
	var req UpdateRole

	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	actor, target, err := a.actorAndTarget(ctx, r)
	if err != nil {
		return errs.New(errs.NotFound, err)
	}

	newRole, err := role.Parse(req.Role)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	m, err := a.memberBus.UpdateRole(ctx, actor, target, newRole)
	if err != nil {
		if errors.Is(err, memberbus.ErrInsufficientRole) {
			return errs.New(errs.PermissionDenied, err)
		}
		return errs.New(errs.Internal, err)
	}

	return toAppMember(m)
}

func (a *app) updateCapabilities(ctx context.Context, r *http.Request) web.Encoder {
	var req UpdateCapabilities

	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	actor, target, err := a.actorAndTarget(ctx, r)
	if err != nil {
		return errs.New(errs.NotFound, err)
	}

	caps, err := toBusCapabilitySet(req)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	m, err := a.memberBus.UpdateCapabilities(ctx, actor, target, caps)
	if err != nil {
		if errors.Is(err, memberbus.ErrInsufficientRole) {
			return errs.New(errs.PermissionDenied, err)
		}
		return errs.New(errs.Internal, err)
	}

	return toAppMember(m)
}

func (a *app) remove(ctx context.Context, r *http.Request) web.Encoder {
	actor, target, err := a.actorAndTarget(ctx, r)
	if err != nil {
		return errs.New(errs.NotFound, err)
	}

	if _, err := a.memberBus.Remove(ctx, actor, target); err != nil {
		switch {
		case errors.Is(err, memberbus.ErrCannotRemoveOwner):
			return errs.New(errs.FailedPrecondition, memberbus.ErrCannotRemoveOwner)
		case errors.Is(err, memberbus.ErrInsufficientRole):
			return errs.New(errs.PermissionDenied, err)
		default:
			return errs.New(errs.Internal, err)
		}
	}

	return nil
}

// actorAndTarget loads the acting membership from the context and the target
// membership from the path, refusing targets outside the resolved tenant.
func (a *app) actorAndTarget(ctx context.Context, r *http.Request) (memberbus.Member, memberbus.Member, error) {
	actor, err := mid.GetMember(ctx)
	if err != nil {
		return memberbus.Member{}, memberbus.Member{}, err
	}

	memberID, err := uuid.Parse(web.Param(r, "member_id"))
	if err != nil {
		return memberbus.Member{}, memberbus.Member{}, memberbus.ErrNotFound
	}

	target, err := a.memberBus.QueryByID(ctx, memberID)
	if err != nil {
		return memberbus.Member{}, memberbus.Member{}, memberbus.ErrNotFound
	}

	if target.TenantID != actor.TenantID {
		return memberbus.Member{}, memberbus.Member{}, memberbus.ErrNotFound
	}

	return actor, target, nil
}
