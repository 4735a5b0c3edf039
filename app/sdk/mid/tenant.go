package mid

import (
	"context"
	"errors"
	"net/http"

	"github.com/negocio360/platform/app/sdk/errs"
	"github.com/negocio360/platform/business/domain/memberbus"
	"github.com/negocio360/platform/business/domain/tenantbus"
	"github.com/negocio360/platform/business/sdk/web"
)

// ResolveTenant determines the tenant context for the request from the host
// header and the authenticated principal. Resolution runs on every request
// so role changes take effect immediately.
func ResolveTenant(tenantBus *tenantbus.Core) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			userID, err := GetUserID(ctx)
			if err != nil {
				return errs.New(errs.Unauthenticated, err)
			}

			res, err := tenantBus.Resolve(ctx, userID, r.Host)
			if err != nil {
				switch {
				case errors.Is(err, tenantbus.ErrNotFound):
					return errs.New(errs.NotFound, tenantbus.ErrNotFound)
				case errors.Is(err, tenantbus.ErrDataIntegrity):
					return errs.New(errs.Internal, err)
				default:
					return errs.New(errs.Internal, err)
				}
			}

			ctx = setTenant(ctx, res)

			return next(ctx, r)
		}

		return h
	}

	return m
}

// LoadMember loads the acting principal's full membership in the resolved
// tenant into the context for member management endpoints.
func LoadMember(memberBus *memberbus.Core) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			userID, err := GetUserID(ctx)
			if err != nil {
				return errs.New(errs.Unauthenticated, err)
			}

			res, err := GetTenant(ctx)
			if err != nil {
				return errs.New(errs.Internal, err)
			}

			m, err := memberBus.QueryMembership(ctx, res.Tenant.ID, userID)
			if err != nil {
				if errors.Is(err, memberbus.ErrNotFound) {
					return errs.New(errs.PermissionDenied, memberbus.ErrNotFound)
				}
				return errs.New(errs.Internal, err)
			}

			ctx = setMember(ctx, m)

			return next(ctx, r)
		}

		return h
	}

	return m
}
