package mid

import (
	"context"
	"net/http"

	"github.com/negocio360/platform/app/sdk/errs"
	"github.com/negocio360/platform/business/sdk/web"
	"github.com/negocio360/platform/business/types/role"
)

// AuthorizeMinRole checks the principal's effective role in the resolved
// tenant against the minimum required. The role comes from the resolver,
// never from cached claims.
func AuthorizeMinRole(minRole role.Role) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			res, err := GetTenant(ctx)
			if err != nil {
				return errs.New(errs.Unauthenticated, err)
			}

			if !res.Role.AtLeast(minRole) {
				return errs.Errorf(errs.PermissionDenied, "role %q is below %q", res.Role, minRole)
			}

			return next(ctx, r)
		}

		return h
	}

	return m
}
