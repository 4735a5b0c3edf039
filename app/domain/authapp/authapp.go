// Package authapp maintains the app layer api for the auth domain.
package authapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/mail"

	"github.com/google/uuid"
	"github.com/negocio360/platform/app/sdk/auth"
	"github.com/negocio360/platform/app/sdk/errs"
	"github.com/negocio360/platform/business/domain/tenantbus"
	"github.com/negocio360/platform/business/sdk/web"
	"github.com/negocio360/platform/business/types/role"
)

type app struct {
	auth      *auth.Auth
	tenantBus *tenantbus.Core
	activeKID string
}

func newApp(ath *auth.Auth, tenantBus *tenantbus.Core, activeKID string) *app {
	return &app{
		auth:      ath,
		tenantBus: tenantBus,
		activeKID: activeKID,
	}
}

func (a *app) login(ctx context.Context, r *http.Request) web.Encoder {
	var req Login

	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	addr, err := mail.ParseAddress(req.Email)
	if err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("parsing email: %w", err))
	}

	usr, err := a.auth.Login(ctx, *addr, req.Password)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	// Resolve the tenant for the serving host so the token carries the
	// tenant scope. A principal without a tenant gets a platform token.
	tenantID := uuid.Nil
	var tenantRole role.Role

	res, err := a.tenantBus.Resolve(ctx, usr.ID, r.Host)
	switch {
	case err == nil:
		tenantID = res.Tenant.ID
		tenantRole = res.Role
	case errors.Is(err, tenantbus.ErrNotFound):
		// No tenant scope.
	default:
		return errs.New(errs.Internal, err)
	}

	tokenStr, err := a.auth.GenerateToken(a.activeKID, usr.ID, tenantID, tenantRole)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return toAppToken(tokenStr)
}
