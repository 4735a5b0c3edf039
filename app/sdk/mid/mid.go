// Package mid provides app level middleware support.
package mid

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/negocio360/platform/app/sdk/auth"
	"github.com/negocio360/platform/business/domain/memberbus"
	"github.com/negocio360/platform/business/domain/tenantbus"
	"github.com/negocio360/platform/business/domain/userbus"
	"github.com/negocio360/platform/business/sdk/sqldb"
	"github.com/negocio360/platform/business/sdk/web"
)

func checkIsError(e web.Encoder) error {
	err, hasError := e.(error)
	if hasError {
		return err
	}

	return nil
}

// =============================================================================

type ctxKey int

const (
	claimKey ctxKey = iota + 1
	userIDKey
	userKey
	trKey
	tenantKey
	memberKey
)

func setClaims(ctx context.Context, claims auth.Claims) context.Context {
	return context.WithValue(ctx, claimKey, claims)
}

// GetClaims returns the claims from the context.
func GetClaims(ctx context.Context) auth.Claims {
	v, ok := ctx.Value(claimKey).(auth.Claims)
	if !ok {
		return auth.Claims{}
	}
	return v
}

func setUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID returns the user id from the context.
func GetUserID(ctx context.Context) (uuid.UUID, error) {
	v, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok {
		return uuid.UUID{}, errors.New("user id not found in context")
	}

	return v, nil
}

func setUser(ctx context.Context, usr userbus.User) context.Context {
	return context.WithValue(ctx, userKey, usr)
}

// GetUser returns the user from the context.
func GetUser(ctx context.Context) (userbus.User, error) {
	v, ok := ctx.Value(userKey).(userbus.User)
	if !ok {
		return userbus.User{}, errors.New("user not found in context")
	}

	return v, nil
}

func setTenant(ctx context.Context, res tenantbus.Resolved) context.Context {
	return context.WithValue(ctx, tenantKey, res)
}

// GetTenant returns the resolved tenant and effective role from the context.
func GetTenant(ctx context.Context) (tenantbus.Resolved, error) {
	v, ok := ctx.Value(tenantKey).(tenantbus.Resolved)
	if !ok {
		return tenantbus.Resolved{}, errors.New("tenant not found in context")
	}

	return v, nil
}

func setMember(ctx context.Context, m memberbus.Member) context.Context {
	return context.WithValue(ctx, memberKey, m)
}

// GetMember returns the acting membership from the context.
func GetMember(ctx context.Context) (memberbus.Member, error) {
	v, ok := ctx.Value(memberKey).(memberbus.Member)
	if !ok {
		return memberbus.Member{}, errors.New("member not found in context")
	}

	return v, nil
}

func setTran(ctx context.Context, tx sqldb.CommitRollbacker) context.Context {
	return context.WithValue(ctx, trKey, tx)
}

// GetTran retrieves the value that can manage a transaction.
func GetTran(ctx context.Context) (sqldb.CommitRollbacker, error) {
	v, ok := ctx.Value(trKey).(sqldb.CommitRollbacker)
	if !ok {
		return nil, errors.New("transaction not found in context")
	}

	return v, nil
}
