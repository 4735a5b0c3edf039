// Package subscriptionbus provides business access to tenant subscriptions
// and the plan entitlement gate.
package subscriptionbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/negocio360/platform/business/domain/planbus"
	"github.com/negocio360/platform/business/sdk/sqldb"
	"github.com/negocio360/platform/business/types/feature"
	"github.com/negocio360/platform/business/types/substatus"
	"github.com/negocio360/platform/foundation/logger"
	"github.com/negocio360/platform/foundation/otel"
)

// Set of error variables for subscription operations.
var (
	ErrNotFound      = errors.New("subscription not found")
	ErrAlreadyActive = errors.New("tenant already has an entitled subscription")
	ErrNotCancelable = errors.New("subscription is not cancelable")
)

// Storer defines the behavior required by the subscriptionbus to interact
// with the database.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, sub Subscription) error
	Update(ctx context.Context, sub Subscription) error
	QueryByID(ctx context.Context, subID uuid.UUID) (Subscription, error)
	QueryCurrent(ctx context.Context, tenantID uuid.UUID) (Subscription, error)
}

// Core manages the set of APIs for subscription access.
type Core struct {
	log    *logger.Logger
	storer Storer
}

// NewCore constructs a core for subscription api access.
func NewCore(log *logger.Logger, storer Storer) *Core {
	return &Core{
		log:    log,
		storer: storer,
	}
}

// NewWithTx constructs a new Core value replacing the Storer value with a
// Storer value that is currently inside a transaction.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return &Core{
		log:    c.log,
		storer: storer,
	}, nil
}

// Create subscribes the tenant to the specified plan. Plans carrying trial
// days start in the trial status; otherwise the confirmation token from the
// payment gateway is required and the subscription starts active.
func (c *Core) Create(ctx context.Context, tenantID uuid.UUID, plan planbus.Plan, confirmation string) (Subscription, error) {
	ctx, span := otel.AddSpan(ctx, "business.subscriptionbus.create")
	defer span.End()

	current, err := c.storer.QueryCurrent(ctx, tenantID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return Subscription{}, fmt.Errorf("queryCurrent: %w", err)
	}
	if err == nil && current.Status.Entitled() {
		return Subscription{}, ErrAlreadyActive
	}

	now := time.Now()

	sub := Subscription{
		ID:        uuid.New(),
		TenantID:  tenantID,
		PlanID:    plan.ID,
		PlanSlug:  plan.Slug,
		Status:    substatus.Active,
		CreatedAt: now,
		UpdatedAt: now,
	}

	switch {
	case plan.TrialDays > 0:
		sub.Status = substatus.Trial
		sub.TrialEndsAt = now.AddDate(0, 0, plan.TrialDays)

	case confirmation == "":
		sub.Status = substatus.Pending
	}

	if err := c.storer.Create(ctx, sub); err != nil {
		return Subscription{}, fmt.Errorf("create: %w", err)
	}

	return sub, nil
}

// Cancel terminates an entitled subscription.
func (c *Core) Cancel(ctx context.Context, sub Subscription) (Subscription, error) {
	ctx, span := otel.AddSpan(ctx, "business.subscriptionbus.cancel")
	defer span.End()

	if !sub.Status.Entitled() && !sub.Status.Equal(substatus.Pending) {
		return Subscription{}, fmt.Errorf("status[%s]: %w", sub.Status, ErrNotCancelable)
	}

	now := time.Now()

	sub.Status = substatus.Cancelled
	sub.CancelledAt = now
	sub.UpdatedAt = now

	if err := c.storer.Update(ctx, sub); err != nil {
		return Subscription{}, fmt.Errorf("update: %w", err)
	}

	return sub, nil
}

// QueryByID finds the subscription by the specified ID.
func (c *Core) QueryByID(ctx context.Context, subID uuid.UUID) (Subscription, error) {
	ctx, span := otel.AddSpan(ctx, "business.subscriptionbus.queryByID")
	defer span.End()

	sub, err := c.storer.QueryByID(ctx, subID)
	if err != nil {
		return Subscription{}, fmt.Errorf("query: subscriptionID[%s]: %w", subID, err)
	}

	return sub, nil
}

// QueryCurrent returns the tenant's most recent subscription.
func (c *Core) QueryCurrent(ctx context.Context, tenantID uuid.UUID) (Subscription, error) {
	ctx, span := otel.AddSpan(ctx, "business.subscriptionbus.queryCurrent")
	defer span.End()

	sub, err := c.storer.QueryCurrent(ctx, tenantID)
	if err != nil {
		return Subscription{}, fmt.Errorf("queryCurrent: tenantID[%s]: %w", tenantID, err)
	}

	return sub, nil
}

// =============================================================================

// premiumFeatures is the set of features reserved for the advanced plan.
var premiumFeatures = map[feature.Feature]string{
	feature.CustomDomain: planbus.SlugAdvanced,
	feature.WhiteLabel:   planbus.SlugAdvanced,
	feature.APIAccess:    planbus.SlugAdvanced,
}

// IsFeatureEnabled reports whether the subscription unlocks the feature. The
// decision is pure: the subscription must be entitled (active or trial) and
// its plan must carry the feature. A zero Subscription disables everything.
func IsFeatureEnabled(sub Subscription, f feature.Feature) bool {
	if !sub.Status.Entitled() {
		return false
	}

	slug, exists := premiumFeatures[f]
	if !exists {
		return false
	}

	return sub.PlanSlug == slug
}
