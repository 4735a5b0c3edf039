// Package subscriptiondb contains subscription related CRUD functionality.
package subscriptiondb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/negocio360/platform/business/domain/subscriptionbus"
	"github.com/negocio360/platform/business/sdk/sqldb"
	"github.com/negocio360/platform/foundation/logger"
)

// Store manages the set of APIs for subscription database access.
type Store struct {
	log *logger.Logger
	db  sqlx.ExtContext
}

// NewStore constructs the api for data access.
func NewStore(log *logger.Logger, db *sqlx.DB) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

// NewWithTx constructs a new Store value replacing the sqlx DB
// value with a sqlx DB value that is currently inside a transaction.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (subscriptionbus.Storer, error) {
	ec, err := sqldb.GetExtContext(tx)
	if err != nil {
		return nil, err
	}

	store := Store{
		log: s.log,
		db:  ec,
	}

	return &store, nil
}

// Create inserts a new subscription into the database.
func (s *Store) Create(ctx context.Context, sub subscriptionbus.Subscription) error {
	const q = `
	INSERT INTO "public"."subscriptions"
		(subscription_id, tenant_id, plan_id, plan_slug, status, trial_ends_at, cancelled_at, created_at, updated_at)
	VALUES
		(:subscription_id, :tenant_id, :plan_id, :plan_slug, :status, :trial_ends_at, :cancelled_at, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBSubscription(sub)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a subscription document in the database.
func (s *Store) Update(ctx context.Context, sub subscriptionbus.Subscription) error {
	const q = `
	UPDATE
		"public"."subscriptions"
	SET
		status = :status,
		trial_ends_at = :trial_ends_at,
		cancelled_at = :cancelled_at,
		updated_at = :updated_at
	WHERE
		subscription_id = :subscription_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBSubscription(sub)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// QueryByID gets the specified subscription from the database.
func (s *Store) QueryByID(ctx context.Context, subID uuid.UUID) (subscriptionbus.Subscription, error) {
	data := struct {
		ID string `db:"subscription_id"`
	}{
		ID: subID.String(),
	}

	const q = `
	SELECT
		s.subscription_id, s.tenant_id, s.plan_id, s.plan_slug, s.status, s.trial_ends_at, s.cancelled_at, s.created_at, s.updated_at
	FROM
		"public"."subscriptions" AS s
	WHERE
		s.subscription_id = :subscription_id`

	var dbSub subscriptionDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbSub); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return subscriptionbus.Subscription{}, fmt.Errorf("db: %w", subscriptionbus.ErrNotFound)
		}
		return subscriptionbus.Subscription{}, fmt.Errorf("db: %w", err)
	}

	return toBusSubscription(dbSub)
}

// QueryCurrent gets the most recent subscription for the tenant.
func (s *Store) QueryCurrent(ctx context.Context, tenantID uuid.UUID) (subscriptionbus.Subscription, error) {
	data := struct {
		TenantID string `db:"tenant_id"`
	}{
		TenantID: tenantID.String(),
	}

	const q = `
	SELECT
		s.subscription_id, s.tenant_id, s.plan_id, s.plan_slug, s.status, s.trial_ends_at, s.cancelled_at, s.created_at, s.updated_at
	FROM
		"public"."subscriptions" AS s
	WHERE
		s.tenant_id = :tenant_id
	ORDER BY
		s.created_at DESC
	LIMIT 1`

	var dbSub subscriptionDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbSub); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return subscriptionbus.Subscription{}, fmt.Errorf("db: %w", subscriptionbus.ErrNotFound)
		}
		return subscriptionbus.Subscription{}, fmt.Errorf("db: %w", err)
	}

	return toBusSubscription(dbSub)
}
