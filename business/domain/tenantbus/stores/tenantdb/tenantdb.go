// Package tenantdb contains tenant related CRUD functionality.
package tenantdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/negocio360/platform/business/domain/tenantbus"
	"github.com/negocio360/platform/business/sdk/sqldb"
	"github.com/negocio360/platform/business/types/subdomain"
	"github.com/negocio360/platform/foundation/logger"
)

// Store manages the set of APIs for tenant database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (tenantbus.Storer, error) {
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

// Create inserts a new tenant into the database.
func (s *Store) Create(ctx context.Context, t tenantbus.Tenant) error {
	const q = `
	INSERT INTO "public"."tenants"
		(tenant_id, owner_id, segment_id, name, subdomain, custom_domain, domain_verified, contact_phone, logo_url, brand_colors, settings, status, created_at, updated_at)
	VALUES
		(:tenant_id, :owner_id, :segment_id, :name, :subdomain, :custom_domain, :domain_verified, :contact_phone, :logo_url, :brand_colors, :settings, :status, :created_at, :updated_at)`

	dbTnt, err := toDBTenant(t)
	if err != nil {
		return err
	}

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, dbTnt); err != nil {
		return fmt.Errorf("namedexeccontext: %w", mapDuplicate(err))
	}

	return nil
}

// Update replaces a tenant document in the database.
func (s *Store) Update(ctx context.Context, t tenantbus.Tenant) error {
	const q = `
	UPDATE
		"public"."tenants"
	SET
		segment_id = :segment_id,
		name = :name,
		custom_domain = :custom_domain,
		domain_verified = :domain_verified,
		contact_phone = :contact_phone,
		logo_url = :logo_url,
		brand_colors = :brand_colors,
		settings = :settings,
		status = :status,
		updated_at = :updated_at
	WHERE
		tenant_id = :tenant_id`

	dbTnt, err := toDBTenant(t)
	if err != nil {
		return err
	}

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, dbTnt); err != nil {
		return fmt.Errorf("namedexeccontext: %w", mapDuplicate(err))
	}

	return nil
}

// mapDuplicate resolves which uniqueness constraint a duplicate entry error
// comes from so the business layer can react per constraint.
func mapDuplicate(err error) error {
	var dupErr sqldb.ErrDBDuplicatedEntry
	if !errors.As(err, &dupErr) {
		return err
	}

	switch dupErr.Column {
	case "subdomain", "uq_tenant_subdomain":
		return tenantbus.ErrUniqueSubdomain
	case "custom_domain", "uq_tenant_custom_domain":
		return tenantbus.ErrUniqueDomain
	case "owner_id", "uq_tenant_owner":
		return tenantbus.ErrAlreadyProvisioned
	}

	return err
}

// QueryByID gets the specified tenant from the database.
func (s *Store) QueryByID(ctx context.Context, tenantID uuid.UUID) (tenantbus.Tenant, error) {
	data := struct {
		ID string `db:"tenant_id"`
	}{
		ID: tenantID.String(),
	}

	const q = selectTenant + `
	WHERE
		t.tenant_id = :tenant_id`

	return s.queryOne(ctx, q, data)
}

// QueryByOwnerID gets the tenants owned by the specified user. The unique
// constraint keeps this at zero or one row; the slice return lets the
// business layer detect integrity violations.
func (s *Store) QueryByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]tenantbus.Tenant, error) {
	data := struct {
		OwnerID string `db:"owner_id"`
	}{
		OwnerID: ownerID.String(),
	}

	const q = selectTenant + `
	WHERE
		t.owner_id = :owner_id`

	var dbTnts []tenantDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbTnts); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusTenants(dbTnts)
}

// QueryBySubdomain gets the tenant serving the specified subdomain.
func (s *Store) QueryBySubdomain(ctx context.Context, sub subdomain.Subdomain) (tenantbus.Tenant, error) {
	data := struct {
		Subdomain string `db:"subdomain"`
	}{
		Subdomain: sub.String(),
	}

	const q = selectTenant + `
	WHERE
		t.subdomain = :subdomain`

	return s.queryOne(ctx, q, data)
}

// QueryByCustomDomain gets the tenant serving the specified custom domain.
func (s *Store) QueryByCustomDomain(ctx context.Context, domain string) (tenantbus.Tenant, error) {
	data := struct {
		Domain string `db:"custom_domain"`
	}{
		Domain: domain,
	}

	const q = selectTenant + `
	WHERE
		t.custom_domain = :custom_domain`

	return s.queryOne(ctx, q, data)
}

// ExistsBySubdomain reports whether any tenant already holds the subdomain.
func (s *Store) ExistsBySubdomain(ctx context.Context, sub subdomain.Subdomain) (bool, error) {
	data := struct {
		Subdomain string `db:"subdomain"`
	}{
		Subdomain: sub.String(),
	}

	const q = `
	SELECT
		count(1)
	FROM
		"public"."tenants" AS t
	WHERE
		t.subdomain = :subdomain`

	var count struct {
		Count int `db:"count"`
	}
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &count); err != nil {
		return false, fmt.Errorf("db: %w", err)
	}

	return count.Count > 0, nil
}

// CountByDomain returns how many tenants claim the specified value as either
// their subdomain or their custom domain.
func (s *Store) CountByDomain(ctx context.Context, domain string) (int, error) {
	data := struct {
		Domain string `db:"domain"`
	}{
		Domain: domain,
	}

	const q = `
	SELECT
		count(1)
	FROM
		"public"."tenants" AS t
	WHERE
		t.subdomain = :domain OR t.custom_domain = :domain`

	var count struct {
		Count int `db:"count"`
	}
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &count); err != nil {
		return 0, fmt.Errorf("db: %w", err)
	}

	return count.Count, nil
}

const selectTenant = `
	SELECT
		t.tenant_id, t.owner_id, t.segment_id, t.name, t.subdomain, t.custom_domain, t.domain_verified, t.contact_phone, t.logo_url, t.brand_colors, t.settings, t.status, t.created_at, t.updated_at
	FROM
		"public"."tenants" AS t`

func (s *Store) queryOne(ctx context.Context, q string, data any) (tenantbus.Tenant, error) {
	var dbTnt tenantDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbTnt); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return tenantbus.Tenant{}, fmt.Errorf("db: %w", tenantbus.ErrNotFound)
		}
		return tenantbus.Tenant{}, fmt.Errorf("db: %w", err)
	}

	return toBusTenant(dbTnt)
}
