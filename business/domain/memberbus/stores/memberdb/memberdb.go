// Package memberdb contains membership related CRUD functionality.
package memberdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/negocio360/platform/business/domain/memberbus"
	"github.com/negocio360/platform/business/sdk/order"
	"github.com/negocio360/platform/business/sdk/page"
	"github.com/negocio360/platform/business/sdk/sqldb"
	"github.com/negocio360/platform/foundation/logger"
)

// Store manages the set of APIs for membership database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (memberbus.Storer, error) {
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

// Create inserts a new member into the database.
func (s *Store) Create(ctx context.Context, m memberbus.Member) error {
	const q = `
	INSERT INTO "public"."members"
		(member_id, tenant_id, user_id, email, role, capabilities, status, invited_by, invited_at, joined_at, created_at, updated_at)
	VALUES
		(:member_id, :tenant_id, :user_id, :email, :role, :capabilities, :status, :invited_by, :invited_at, :joined_at, :created_at, :updated_at)`

	dbMbr, err := toDBMember(m)
	if err != nil {
		return err
	}

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, dbMbr); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			return fmt.Errorf("namedexeccontext: %w", memberbus.ErrUniqueMember)
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a member document in the database.
func (s *Store) Update(ctx context.Context, m memberbus.Member) error {
	const q = `
	UPDATE
		"public"."members"
	SET
		role = :role,
		capabilities = :capabilities,
		status = :status,
		updated_at = :updated_at
	WHERE
		member_id = :member_id`

	dbMbr, err := toDBMember(m)
	if err != nil {
		return err
	}

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, dbMbr); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// QueryByID gets the specified member from the database.
func (s *Store) QueryByID(ctx context.Context, memberID uuid.UUID) (memberbus.Member, error) {
	data := struct {
		ID string `db:"member_id"`
	}{
		ID: memberID.String(),
	}

	const q = `
	SELECT
		m.member_id, m.tenant_id, m.user_id, m.email, m.role, m.capabilities, m.status, m.invited_by, m.invited_at, m.joined_at, m.created_at, m.updated_at
	FROM
		"public"."members" AS m
	WHERE
		m.member_id = :member_id`

	var dbMbr memberDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbMbr); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return memberbus.Member{}, fmt.Errorf("db: %w", memberbus.ErrNotFound)
		}
		return memberbus.Member{}, fmt.Errorf("db: %w", err)
	}

	return toBusMember(dbMbr)
}

// QueryByTenantUser gets the membership for the user in the tenant.
func (s *Store) QueryByTenantUser(ctx context.Context, tenantID uuid.UUID, userID uuid.UUID) (memberbus.Member, error) {
	data := struct {
		TenantID string `db:"tenant_id"`
		UserID   string `db:"user_id"`
	}{
		TenantID: tenantID.String(),
		UserID:   userID.String(),
	}

	const q = `
	SELECT
		m.member_id, m.tenant_id, m.user_id, m.email, m.role, m.capabilities, m.status, m.invited_by, m.invited_at, m.joined_at, m.created_at, m.updated_at
	FROM
		"public"."members" AS m
	WHERE
		m.tenant_id = :tenant_id AND m.user_id = :user_id`

	var dbMbr memberDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbMbr); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return memberbus.Member{}, fmt.Errorf("db: %w", memberbus.ErrNotFound)
		}
		return memberbus.Member{}, fmt.Errorf("db: %w", err)
	}

	return toBusMember(dbMbr)
}

// QueryByTenant retrieves a list of members for the tenant from the database.
func (s *Store) QueryByTenant(ctx context.Context, tenantID uuid.UUID, filter memberbus.QueryFilter, orderBy order.By, page page.Page) ([]memberbus.Member, error) {
	data := map[string]any{
		"tenant_id":     tenantID.String(),
		"offset":        (page.Number() - 1) * page.RowsPerPage(),
		"rows_per_page": page.RowsPerPage(),
	}

	const q = `
	SELECT
		m.member_id, m.tenant_id, m.user_id, m.email, m.role, m.capabilities, m.status, m.invited_by, m.invited_at, m.joined_at, m.created_at, m.updated_at
	FROM
		"public"."members" AS m
	WHERE
		m.tenant_id = :tenant_id`

	buf := bytes.NewBufferString(q)
	applyFilter(filter, data, buf)

	orderByClause, err := orderByClause(orderBy)
	if err != nil {
		return nil, err
	}

	buf.WriteString(orderByClause)
	buf.WriteString(" OFFSET :offset ROWS FETCH NEXT :rows_per_page ROWS ONLY")

	var dbMbrs []memberDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbMbrs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusMembers(dbMbrs)
}

// Count returns the total number of members for the tenant in the DB.
func (s *Store) Count(ctx context.Context, tenantID uuid.UUID, filter memberbus.QueryFilter) (int, error) {
	data := map[string]any{
		"tenant_id": tenantID.String(),
	}

	const q = `
	SELECT
		count(1)
	FROM
		"public"."members" AS m
	WHERE
		m.tenant_id = :tenant_id`

	buf := bytes.NewBufferString(q)
	applyFilter(filter, data, buf)

	var count struct {
		Count int `db:"count"`
	}
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, buf.String(), data, &count); err != nil {
		return 0, fmt.Errorf("db: %w", err)
	}

	return count.Count, nil
}
