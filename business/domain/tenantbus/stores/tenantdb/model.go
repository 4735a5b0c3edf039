package tenantdb

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/negocio360/platform/business/domain/tenantbus"
	"github.com/negocio360/platform/business/types/name"
	"github.com/negocio360/platform/business/types/phone"
	"github.com/negocio360/platform/business/types/subdomain"
	"github.com/negocio360/platform/business/types/tenantstatus"
)

type tenantDB struct {
	ID             uuid.UUID      `db:"tenant_id"`
	OwnerID        uuid.UUID      `db:"owner_id"`
	SegmentID      uuid.UUID      `db:"segment_id"`
	Name           string         `db:"name"`
	Subdomain      string         `db:"subdomain"`
	CustomDomain   sql.NullString `db:"custom_domain"`
	DomainVerified bool           `db:"domain_verified"`
	ContactPhone   sql.NullString `db:"contact_phone"`
	LogoURL        sql.NullString `db:"logo_url"`
	BrandColors    []byte         `db:"brand_colors"`
	Settings       []byte         `db:"settings"`
	Status         string         `db:"status"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

func toDBTenant(bus tenantbus.Tenant) (tenantDB, error) {
	brandColors, err := json.Marshal(bus.BrandColors)
	if err != nil {
		return tenantDB{}, fmt.Errorf("marshal brand colors: %w", err)
	}

	settings, err := json.Marshal(bus.Settings)
	if err != nil {
		return tenantDB{}, fmt.Errorf("marshal settings: %w", err)
	}

	return tenantDB{
		ID:             bus.ID,
		OwnerID:        bus.OwnerID,
		SegmentID:      bus.SegmentID,
		Name:           bus.Name.String(),
		Subdomain:      bus.Subdomain.String(),
		CustomDomain:   sql.NullString{String: bus.CustomDomain, Valid: bus.CustomDomain != ""},
		DomainVerified: bus.DomainVerified,
		ContactPhone:   phone.ToSQLNullString(bus.ContactPhone),
		LogoURL:        sql.NullString{String: bus.LogoURL, Valid: bus.LogoURL != ""},
		BrandColors:    brandColors,
		Settings:       settings,
		Status:         bus.Status.String(),
		CreatedAt:      bus.CreatedAt.UTC(),
		UpdatedAt:      bus.UpdatedAt.UTC(),
	}, nil
}

func toBusTenant(db tenantDB) (tenantbus.Tenant, error) {
	nme, err := name.Parse(db.Name)
	if err != nil {
		return tenantbus.Tenant{}, fmt.Errorf("parse name: %w", err)
	}

	sub, err := subdomain.Parse(db.Subdomain)
	if err != nil {
		return tenantbus.Tenant{}, fmt.Errorf("parse subdomain: %w", err)
	}

	status, err := tenantstatus.Parse(db.Status)
	if err != nil {
		return tenantbus.Tenant{}, fmt.Errorf("parse status: %w", err)
	}

	contactPhone, err := phone.ParseNull(db.ContactPhone.String)
	if err != nil {
		return tenantbus.Tenant{}, fmt.Errorf("parse contact phone: %w", err)
	}

	var brandColors map[string]string
	if len(db.BrandColors) > 0 {
		if err := json.Unmarshal(db.BrandColors, &brandColors); err != nil {
			return tenantbus.Tenant{}, fmt.Errorf("unmarshal brand colors: %w", err)
		}
	}

	var settings map[string]string
	if len(db.Settings) > 0 {
		if err := json.Unmarshal(db.Settings, &settings); err != nil {
			return tenantbus.Tenant{}, fmt.Errorf("unmarshal settings: %w", err)
		}
	}

	bus := tenantbus.Tenant{
		ID:             db.ID,
		OwnerID:        db.OwnerID,
		SegmentID:      db.SegmentID,
		Name:           nme,
		Subdomain:      sub,
		CustomDomain:   db.CustomDomain.String,
		DomainVerified: db.DomainVerified,
		ContactPhone:   contactPhone,
		LogoURL:        db.LogoURL.String,
		BrandColors:    brandColors,
		Settings:       settings,
		Status:         status,
		CreatedAt:      db.CreatedAt.In(time.Local),
		UpdatedAt:      db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusTenants(dbs []tenantDB) ([]tenantbus.Tenant, error) {
	bus := make([]tenantbus.Tenant, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusTenant(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
