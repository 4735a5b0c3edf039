package tenantapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/negocio360/platform/app/sdk/errs"
	"github.com/negocio360/platform/business/domain/tenantbus"
	"github.com/negocio360/platform/business/types/name"
	"github.com/negocio360/platform/business/types/phone"
	"github.com/negocio360/platform/business/types/tenantstatus"
)

// Tenant is the response model for tenants. The role field carries the
// effective role of the requesting principal when known.
type Tenant struct {
	ID             string            `json:"id"`
	OwnerID        string            `json:"ownerId"`
	SegmentID      string            `json:"segmentId"`
	Name           string            `json:"name"`
	Subdomain      string            `json:"subdomain"`
	CustomDomain   string            `json:"customDomain,omitempty"`
	DomainVerified bool              `json:"domainVerified"`
	ContactPhone   string            `json:"contactPhone,omitempty"`
	LogoURL        string            `json:"logoUrl,omitempty"`
	BrandColors    map[string]string `json:"brandColors,omitempty"`
	Settings       map[string]string `json:"settings,omitempty"`
	Status         string            `json:"status"`
	Role           string            `json:"role,omitempty"`
	CreatedAt      string            `json:"createdAt"`
	UpdatedAt      string            `json:"updatedAt"`
}

// Encode implements the web.Encoder interface.
func (app Tenant) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppTenant(bus tenantbus.Tenant) Tenant {
	return Tenant{
		ID:             bus.ID.String(),
		OwnerID:        bus.OwnerID.String(),
		SegmentID:      bus.SegmentID.String(),
		Name:           bus.Name.String(),
		Subdomain:      bus.Subdomain.String(),
		CustomDomain:   bus.CustomDomain,
		DomainVerified: bus.DomainVerified,
		ContactPhone:   contactPhoneString(bus.ContactPhone),
		LogoURL:        bus.LogoURL,
		BrandColors:    bus.BrandColors,
		Settings:       bus.Settings,
		Status:         bus.Status.String(),
		CreatedAt:      bus.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      bus.UpdatedAt.Format(time.RFC3339),
	}
}

func contactPhoneString(n phone.Null) string {
	if v := n.String(); v != "NULL" {
		return v
	}
	return ""
}

func toAppResolved(bus tenantbus.Resolved) Tenant {
	app := toAppTenant(bus.Tenant)
	app.Role = bus.Role.String()
	return app
}

// NewTenant is the request model for provisioning a tenant.
type NewTenant struct {
	Name         string            `json:"name" validate:"required"`
	SegmentID    string            `json:"segmentId" validate:"required,uuid"`
	ContactPhone string            `json:"contactPhone"`
	LogoURL      string            `json:"logoUrl"`
	BrandColors  map[string]string `json:"brandColors"`
	Settings     map[string]string `json:"settings"`
}

// Decode implements the web.Decoder interface.
func (app *NewTenant) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewTenant) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewTenant(app NewTenant, ownerID uuid.UUID) (tenantbus.NewTenant, error) {
	nme, err := name.Parse(app.Name)
	if err != nil {
		return tenantbus.NewTenant{}, fmt.Errorf("parse name: %w", err)
	}

	segmentID, err := uuid.Parse(app.SegmentID)
	if err != nil {
		return tenantbus.NewTenant{}, fmt.Errorf("parse segment id: %w", err)
	}

	contactPhone, err := phone.ParseNull(app.ContactPhone)
	if err != nil {
		return tenantbus.NewTenant{}, fmt.Errorf("parse contact phone: %w", err)
	}

	bus := tenantbus.NewTenant{
		OwnerID:      ownerID,
		SegmentID:    segmentID,
		Name:         nme,
		ContactPhone: contactPhone,
		LogoURL:      app.LogoURL,
		BrandColors:  app.BrandColors,
		Settings:     app.Settings,
	}

	return bus, nil
}

// UpdateTenant is the request model for tenant settings updates.
type UpdateTenant struct {
	Name         *string           `json:"name"`
	SegmentID    *string           `json:"segmentId" validate:"omitempty,uuid"`
	ContactPhone *string           `json:"contactPhone"`
	LogoURL      *string           `json:"logoUrl"`
	BrandColors  map[string]string `json:"brandColors"`
	Settings     map[string]string `json:"settings"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateTenant) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateTenant) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateTenant(app UpdateTenant) (tenantbus.UpdateTenant, error) {
	bus := tenantbus.UpdateTenant{
		BrandColors: app.BrandColors,
		Settings:    app.Settings,
	}

	if app.Name != nil {
		nme, err := name.Parse(*app.Name)
		if err != nil {
			return tenantbus.UpdateTenant{}, fmt.Errorf("parse name: %w", err)
		}
		bus.Name = &nme
	}

	if app.SegmentID != nil {
		segmentID, err := uuid.Parse(*app.SegmentID)
		if err != nil {
			return tenantbus.UpdateTenant{}, fmt.Errorf("parse segment id: %w", err)
		}
		bus.SegmentID = &segmentID
	}

	if app.ContactPhone != nil {
		contactPhone, err := phone.ParseNull(*app.ContactPhone)
		if err != nil {
			return tenantbus.UpdateTenant{}, fmt.Errorf("parse contact phone: %w", err)
		}
		bus.ContactPhone = &contactPhone
	}

	bus.LogoURL = app.LogoURL

	return bus, nil
}

// UpdateStatus is the request model for tenant status transitions.
type UpdateStatus struct {
	Status string `json:"status" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateStatus) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateStatus) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusStatus(app UpdateStatus) (tenantstatus.Status, error) {
	return tenantstatus.Parse(app.Status)
}

// SetDomain is the request model for custom domain changes. An empty domain
// clears the custom domain.
type SetDomain struct {
	Domain string `json:"domain" validate:"omitempty,fqdn"`
}

// Decode implements the web.Decoder interface.
func (app *SetDomain) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app SetDomain) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

// VerifyResult is the response model for a domain verification probe.
type VerifyResult struct {
	Domain   string `json:"domain"`
	Verified bool   `json:"verified"`
}

// Encode implements the web.Encoder interface.
func (app VerifyResult) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

// Availability is the response model for a domain availability check.
type Availability struct {
	Domain    string `json:"domain"`
	Available bool   `json:"available"`
}

// Encode implements the web.Encoder interface.
func (app Availability) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}
