package memberapp

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"time"

	"github.com/negocio360/platform/app/sdk/errs"
	"github.com/negocio360/platform/business/domain/memberbus"
	"github.com/negocio360/platform/business/types/role"
)

// Member is the response model for tenant memberships.
type Member struct {
	ID           string          `json:"id"`
	TenantID     string          `json:"tenantId"`
	UserID       string          `json:"userId"`
	Email        string          `json:"email"`
	Role         string          `json:"role"`
	Capabilities map[string]bool `json:"capabilities,omitempty"`
	Status       string          `json:"status"`
	InvitedBy    string          `json:"invitedBy"`
	JoinedAt     string          `json:"joinedAt"`
	CreatedAt    string          `json:"createdAt"`
}

// Encode implements the web.Encoder interface.
func (app Member) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppMember(bus memberbus.Member) Member {
	var caps map[string]bool
	if len(bus.Capabilities) > 0 {
		caps = make(map[string]bool, len(bus.Capabilities))
		for c, granted := range bus.Capabilities {
			caps[c.String()] = granted
		}
	}

	return Member{
		ID:           bus.ID.String(),
		TenantID:     bus.TenantID.String(),
		UserID:       bus.UserID.String(),
		Email:        bus.Email.Address,
		Role:         bus.Role.String(),
		Capabilities: caps,
		Status:       bus.Status.String(),
		InvitedBy:    bus.InvitedBy.String(),
		JoinedAt:     bus.JoinedAt.Format(time.RFC3339),
		CreatedAt:    bus.CreatedAt.Format(time.RFC3339),
	}
}

func toAppMembers(bus []memberbus.Member) []Member {
	app := make([]Member, len(bus))
	for i, m := range bus {
		app[i] = toAppMember(m)
	}
	return app
}

// NewInvite is the request model for inviting a principal.
type NewInvite struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *NewInvite) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewInvite) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewInvite(app NewInvite) (mail.Address, role.Role, error) {
	addr, err := mail.ParseAddress(app.Email)
	if err != nil {
		return mail.Address{}, role.Role{}, fmt.Errorf("parse email: %w", err)
	}

	r, err := role.Parse(app.Role)
	if err != nil {
		return mail.Address{}, role.Role{}, fmt.Errorf("parse role: %w", err)
	}

	return *addr, r, nil
}

// UpdateCapabilities is the request model for replacing a member's explicit
// capability overrides. Capabilities absent from the map fall back to the
// role defaults.
type UpdateCapabilities struct {
	Capabilities map[string]bool `json:"capabilities" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateCapabilities) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateCapabilities) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusCapabilitySet(app UpdateCapabilities) (memberbus.CapabilitySet, error) {
	caps := make(memberbus.CapabilitySet, len(app.Capabilities))

	for v, granted := range app.Capabilities {
		c, err := memberbus.ParseCapability(v)
		if err != nil {
			return nil, fmt.Errorf("parse capability: %w", err)
		}
		caps[c] = granted
	}

	return caps, nil
}

// UpdateRole is the request model for changing a member's role.
type UpdateRole struct {
	Role string `json:"role" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateRole) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateRole) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}
