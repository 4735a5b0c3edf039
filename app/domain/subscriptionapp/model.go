package subscriptionapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/negocio360/platform/app/sdk/errs"
	"github.com/negocio360/platform/business/domain/subscriptionbus"
)

// Subscription is the response model for subscriptions.
type Subscription struct {
	ID          string `json:"id"`
	TenantID    string `json:"tenantId"`
	PlanID      string `json:"planId"`
	PlanSlug    string `json:"planSlug"`
	Status      string `json:"status"`
	TrialEndsAt string `json:"trialEndsAt,omitempty"`
	CancelledAt string `json:"cancelledAt,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

// Encode implements the web.Encoder interface.
func (app Subscription) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppSubscription(bus subscriptionbus.Subscription) Subscription {
	app := Subscription{
		ID:        bus.ID.String(),
		TenantID:  bus.TenantID.String(),
		PlanID:    bus.PlanID.String(),
		PlanSlug:  bus.PlanSlug,
		Status:    bus.Status.String(),
		CreatedAt: bus.CreatedAt.Format(time.RFC3339),
	}

	if !bus.TrialEndsAt.IsZero() {
		app.TrialEndsAt = bus.TrialEndsAt.Format(time.RFC3339)
	}

	if !bus.CancelledAt.IsZero() {
		app.CancelledAt = bus.CancelledAt.Format(time.RFC3339)
	}

	return app
}

// NewSubscription is the request model for checkout.
type NewSubscription struct {
	PlanID       string `json:"planId" validate:"required,uuid"`
	Confirmation string `json:"confirmation"`
}

// Decode implements the web.Decoder interface.
func (app *NewSubscription) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewSubscription) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}
