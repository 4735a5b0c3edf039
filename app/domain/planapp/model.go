package planapp

import (
	"encoding/json"

	"github.com/negocio360/platform/business/domain/planbus"
)

// Segment is the response model for business segments.
type Segment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func toAppSegment(bus planbus.Segment) Segment {
	return Segment{
		ID:   bus.ID.String(),
		Name: bus.Name,
		Slug: bus.Slug,
	}
}

// Segments is the response model for the segment collection.
type Segments []Segment

// Encode implements the web.Encoder interface.
func (app Segments) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppSegments(bus []planbus.Segment) Segments {
	app := make(Segments, len(bus))
	for i, sgm := range bus {
		app[i] = toAppSegment(sgm)
	}
	return app
}

// Plan is the response model for subscription plans.
type Plan struct {
	ID          string `json:"id"`
	SegmentID   string `json:"segmentId"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	PriceCents  int    `json:"priceCents"`
	TrialDays   int    `json:"trialDays"`
}

func toAppPlan(bus planbus.Plan) Plan {
	return Plan{
		ID:          bus.ID.String(),
		SegmentID:   bus.SegmentID.String(),
		Name:        bus.Name,
		Slug:        bus.Slug,
		Description: bus.Description,
		PriceCents:  bus.PriceCents,
		TrialDays:   bus.TrialDays,
	}
}

// Plans is the response model for the plan collection.
type Plans []Plan

// Encode implements the web.Encoder interface.
func (app Plans) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppPlans(bus []planbus.Plan) Plans {
	app := make(Plans, len(bus))
	for i, pln := range bus {
		app[i] = toAppPlan(pln)
	}
	return app
}
