package planapp

import (
	"net/http"

	"github.com/negocio360/platform/business/domain/planbus"
	"github.com/negocio360/platform/business/sdk/web"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	PlanBus *planbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	api := newApp(cfg.PlanBus)

	app.HandlerFunc(http.MethodGet, version, "/segments", api.querySegments)
	app.HandlerFunc(http.MethodGet, version, "/segments/{segment_id}/plans", api.queryPlans)
}
