package checkapp

import (
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/negocio360/platform/business/sdk/web"
	"github.com/negocio360/platform/foundation/logger"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Build string
	Log   *logger.Logger
	DB    *sqlx.DB
}

// Routes adds specific routes for this group. These routes bypass the
// application middleware so probes stay out of the traces and logs.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	api := newApp(cfg.Build, cfg.Log, cfg.DB)

	app.HandlerFuncNoMiddleware(http.MethodGet, version, "/liveness", api.liveness)
	app.HandlerFuncNoMiddleware(http.MethodGet, version, "/readiness", api.readiness)
}
