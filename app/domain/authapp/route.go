package authapp

import (
	"net/http"

	"github.com/negocio360/platform/app/sdk/auth"
	"github.com/negocio360/platform/app/sdk/mid"
	"github.com/negocio360/platform/business/domain/tenantbus"
	"github.com/negocio360/platform/business/sdk/web"
	"github.com/negocio360/platform/foundation/logger"
	"github.com/ulule/limiter/v3"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log       *logger.Logger
	Auth      *auth.Auth
	TenantBus *tenantbus.Core
	Limiter   *limiter.Limiter
	ActiveKID string
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	ratelimit := mid.RateLimit(cfg.Log, cfg.Limiter)

	api := newApp(cfg.Auth, cfg.TenantBus, cfg.ActiveKID)

	app.HandlerFunc(http.MethodPost, version, "/auth/login", api.login, ratelimit)
}
