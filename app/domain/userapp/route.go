package userapp

import (
	"net/http"

	"github.com/negocio360/platform/app/sdk/auth"
	"github.com/negocio360/platform/app/sdk/mid"
	"github.com/negocio360/platform/business/domain/userbus"
	"github.com/negocio360/platform/business/sdk/web"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth    *auth.Auth
	UserBus *userbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)

	api := newApp(cfg.UserBus)

	app.HandlerFunc(http.MethodPost, version, "/users", api.register)
	app.HandlerFunc(http.MethodGet, version, "/users/me", api.me, authen)
}
