package subscriptionapp

import (
	"net/http"

	"github.com/negocio360/platform/app/sdk/auth"
	"github.com/negocio360/platform/app/sdk/mid"
	"github.com/negocio360/platform/business/domain/planbus"
	"github.com/negocio360/platform/business/domain/subscriptionbus"
	"github.com/negocio360/platform/business/domain/tenantbus"
	"github.com/negocio360/platform/business/sdk/web"
	"github.com/negocio360/platform/business/types/role"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth            *auth.Auth
	TenantBus       *tenantbus.Core
	SubscriptionBus *subscriptionbus.Core
	PlanBus         *planbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	resolve := mid.ResolveTenant(cfg.TenantBus)
	ruleOwner := mid.AuthorizeMinRole(role.Owner)

	api := newApp(cfg.SubscriptionBus, cfg.PlanBus)

	app.HandlerFunc(http.MethodGet, version, "/subscriptions/current", api.queryCurrent, authen, resolve)
	app.HandlerFunc(http.MethodPost, version, "/subscriptions", api.create, authen, resolve, ruleOwner)
	app.HandlerFunc(http.MethodDelete, version, "/subscriptions/{subscription_id}", api.cancel, authen, resolve, ruleOwner)
}
