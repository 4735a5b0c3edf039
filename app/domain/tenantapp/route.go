package tenantapp

import (
	"net/http"

	"github.com/negocio360/platform/app/sdk/auth"
	"github.com/negocio360/platform/app/sdk/mid"
	"github.com/negocio360/platform/business/domain/domainbus"
	"github.com/negocio360/platform/business/domain/subscriptionbus"
	"github.com/negocio360/platform/business/domain/tenantbus"
	"github.com/negocio360/platform/business/sdk/sqldb"
	"github.com/negocio360/platform/business/sdk/web"
	"github.com/negocio360/platform/business/types/role"
	"github.com/negocio360/platform/foundation/logger"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log             *logger.Logger
	DB              sqldb.Beginner
	Auth            *auth.Auth
	TenantBus       *tenantbus.Core
	SubscriptionBus *subscriptionbus.Core
	DomainBus       *domainbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	resolve := mid.ResolveTenant(cfg.TenantBus)
	transaction := mid.BeginCommitRollback(cfg.Log, cfg.DB)
	ruleAdmin := mid.AuthorizeMinRole(role.Admin)
	ruleOwner := mid.AuthorizeMinRole(role.Owner)

	api := newApp(cfg.TenantBus, cfg.SubscriptionBus, cfg.DomainBus)

	app.HandlerFunc(http.MethodPost, version, "/tenants", api.provision, authen, transaction)
	app.HandlerFunc(http.MethodGet, version, "/tenants/current", api.current, authen, resolve)
	app.HandlerFunc(http.MethodPut, version, "/tenants/{tenant_id}", api.update, authen, resolve, ruleAdmin)
	app.HandlerFunc(http.MethodPut, version, "/tenants/{tenant_id}/status", api.updateStatus, authen, resolve, ruleOwner)
	app.HandlerFunc(http.MethodPut, version, "/tenants/{tenant_id}/domain", api.setDomain, authen, resolve, ruleAdmin)
	app.HandlerFunc(http.MethodPost, version, "/tenants/{tenant_id}/domain/verify", api.verifyDomain, authen, resolve, ruleAdmin)
	app.HandlerFunc(http.MethodGet, version, "/domains/availability", api.availability)
}
