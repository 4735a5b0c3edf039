package memberapp

import (
	"net/http"

	"github.com/negocio360/platform/app/sdk/auth"
	"github.com/negocio360/platform/app/sdk/mid"
	"github.com/negocio360/platform/business/domain/memberbus"
	"github.com/negocio360/platform/business/domain/tenantbus"
	"github.com/negocio360/platform/business/sdk/web"
	"github.com/negocio360/platform/business/types/role"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth      *auth.Auth
	TenantBus *tenantbus.Core
	MemberBus *memberbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	resolve := mid.ResolveTenant(cfg.TenantBus)
	actor := mid.LoadMember(cfg.MemberBus)
	ruleManager := mid.AuthorizeMinRole(role.Manager)

	api := newApp(cfg.MemberBus)

	app.HandlerFunc(http.MethodGet, version, "/tenants/{tenant_id}/members", api.query, authen, resolve, ruleManager)
	app.HandlerFunc(http.MethodPost, version, "/tenants/{tenant_id}/members", api.invite, authen, resolve, actor)
	app.HandlerFunc(http.MethodPut, version, "/members/{member_id}/role", api.updateRole, authen, resolve, actor)
	app.HandlerFunc(http.MethodPut, version, "/members/{member_id}/capabilities", api.updateCapabilities, authen, resolve, actor)
	app.HandlerFunc(http.MethodDelete, version, "/members/{member_id}", api.remove, authen, resolve, actor)
}
