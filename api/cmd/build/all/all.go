// Package all binds all the routes into the specified app.
package all

import (
	"time"

	"github.com/negocio360/platform/app/domain/authapp"
	"github.com/negocio360/platform/app/domain/checkapp"
	"github.com/negocio360/platform/app/domain/memberapp"
	"github.com/negocio360/platform/app/domain/planapp"
	"github.com/negocio360/platform/app/domain/subscriptionapp"
	"github.com/negocio360/platform/app/domain/tenantapp"
	"github.com/negocio360/platform/app/domain/userapp"
	"github.com/negocio360/platform/app/sdk/auth"
	"github.com/negocio360/platform/app/sdk/mux"
	"github.com/negocio360/platform/business/domain/domainbus"
	"github.com/negocio360/platform/business/domain/memberbus"
	"github.com/negocio360/platform/business/domain/memberbus/stores/memberdb"
	"github.com/negocio360/platform/business/domain/planbus"
	"github.com/negocio360/platform/business/domain/planbus/stores/plandb"
	"github.com/negocio360/platform/business/domain/subscriptionbus"
	"github.com/negocio360/platform/business/domain/subscriptionbus/stores/subscriptiondb"
	"github.com/negocio360/platform/business/domain/tenantbus"
	"github.com/negocio360/platform/business/domain/tenantbus/stores/tenantdb"
	"github.com/negocio360/platform/business/domain/userbus"
	"github.com/negocio360/platform/business/domain/userbus/stores/usercache"
	"github.com/negocio360/platform/business/domain/userbus/stores/userdb"
	"github.com/negocio360/platform/business/sdk/sqldb"
	"github.com/negocio360/platform/business/sdk/web"
)

// Routes constructs the add value to provide the implementation of
// RouteAdder for specifying what routes to bind to this instance.
func Routes() add {
	return add{}
}

type add struct{}

// Add implements the RouterAdder interface.
func (add) Add(app *web.App, cfg mux.Config) {
	userBus := userbus.NewCore(cfg.Log, usercache.NewStore(cfg.Log, userdb.NewStore(cfg.Log, cfg.DB), time.Minute*5))
	memberBus := memberbus.NewCore(cfg.Log, memberdb.NewStore(cfg.Log, cfg.DB), userBus)

	tenantStore := tenantdb.NewStore(cfg.Log, cfg.DB)
	tenantBus := tenantbus.NewCore(cfg.Log, tenantStore, memberBus, cfg.PlatformHost)

	planBus := planbus.NewCore(cfg.Log, plandb.NewStore(cfg.Log, cfg.DB))
	subscriptionBus := subscriptionbus.NewCore(cfg.Log, subscriptiondb.NewStore(cfg.Log, cfg.DB))
	domainBus := domainbus.NewCore(cfg.Log, tenantStore)

	ath := auth.New(auth.Config{
		Log:       cfg.Log,
		UserBus:   userBus,
		KeyLookup: cfg.AuthConfig.KeyLookup,
		Issuer:    cfg.AuthConfig.Issuer,
	})

	checkapp.Routes(app, checkapp.Config{
		Build: cfg.Build,
		Log:   cfg.Log,
		DB:    cfg.DB,
	})

	authapp.Routes(app, authapp.Config{
		Log:       cfg.Log,
		Auth:      ath,
		TenantBus: tenantBus,
		Limiter:   cfg.Limiter,
		ActiveKID: cfg.AuthConfig.ActiveKID,
	})

	userapp.Routes(app, userapp.Config{
		Auth:    ath,
		UserBus: userBus,
	})

	tenantapp.Routes(app, tenantapp.Config{
		Log:             cfg.Log,
		DB:              sqldb.NewBeginner(cfg.DB),
		Auth:            ath,
		TenantBus:       tenantBus,
		SubscriptionBus: subscriptionBus,
		DomainBus:       domainBus,
	})

	memberapp.Routes(app, memberapp.Config{
		Auth:      ath,
		TenantBus: tenantBus,
		MemberBus: memberBus,
	})

	planapp.Routes(app, planapp.Config{
		PlanBus: planBus,
	})

	subscriptionapp.Routes(app, subscriptionapp.Config{
		Auth:            ath,
		TenantBus:       tenantBus,
		SubscriptionBus: subscriptionBus,
		PlanBus:         planBus,
	})
}
