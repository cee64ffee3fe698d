// Package all binds all the routes into the specified app.
package all

import (
	"github.com/jcpaschoal/kangaroute/app/domain/authapp"
	"github.com/jcpaschoal/kangaroute/app/domain/checkapp"
	"github.com/jcpaschoal/kangaroute/app/domain/companyapp"
	"github.com/jcpaschoal/kangaroute/app/domain/slotapp"
	"github.com/jcpaschoal/kangaroute/app/domain/vehicleapp"
	"github.com/jcpaschoal/kangaroute/app/sdk/auth"
	"github.com/jcpaschoal/kangaroute/app/sdk/mux"
	"github.com/jcpaschoal/kangaroute/business/domain/companybus"
	"github.com/jcpaschoal/kangaroute/business/domain/companybus/stores/companycache"
	"github.com/jcpaschoal/kangaroute/business/domain/companybus/stores/companydb"
	"github.com/jcpaschoal/kangaroute/business/domain/slotbus"
	"github.com/jcpaschoal/kangaroute/business/domain/slotbus/stores/slotdb"
	"github.com/jcpaschoal/kangaroute/business/domain/vehiclebus"
	"github.com/jcpaschoal/kangaroute/business/domain/vehiclebus/stores/vehicledb"
	"github.com/jcpaschoal/kangaroute/business/sdk/sqldb"
	"github.com/jcpaschoal/kangaroute/business/sdk/web"
)

// Routes constructs the add value which provides the implementation of
// of RouteAdder for specifying what routes to bind to this instance.
func Routes() add {
	return add{}
}

type add struct{}

// Add implements the RouterAdder interface.
func (add) Add(app *web.App, cfg mux.Config) {

	// Construct the business domain packages we need here so we are using the
	// same instances for the different set of domain apis.
	companyBus := companybus.NewCore(cfg.Log, companycache.NewStore(cfg.Log, companydb.NewStore(cfg.Log, cfg.DB), cfg.CompanyCache))
	vehicleBus := vehiclebus.NewCore(cfg.Log, vehicledb.NewStore(cfg.Log, cfg.DB))
	slotBus := slotbus.NewCore(cfg.Log, vehicleBus, slotdb.NewStore(cfg.Log, cfg.DB))

	authClient := auth.New(auth.Config{
		Log:        cfg.Log,
		CompanyBus: companyBus,
		KeyLookup:  cfg.AuthConfig.KeyLookup,
		Issuer:     cfg.AuthConfig.Issuer,
		ActiveKID:  cfg.AuthConfig.ActiveKID,
	})

	checkapp.Routes(app, checkapp.Config{
		Build: cfg.Build,
		Log:   cfg.Log,
		DB:    cfg.DB,
	})

	authapp.Routes(app, authapp.Config{
		Auth:       authClient,
		CompanyBus: companyBus,
	})

	companyapp.Routes(app, companyapp.Config{
		Log:        cfg.Log,
		Auth:       authClient,
		CompanyBus: companyBus,
		Beginner:   sqldb.NewBeginner(cfg.DB),
	})

	vehicleapp.Routes(app, vehicleapp.Config{
		Auth:       authClient,
		VehicleBus: vehicleBus,
	})

	slotapp.Routes(app, slotapp.Config{
		Auth:    authClient,
		SlotBus: slotBus,
	})
}
