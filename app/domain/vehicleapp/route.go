package vehicleapp

import (
	"net/http"

	"github.com/jcpaschoal/kangaroute/app/sdk/auth"
	"github.com/jcpaschoal/kangaroute/app/sdk/mid"
	"github.com/jcpaschoal/kangaroute/business/domain/vehiclebus"
	"github.com/jcpaschoal/kangaroute/business/sdk/web"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth       *auth.Auth
	VehicleBus *vehiclebus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const group = "api"

	authen := mid.Authenticate(cfg.Auth)

	api := newApp(cfg.VehicleBus)

	app.HandlerFunc(http.MethodPost, group, "/vehicles", api.create, authen)
	app.HandlerFunc(http.MethodGet, group, "/vehicles", api.query, authen)
	app.HandlerFunc(http.MethodGet, group, "/vehicles/{id}", api.queryByID, authen)
	app.HandlerFunc(http.MethodPut, group, "/vehicles/{id}", api.update, authen)
	app.HandlerFunc(http.MethodDelete, group, "/vehicles/{id}", api.delete, authen)
}
