package slotapp

import (
	"net/http"

	"github.com/jcpaschoal/kangaroute/app/sdk/auth"
	"github.com/jcpaschoal/kangaroute/app/sdk/mid"
	"github.com/jcpaschoal/kangaroute/business/domain/slotbus"
	"github.com/jcpaschoal/kangaroute/business/sdk/web"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth    *auth.Auth
	SlotBus *slotbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const group = "api"

	authen := mid.Authenticate(cfg.Auth)

	api := newApp(cfg.SlotBus)

	app.HandlerFunc(http.MethodPost, group, "/slots", api.create, authen)
	app.HandlerFunc(http.MethodGet, group, "/slots/vehicle/{vehicleId}", api.queryByVehicle, authen)
	app.HandlerFunc(http.MethodGet, group, "/slots/{id}", api.queryByID, authen)
	app.HandlerFunc(http.MethodPut, group, "/slots/{id}", api.update, authen)
	app.HandlerFunc(http.MethodDelete, group, "/slots/{id}", api.delete, authen)
}
