package authapp

import (
	"net/http"

	"github.com/jcpaschoal/kangaroute/app/sdk/auth"
	"github.com/jcpaschoal/kangaroute/app/sdk/mid"
	"github.com/jcpaschoal/kangaroute/business/domain/companybus"
	"github.com/jcpaschoal/kangaroute/business/sdk/web"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth       *auth.Auth
	CompanyBus *companybus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const group = "api"

	api := newApp(cfg.Auth, cfg.CompanyBus)

	app.HandlerFunc(http.MethodPost, group, "/auth/login", api.login)
	app.HandlerFunc(http.MethodGet, group, "/auth/verify", api.verify, mid.Authenticate(cfg.Auth))
}
