package companyapp

import (
	"net/http"

	"github.com/jcpaschoal/kangaroute/app/sdk/auth"
	"github.com/jcpaschoal/kangaroute/app/sdk/mid"
	"github.com/jcpaschoal/kangaroute/business/domain/companybus"
	"github.com/jcpaschoal/kangaroute/business/sdk/sqldb"
	"github.com/jcpaschoal/kangaroute/business/sdk/web"
	"github.com/jcpaschoal/kangaroute/foundation/logger"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log        *logger.Logger
	Auth       *auth.Auth
	CompanyBus *companybus.Core
	Beginner   sqldb.Beginner
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const group = "api"

	authen := mid.Authenticate(cfg.Auth)
	transaction := mid.BeginCommitRollback(cfg.Log, cfg.Beginner)

	api := newApp(cfg.Auth, cfg.CompanyBus)

	app.HandlerFunc(http.MethodPost, group, "/companies", api.register, transaction)
	app.HandlerFunc(http.MethodGet, group, "/companies", api.query, authen)
	app.HandlerFunc(http.MethodPut, group, "/companies/{id}", api.update, authen)
}
