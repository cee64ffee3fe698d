package checkapp

import (
	"context"
	"net/http"

	"github.com/jcpaschoal/kangaroute/business/sdk/sqldb"
	"github.com/jcpaschoal/kangaroute/business/sdk/web"
	"github.com/jcpaschoal/kangaroute/foundation/logger"
	"github.com/jmoiron/sqlx"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Build string
	Log   *logger.Logger
	DB    *sqlx.DB
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const group = "api"

	statusCheck := func(ctx context.Context) error {
		return sqldb.StatusCheck(ctx, cfg.DB)
	}

	api := newApp(cfg.Build, cfg.Log, statusCheck)

	app.HandlerFuncNoMid(http.MethodGet, group, "/health", api.health)
	app.HandlerFuncNoMid(http.MethodGet, group, "/readiness", api.readiness)
}
