// Package checkapp maintains the app layer api for the check domain.
package checkapp

import (
	"context"
	"net/http"
	"time"

	"github.com/jcpaschoal/kangaroute/app/sdk/errs"
	"github.com/jcpaschoal/kangaroute/business/sdk/web"
	"github.com/jcpaschoal/kangaroute/foundation/logger"
)

type app struct {
	build       string
	log         *logger.Logger
	statusCheck func(ctx context.Context) error
}

func newApp(build string, log *logger.Logger, statusCheck func(ctx context.Context) error) *app {
	return &app{
		build:       build,
		log:         log,
		statusCheck: statusCheck,
	}
}

// health reports the process is up. It never touches the database.
func (a *app) health(ctx context.Context, r *http.Request) web.Encoder {
	return Info{
		Status:  "OK",
		Message: "Kangaroute API is running",
		Build:   a.build,
	}
}

// readiness checks if the database is ready and if not will return a 500
// status.
func (a *app) readiness(ctx context.Context, r *http.Request) web.Encoder {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	if err := a.statusCheck(ctx); err != nil {
		a.log.Info(ctx, "readiness failure", "ERROR", err)
		return errs.Errorf(errs.Internal, "database not ready")
	}

	return Info{
		Status:  "OK",
		Message: "database ready",
		Build:   a.build,
	}
}
