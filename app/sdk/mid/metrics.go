package mid

import (
	"context"
	"net/http"
	"time"

	"github.com/jcpaschoal/kangaroute/app/sdk/metrics"
	"github.com/jcpaschoal/kangaroute/business/sdk/web"
)

// Metrics updates program counters.
func Metrics() web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			now := time.Now()

			resp := next(ctx, r)

			metrics.AddRequest(ctx, r.Method, r.Pattern, statusCode(resp), time.Since(now))

			if checkIsError(resp) != nil {
				metrics.AddErrors(ctx)
			}

			return resp
		}

		return h
	}

	return m
}
