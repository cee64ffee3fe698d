package mid

import (
	"context"
	"errors"
	"net/http"

	"github.com/jcpaschoal/kangaroute/app/sdk/auth"
	"github.com/jcpaschoal/kangaroute/app/sdk/errs"
	"github.com/jcpaschoal/kangaroute/business/sdk/web"
)

// Authenticate validates the JWT in the Authorization header and binds the
// company it names to the request.
func Authenticate(a *auth.Auth) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			authStr := r.Header.Get("authorization")
			if authStr == "" {
				return errs.New(errs.Unauthenticated, errors.New("missing authorization header"))
			}

			claims, err := a.Authenticate(ctx, authStr)
			if err != nil {
				if errors.Is(err, auth.ErrCompanyLookup) {
					return errs.New(errs.Internal, err)
				}
				return errs.New(errs.Unauthenticated, err)
			}

			ctx = setCompanyID(ctx, claims.CompanyID)
			ctx = setClaims(ctx, claims)

			return next(ctx, r)
		}

		return h
	}

	return m
}
