// Package authapp maintains the web based api for company sessions.
package authapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/jcpaschoal/kangaroute/app/domain/companyapp"
	"github.com/jcpaschoal/kangaroute/app/sdk/auth"
	"github.com/jcpaschoal/kangaroute/app/sdk/errs"
	"github.com/jcpaschoal/kangaroute/app/sdk/mid"
	"github.com/jcpaschoal/kangaroute/business/domain/companybus"
	"github.com/jcpaschoal/kangaroute/business/sdk/web"
)

type app struct {
	auth       *auth.Auth
	companyBus *companybus.Core
}

func newApp(auth *auth.Auth, companyBus *companybus.Core) *app {
	return &app{
		auth:       auth,
		companyBus: companyBus,
	}
}

// login checks the admin credentials and issues a token.
func (a *app) login(ctx context.Context, r *http.Request) web.Encoder {
	var app Login
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	cmp, err := a.auth.Login(ctx, app.Username, app.Password)
	if err != nil {
		if errors.Is(err, companybus.ErrAuthenticationFailure) {
			return errs.New(errs.Unauthenticated, companybus.ErrAuthenticationFailure)
		}
		return errs.Errorf(errs.Internal, "login: username[%s]: %s", app.Username, err)
	}

	token, err := a.auth.GenerateToken(cmp)
	if err != nil {
		return errs.Errorf(errs.Internal, "generatetoken: companyID[%d]: %s", cmp.ID, err)
	}

	return Session{
		Company: companyapp.ToAppCompany(cmp),
		Token:   token,
	}
}

// verify returns the profile of the company behind the token.
func (a *app) verify(ctx context.Context, r *http.Request) web.Encoder {
	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "company id missing in context: %s", err)
	}

	cmp, err := a.companyBus.QueryByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, companybus.ErrNotFound) {
			return errs.New(errs.Unauthenticated, err)
		}
		return errs.Errorf(errs.Internal, "querybyid: companyID[%d]: %s", companyID, err)
	}

	return Verified{Company: companyapp.ToAppCompany(cmp)}
}
