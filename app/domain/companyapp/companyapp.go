// Package companyapp maintains the app layer api for the company domain.
package companyapp

import (
	"context"
	"errors"
	"net/http"

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

// newWithTx binds the company core to the request transaction.
func (a *app) newWithTx(ctx context.Context) (*companybus.Core, error) {
	tx, err := mid.GetTran(ctx)
	if err != nil {
		return nil, err
	}

	return a.companyBus.NewWithTx(tx)
}

// register creates a company and signs a token for it.
func (a *app) register(ctx context.Context, r *http.Request) web.Encoder {
	var app NewCompany
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	nc, err := toBusNewCompany(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	companyBus, err := a.newWithTx(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "newwithtx: %s", err)
	}

	cmp, err := companyBus.Create(ctx, nc)
	if err != nil {
		if errors.Is(err, companybus.ErrUniqueCompany) {
			return errs.New(errs.Aborted, companybus.ErrUniqueCompany)
		}
		return errs.Errorf(errs.Internal, "create: username[%s]: %s", nc.AdminUsername, err)
	}

	token, err := a.auth.GenerateToken(cmp)
	if err != nil {
		return errs.Errorf(errs.Internal, "generatetoken: companyID[%d]: %s", cmp.ID, err)
	}

	resp := RegisteredCompany{
		Message: "Company registered successfully",
		Company: ToAppCompany(cmp),
		Token:   token,
	}

	return web.Created(resp)
}

// query returns the active companies.
func (a *app) query(ctx context.Context, r *http.Request) web.Encoder {
	cmps, err := a.companyBus.QueryActive(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	return Companies{Companies: toAppCompanies(cmps)}
}

// update changes the supplied fields of the caller's own company. Any other
// id answers as not found.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	companyID, err := web.ParamInt64(r, "id")
	if err != nil {
		return errs.NewFieldErrors("id", err)
	}

	callerID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "company id missing in context: %s", err)
	}

	if companyID != callerID {
		return errs.New(errs.NotFound, companybus.ErrNotFound)
	}

	var app UpdateCompany
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	uc, err := toBusUpdateCompany(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	cmp, err := a.companyBus.QueryByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, companybus.ErrNotFound) {
			return errs.New(errs.NotFound, companybus.ErrNotFound)
		}
		return errs.Errorf(errs.Internal, "querybyid: companyID[%d]: %s", companyID, err)
	}

	upd, err := a.companyBus.Update(ctx, cmp, uc)
	if err != nil {
		switch {
		case errors.Is(err, companybus.ErrUniqueCompany):
			return errs.New(errs.Aborted, companybus.ErrUniqueCompany)
		case errors.Is(err, companybus.ErrNotFound):
			return errs.New(errs.NotFound, companybus.ErrNotFound)
		}
		return errs.Errorf(errs.Internal, "update: companyID[%d]: %s", companyID, err)
	}

	return CompanyResult{
		Message: "Company updated successfully",
		Company: ToAppCompany(upd),
	}
}
