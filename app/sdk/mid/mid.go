// Package mid contains the set of middleware functions.
package mid

import (
	"context"
	"errors"
	"net/http"

	"github.com/jcpaschoal/kangaroute/app/sdk/auth"
	"github.com/jcpaschoal/kangaroute/business/sdk/sqldb"
	"github.com/jcpaschoal/kangaroute/business/sdk/web"
)

func checkIsError(e web.Encoder) error {
	err, hasError := e.(error)
	if hasError {
		return err
	}

	return nil
}

type httpStatus interface {
	HTTPStatus() int
}

// statusCode reports the status the web package will answer with.
func statusCode(e web.Encoder) int {
	switch v := e.(type) {
	case httpStatus:
		return v.HTTPStatus()
	case error:
		return http.StatusInternalServerError
	}

	if e == nil {
		return http.StatusNoContent
	}

	return http.StatusOK
}

// =============================================================================

type ctxKey int

const (
	claimKey ctxKey = iota + 1
	companyIDKey
	trKey
)

func setClaims(ctx context.Context, claims auth.Claims) context.Context {
	return context.WithValue(ctx, claimKey, claims)
}

// GetClaims returns the claims from the context.
func GetClaims(ctx context.Context) auth.Claims {
	v, ok := ctx.Value(claimKey).(auth.Claims)
	if !ok {
		return auth.Claims{}
	}
	return v
}

func setCompanyID(ctx context.Context, companyID int64) context.Context {
	return context.WithValue(ctx, companyIDKey, companyID)
}

// GetCompanyID returns the id of the authenticated company.
func GetCompanyID(ctx context.Context) (int64, error) {
	v, ok := ctx.Value(companyIDKey).(int64)
	if !ok {
		return 0, errors.New("company id not found in context")
	}

	return v, nil
}

func setTran(ctx context.Context, tx sqldb.CommitRollbacker) context.Context {
	return context.WithValue(ctx, trKey, tx)
}

// GetTran retrieves the value that can manage a transaction.
func GetTran(ctx context.Context) (sqldb.CommitRollbacker, error) {
	v, ok := ctx.Value(trKey).(sqldb.CommitRollbacker)
	if !ok {
		return nil, errors.New("transaction not found in context")
	}

	return v, nil
}
