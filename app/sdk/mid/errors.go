package mid

import (
	"context"
	"net/http"
	"path"

	"github.com/jcpaschoal/kangaroute/app/sdk/errs"
	"github.com/jcpaschoal/kangaroute/business/sdk/web"
	"github.com/jcpaschoal/kangaroute/foundation/logger"
)

// Errors handles errors coming out of the call chain. Errors that are not
// *errs.Error, and internal errors, reach the client as a generic message.
func Errors(log *logger.Logger) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			resp := next(ctx, r)
			err := checkIsError(resp)
			if err == nil {
				return resp
			}

			appErr := errs.GetError(err)
			if appErr == nil {
				appErr = errs.Errorf(errs.Internal, "%s", err)
			}

			log.Error(ctx, "handled error during request",
				"err", err,
				"source_err_file", path.Base(appErr.FileName),
				"source_err_func", path.Base(appErr.FuncName))

			switch appErr.Code {
			case errs.Internal, errs.InternalOnlyLog:
				appErr = errs.Errorf(errs.Internal, "Internal Server Error")
			}

			return appErr
		}

		return h
	}

	return m
}
