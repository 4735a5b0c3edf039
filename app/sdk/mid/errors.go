package mid

import (
	"context"
	"net/http"

	"github.com/negocio360/platform/app/sdk/errs"
	"github.com/negocio360/platform/app/sdk/metrics"
	"github.com/negocio360/platform/business/sdk/web"
	"github.com/negocio360/platform/foundation/logger"
)

// Errors handles errors coming out of the call chain. The middleware detects
// normal application errors which are used to respond to the client in a
// uniform way. Unexpected errors (status >= 500) are logged.
func Errors(log *logger.Logger) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			resp := next(ctx, r)
			err := checkIsError(resp)
			if err == nil {
				return resp
			}

			_ = metrics.AddErrors(ctx)

			var appErr *errs.Error

			if !errs.IsError(err) {
				appErr = errs.Errorf(errs.Internal, "Internal Server Error")
			} else {
				appErr = errs.GetError(err)
			}

			log.Error(ctx, "message", "ERROR", appErr.Message, "FILE", appErr.FileName, "FUNC", appErr.FuncName)

			if appErr.Code == errs.InternalOnlyLog {
				appErr = errs.Errorf(errs.Internal, "Internal Server Error")
			}

			return appErr
		}

		return h
	}

	return m
}
