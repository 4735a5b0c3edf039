package mid

import (
	"context"
	"net/http"

	"github.com/negocio360/platform/app/sdk/errs"
	"github.com/negocio360/platform/business/sdk/web"
	"github.com/negocio360/platform/foundation/logger"
	"github.com/ulule/limiter/v3"
)

// RateLimit throttles requests per client IP using the injected limiter
// store. Single instance deployments use the memory store; a shared store
// makes the limit cluster wide.
func RateLimit(log *logger.Logger, lmt *limiter.Limiter) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			key := lmt.GetIPKey(r)

			lctx, err := lmt.Get(ctx, key)
			if err != nil {
				return errs.New(errs.Internal, err)
			}

			if lctx.Reached {
				log.Info(ctx, "rate limit reached", "key", key)
				return errs.Errorf(errs.ResourceExhausted, "too many requests")
			}

			return next(ctx, r)
		}

		return h
	}

	return m
}
