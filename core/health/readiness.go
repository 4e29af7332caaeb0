package health

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/totpwidget/core/handler"
	"github.com/dmitrymomot/totpwidget/core/logger"
	"github.com/dmitrymomot/totpwidget/core/response"
)

// Readiness runs every check and returns "READY" if all pass,
// 503 Service Unavailable if any fail.
//
// Example:
//
//	r.Get("/-/readyz", health.Readiness[*router.Context](log, engineSelfTest))
func Readiness[C handler.Context](log *slog.Logger, fn ...func(context.Context) error) handler.HandlerFunc[C] {
	return func(ctx C) handler.Response {
		for _, f := range fn {
			if err := f(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed", logger.Error(err))
				return response.Error(response.ErrServiceUnavailable)
			}
		}

		return response.NoStore(response.String("READY"))
	}
}
