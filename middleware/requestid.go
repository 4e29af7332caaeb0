package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmitrymomot/totpwidget/core/handler"
)

// DefaultRequestIDHeader carries the request ID in both directions.
const DefaultRequestIDHeader = "X-Request-ID"

// maxRequestIDLength caps IDs accepted from clients.
const maxRequestIDLength = 128

type requestIDContextKey struct{}

// RequestIDConfig configures RequestIDWithConfig.
type RequestIDConfig struct {
	Skip func(ctx handler.Context) bool
	// Generator makes new IDs. Defaults to UUID v4.
	Generator func() string
	// HeaderName defaults to DefaultRequestIDHeader.
	HeaderName string
	// UseExisting keeps a well-formed ID sent by the client instead of
	// generating one.
	UseExisting bool
}

// RequestID tags every request with a fresh UUID, stored in the context and
// echoed in the X-Request-ID response header.
func RequestID[C handler.Context]() handler.Middleware[C] {
	return RequestIDWithConfig[C](RequestIDConfig{})
}

// RequestIDWithConfig is RequestID with cfg. The header is set before the
// handler runs, so error and panic responses carry it too.
func RequestIDWithConfig[C handler.Context](cfg RequestIDConfig) handler.Middleware[C] {
	if cfg.HeaderName == "" {
		cfg.HeaderName = DefaultRequestIDHeader
	}
	if cfg.Generator == nil {
		cfg.Generator = uuid.NewString
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			id := ""
			if cfg.UseExisting {
				id = ctx.Request().Header.Get(cfg.HeaderName)
				if !validRequestID(id) {
					id = ""
				}
			}
			if id == "" {
				id = cfg.Generator()
			}

			ctx.SetValue(requestIDContextKey{}, id)
			ctx.ResponseWriter().Header().Set(cfg.HeaderName, id)
			return next(ctx)
		}
	}
}

// validRequestID accepts short printable ASCII without spaces.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] <= ' ' || id[i] > '~' {
			return false
		}
	}
	return true
}

// GetRequestID returns the ID stored by RequestID.
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDContextKey{}).(string)
	return id, ok
}

// RequestIDContextKey is the context key of the request ID, for
// logger.WithContextValue.
func RequestIDContextKey() any {
	return requestIDContextKey{}
}
