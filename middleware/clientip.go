package middleware

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/totpwidget/core/handler"
	"github.com/dmitrymomot/totpwidget/pkg/clientip"
)

// clientIPContextKey is used as a key for storing client IP in request context.
type clientIPContextKey struct{}

// ClientIPConfig configures the client IP extraction middleware.
type ClientIPConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool
	// HeaderName specifies the response header name for the client IP (default: "X-Client-IP")
	HeaderName string
	// StoreInHeader determines whether to include the IP in response headers
	StoreInHeader bool
}

// ClientIP creates a client IP extraction middleware that stores the IP in the request context.
func ClientIP[C handler.Context]() handler.Middleware[C] {
	return ClientIPWithConfig[C](ClientIPConfig{})
}

// ClientIPWithConfig creates a client IP extraction middleware with custom configuration.
func ClientIPWithConfig[C handler.Context](cfg ClientIPConfig) handler.Middleware[C] {
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-Client-IP"
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			ip := clientip.GetIP(ctx.Request())
			ctx.SetValue(clientIPContextKey{}, ip)

			resp := next(ctx)
			if !cfg.StoreInHeader {
				return resp
			}

			return func(w http.ResponseWriter, r *http.Request) error {
				w.Header().Set(cfg.HeaderName, ip)
				return resp(w, r)
			}
		}
	}
}

// GetClientIP retrieves the client IP address from the context.
func GetClientIP(ctx context.Context) (string, bool) {
	ip, ok := ctx.Value(clientIPContextKey{}).(string)
	return ip, ok
}
