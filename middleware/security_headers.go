package middleware

import (
	"maps"
	"net/http"

	"github.com/dmitrymomot/totpwidget/core/handler"
)

// SecurityHeadersConfig configures the security headers middleware.
// Empty fields are not sent.
type SecurityHeadersConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool

	// OnlyHTML limits the headers to responses whose Content-Type is text/html.
	OnlyHTML bool

	ContentTypeOptions        string // X-Content-Type-Options
	FrameOptions              string // X-Frame-Options
	StrictTransportSecurity   string // Strict-Transport-Security
	ContentSecurityPolicy     string // Content-Security-Policy
	ReferrerPolicy            string // Referrer-Policy
	PermissionsPolicy         string // Permissions-Policy
	CrossOriginOpenerPolicy   string // Cross-Origin-Opener-Policy
	CrossOriginResourcePolicy string // Cross-Origin-Resource-Policy

	// CustomHeaders allows adding additional custom security headers
	CustomHeaders map[string]string

	// IsDevelopment drops HSTS so local plain-HTTP runs keep working
	IsDevelopment bool
}

var (
	// StrictSecurity forbids inline code and framing entirely.
	StrictSecurity = SecurityHeadersConfig{
		ContentTypeOptions:        "nosniff",
		FrameOptions:              "DENY",
		StrictTransportSecurity:   "max-age=63072000; includeSubDomains; preload",
		ContentSecurityPolicy:     "default-src 'none'; script-src 'self'; style-src 'self'; img-src 'self'; connect-src 'self'; frame-ancestors 'none'; base-uri 'self'; form-action 'self'",
		ReferrerPolicy:            "no-referrer",
		PermissionsPolicy:         "camera=(), geolocation=(), microphone=(), payment=(), usb=()",
		CrossOriginOpenerPolicy:   "same-origin",
		CrossOriginResourcePolicy: "same-origin",
	}

	// WidgetSecurity fits the single-page code widget: it loads its own
	// script and styles, only talks to its own origin and may write to the
	// clipboard. The page URL carries the secret, so no referrer is sent.
	WidgetSecurity = SecurityHeadersConfig{
		OnlyHTML:                true,
		ContentTypeOptions:      "nosniff",
		FrameOptions:            "DENY",
		StrictTransportSecurity: "max-age=31536000; includeSubDomains",
		ContentSecurityPolicy:   "default-src 'none'; script-src 'self'; style-src 'self'; connect-src 'self'; img-src 'self' data:; frame-ancestors 'none'; base-uri 'none'; form-action 'self'",
		ReferrerPolicy:          "no-referrer",
		PermissionsPolicy:       "camera=(), geolocation=(), microphone=(), clipboard-write=(self)",
		CrossOriginOpenerPolicy: "same-origin",
	}
)

// SecurityHeaders creates a security headers middleware with the widget configuration.
//
//	r.Use(middleware.SecurityHeaders[*router.Context]())
func SecurityHeaders[C handler.Context]() handler.Middleware[C] {
	return SecurityHeadersWithConfig[C](WidgetSecurity)
}

// SecurityHeadersWithConfig creates a security headers middleware with custom configuration.
// Headers are written before the wrapped response renders, so handlers can still override them.
func SecurityHeadersWithConfig[C handler.Context](cfg SecurityHeadersConfig) handler.Middleware[C] {
	if cfg.IsDevelopment {
		cfg.StrictTransportSecurity = ""
	}

	headers := make(map[string]string)
	for name, value := range map[string]string{
		"X-Content-Type-Options":       cfg.ContentTypeOptions,
		"X-Frame-Options":              cfg.FrameOptions,
		"Strict-Transport-Security":    cfg.StrictTransportSecurity,
		"Content-Security-Policy":      cfg.ContentSecurityPolicy,
		"Referrer-Policy":              cfg.ReferrerPolicy,
		"Permissions-Policy":           cfg.PermissionsPolicy,
		"Cross-Origin-Opener-Policy":   cfg.CrossOriginOpenerPolicy,
		"Cross-Origin-Resource-Policy": cfg.CrossOriginResourcePolicy,
	} {
		if value != "" {
			headers[name] = value
		}
	}
	maps.Copy(headers, cfg.CustomHeaders)

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			response := next(ctx)
			if response == nil {
				return nil
			}

			return func(w http.ResponseWriter, r *http.Request) error {
				if !cfg.OnlyHTML {
					for key, value := range headers {
						w.Header().Set(key, value)
					}
					return response(w, r)
				}
				return response(&htmlHeaderWriter{ResponseWriter: w, headers: headers}, r)
			}
		}
	}
}

// htmlHeaderWriter adds headers right before the status line is sent,
// once the response's Content-Type is known.
type htmlHeaderWriter struct {
	http.ResponseWriter
	headers map[string]string
	done    bool
}

func (w *htmlHeaderWriter) WriteHeader(status int) {
	if !w.done {
		w.done = true
		if isHTML(w.Header().Get("Content-Type")) {
			for key, value := range w.headers {
				w.Header().Set(key, value)
			}
		}
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *htmlHeaderWriter) Write(b []byte) (int, error) {
	if !w.done {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *htmlHeaderWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func isHTML(contentType string) bool {
	return len(contentType) >= 9 && contentType[:9] == "text/html"
}
