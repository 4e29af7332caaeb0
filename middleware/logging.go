package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/totpwidget/core/handler"
	"github.com/dmitrymomot/totpwidget/core/logger"
)

// LoggingConfig configures the request/response logging middleware.
type LoggingConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool

	// Logger is the slog logger to use (default: slog.Default())
	Logger *slog.Logger

	// LogLevel for successful requests (default: slog.LevelInfo)
	LogLevel slog.Level

	// RedactPath rewrites the URL path before it is logged.
	// Use it when paths carry credentials.
	RedactPath func(path string) string

	// SlowRequestThreshold logs slow requests at warning level (default: 5s)
	SlowRequestThreshold time.Duration

	// Component name for structured logging
	Component string
}

// Logging creates a request logging middleware with default configuration.
func Logging[C handler.Context]() handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{})
}

// LoggingWithLogger creates a logging middleware with a custom logger.
func LoggingWithLogger[C handler.Context](log *slog.Logger) handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{
		Logger: log,
	})
}

// LoggingWithConfig creates a logging middleware that writes one record per
// request once the response has been rendered. 5xx responses are logged at
// error level, 4xx and slow requests at warn.
func LoggingWithConfig[C handler.Context](cfg LoggingConfig) handler.Middleware[C] {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.RedactPath == nil {
		cfg.RedactPath = func(p string) string { return p }
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}
	if cfg.Component == "" {
		cfg.Component = "http"
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			start := time.Now()
			response := next(ctx)

			return func(w http.ResponseWriter, r *http.Request) error {
				wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

				var err error
				if response != nil {
					err = response(wrapped, r)
				}
				duration := time.Since(start)

				// A failed response is rendered by the router's error handler after us.
				status := wrapped.statusCode
				if err != nil && !wrapped.headerWritten {
					status = statusFromError(err)
				}

				requestID, _ := GetRequestID(r.Context())
				ip, _ := GetClientIP(r.Context())

				attrs := []slog.Attr{
					logger.Component(cfg.Component),
					logger.Event("request"),
					logger.Method(r.Method),
					logger.Path(cfg.RedactPath(r.URL.Path)),
					logger.StatusCode(status),
					logger.BytesOut(int64(wrapped.size)),
					logger.Latency(duration),
					logger.RequestID(requestID),
				}
				if ip != "" {
					attrs = append(attrs, logger.ClientIP(ip))
				}
				if ua := r.UserAgent(); ua != "" {
					attrs = append(attrs, logger.UserAgent(ua))
				}

				level := cfg.LogLevel
				switch {
				case status >= http.StatusInternalServerError:
					level = slog.LevelError
					attrs = append(attrs, logger.Error(err))
				case status >= http.StatusBadRequest:
					level = slog.LevelWarn
				case duration > cfg.SlowRequestThreshold:
					level = slog.LevelWarn
					attrs = append(attrs, slog.Bool("slow_request", true))
				}

				cfg.Logger.LogAttrs(r.Context(), level, "HTTP request completed", attrs...)
				return err
			}
		}
	}
}

func statusFromError(err error) int {
	var sc interface{ StatusCode() int }
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return http.StatusInternalServerError
}

// responseWriter wraps http.ResponseWriter to capture response details
type responseWriter struct {
	http.ResponseWriter
	statusCode    int
	size          int
	headerWritten bool
}

// WriteHeader captures the status code
func (rw *responseWriter) WriteHeader(statusCode int) {
	if rw.headerWritten {
		return
	}
	rw.statusCode = statusCode
	rw.headerWritten = true
	rw.ResponseWriter.WriteHeader(statusCode)
}

// Write captures the response size
func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.headerWritten {
		rw.WriteHeader(http.StatusOK)
	}
	size, err := rw.ResponseWriter.Write(b)
	rw.size += size
	return size, err
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
