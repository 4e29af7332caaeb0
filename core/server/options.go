package server

import (
	"crypto/tls"
	"log/slog"
	"time"
)

// Option configures a Server in New.
type Option func(*Server)

// WithTLS serves HTTPS with config. See LoadTLSConfig.
func WithTLS(config *tls.Config) Option {
	return func(s *Server) { s.template.TLSConfig = config }
}

// WithLogger routes lifecycle and http.Server error logs to log.
// A nil logger is ignored.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithShutdownTimeout bounds the graceful drain in Stop.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) { s.shutdownTimeout = d }
}

// WithReadTimeout sets http.Server.ReadTimeout.
func WithReadTimeout(d time.Duration) Option {
	return func(s *Server) { s.template.ReadTimeout = d }
}

// WithWriteTimeout sets http.Server.WriteTimeout.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *Server) { s.template.WriteTimeout = d }
}

// WithIdleTimeout sets http.Server.IdleTimeout.
func WithIdleTimeout(d time.Duration) Option {
	return func(s *Server) { s.template.IdleTimeout = d }
}

// WithMaxHeaderBytes sets http.Server.MaxHeaderBytes.
func WithMaxHeaderBytes(n int) Option {
	return func(s *Server) { s.template.MaxHeaderBytes = n }
}
