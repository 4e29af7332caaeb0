package server

import (
	"fmt"
	"time"
)

// Config is the environment-backed server configuration.
type Config struct {
	Addr string `env:"SERVER_ADDR" envDefault:":8080"`

	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	MaxHeaderBytes  int           `env:"SERVER_MAX_HEADER_BYTES" envDefault:"1048576"`

	// HTTPS is enabled only when both files are set.
	TLSCertFile string `env:"SERVER_TLS_CERT_FILE"`
	TLSKeyFile  string `env:"SERVER_TLS_KEY_FILE"`
}

// DefaultConfig mirrors the envDefault tags.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		ReadTimeout:     DefaultReadTimeout,
		WriteTimeout:    DefaultWriteTimeout,
		IdleTimeout:     DefaultIdleTimeout,
		ShutdownTimeout: DefaultShutdownTimeout,
		MaxHeaderBytes:  DefaultMaxHeaderBytes,
	}
}

// TLSEnabled reports whether both certificate and key files are configured.
func (c Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

// NewFromConfig builds a Server from cfg. Zero durations and sizes keep the
// package defaults; opts are applied last and win over cfg.
func NewFromConfig(cfg Config, opts ...Option) (*Server, error) {
	if cfg.Addr == "" {
		return nil, ErrMissingAddress
	}

	var fromConfig []Option
	for _, d := range []struct {
		v   time.Duration
		opt func(time.Duration) Option
	}{
		{cfg.ReadTimeout, WithReadTimeout},
		{cfg.WriteTimeout, WithWriteTimeout},
		{cfg.IdleTimeout, WithIdleTimeout},
		{cfg.ShutdownTimeout, WithShutdownTimeout},
	} {
		if d.v > 0 {
			fromConfig = append(fromConfig, d.opt(d.v))
		}
	}
	if cfg.MaxHeaderBytes > 0 {
		fromConfig = append(fromConfig, WithMaxHeaderBytes(cfg.MaxHeaderBytes))
	}

	if cfg.TLSEnabled() {
		tlsConfig, err := LoadTLSConfig(cfg.TLSCertFile, cfg.TLSKeyFile)
		if err != nil {
			return nil, fmt.Errorf("server: tls %s/%s: %w", cfg.TLSCertFile, cfg.TLSKeyFile, err)
		}
		fromConfig = append(fromConfig, WithTLS(tlsConfig))
	}

	return New(cfg.Addr, append(fromConfig, opts...)...), nil
}
