package app

import (
	"github.com/dmitrymomot/totpwidget/core/server"
)

// Config is the service configuration, read from the environment.
type Config struct {
	Server server.Config
	Widget WidgetConfig

	AppName string `env:"APP_NAME" envDefault:"totpwidget"`
	Env     string `env:"APP_ENV" envDefault:"development"`
	// LogLevel overrides the environment preset when set.
	LogLevel string `env:"LOG_LEVEL"`
}

// WidgetConfig tunes the HTML page.
type WidgetConfig struct {
	MaxRetries  int    `env:"WIDGET_MAX_RETRIES" envDefault:"3"`
	DefaultLang string `env:"WIDGET_DEFAULT_LANG" envDefault:"en"`
}

// DefaultConfig returns the configuration used when no environment is set.
func DefaultConfig() Config {
	return Config{
		Server:  server.DefaultConfig(),
		Widget:  WidgetConfig{MaxRetries: 3, DefaultLang: "en"},
		AppName: "totpwidget",
		Env:     "development",
	}
}

// IsDevelopment reports whether the service runs in the development environment.
func (c Config) IsDevelopment() bool {
	switch c.Env {
	case "production", "prod", "staging", "stage":
		return false
	}
	return true
}
