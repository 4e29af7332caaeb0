package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/dmitrymomot/totpwidget/core/config"
	"github.com/dmitrymomot/totpwidget/core/i18n"
	"github.com/dmitrymomot/totpwidget/core/logger"
	"github.com/dmitrymomot/totpwidget/core/response"
	"github.com/dmitrymomot/totpwidget/core/router"
	"github.com/dmitrymomot/totpwidget/core/server"
	"github.com/dmitrymomot/totpwidget/internal/web"
	"github.com/dmitrymomot/totpwidget/internal/web/widget"
	"github.com/dmitrymomot/totpwidget/middleware"
	"github.com/dmitrymomot/totpwidget/pkg/totp"
)

// App wires configuration, logging, the code engine and the HTTP stack.
type App struct {
	config Config
	logger *slog.Logger
	engine *totp.Engine
	router router.Router[*router.Context]
	server *server.Server
	clock  func() time.Time
}

// Option configures an App.
type Option func(*App) error

// New builds an App from cfg.
func New(cfg Config, opts ...Option) (*App, error) {
	app := &App{
		config: cfg,
		engine: totp.Default(),
		clock:  time.Now,
	}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.logger == nil {
		app.logger = NewLogger(cfg, os.Stdout)
	}

	if app.router == nil {
		r, err := app.newRouter()
		if err != nil {
			return nil, err
		}
		app.router = r
	}

	if app.server == nil {
		s, err := server.NewFromConfig(cfg.Server, server.WithLogger(app.logger))
		if err != nil {
			return nil, err
		}
		app.server = s
	}

	return app, nil
}

// NewFromEnv loads Config from the environment and .env, then calls New.
func NewFromEnv(opts ...Option) (*App, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return New(cfg, opts...)
}

// WithLogger replaces the logger built from the configuration.
func WithLogger(log *slog.Logger) Option {
	return func(app *App) error {
		if log == nil {
			return errors.New("logger cannot be nil")
		}
		app.logger = log
		return nil
	}
}

// WithServer replaces the server built from the configuration.
func WithServer(s *server.Server) Option {
	return func(app *App) error {
		if s == nil {
			return errors.New("server cannot be nil")
		}
		app.server = s
		return nil
	}
}

// WithClock pins the time codes are computed for.
func WithClock(now func() time.Time) Option {
	return func(app *App) error {
		if now == nil {
			return errors.New("clock cannot be nil")
		}
		app.clock = now
		return nil
	}
}

// NewLogger builds the service logger for cfg, writing to w.
// Records logged with a request context carry its request ID.
func NewLogger(cfg Config, w io.Writer) *slog.Logger {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.Env, cfg.AppName),
		logger.WithOutput(w),
		logger.WithContextValue("request_id", middleware.RequestIDContextKey()),
	}
	if cfg.LogLevel != "" {
		opts = append(opts, logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))
	}
	return logger.New(opts...)
}

func (app *App) newRouter() (router.Router[*router.Context], error) {
	i18nLog := app.logger.With(logger.Component("i18n"))
	tr, err := widget.Translations(app.config.Widget.DefaultLang,
		i18n.WithMissingKeyHandler(func(lang, namespace, key string) {
			i18nLog.Warn("missing translation", slog.String("lang", lang), slog.String("namespace", namespace), slog.String("key", key))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}

	h := web.New(app.engine,
		web.WithClock(app.clock),
		web.WithLogger(app.logger.With(logger.Component("web"))),
		web.WithTranslations(tr),
		web.WithMaxRetries(app.config.Widget.MaxRetries),
	)

	security := middleware.WidgetSecurity
	security.IsDevelopment = app.config.IsDevelopment()

	r := router.New[*router.Context](
		router.WithErrorHandler(response.ErrorHandler[*router.Context]),
		router.WithLogger[*router.Context](app.logger.With(logger.Component("router"))),
	)
	r.Use(
		middleware.RequestID[*router.Context](),
		middleware.ClientIP[*router.Context](),
		middleware.LoggingWithConfig[*router.Context](middleware.LoggingConfig{
			Logger:     app.logger,
			RedactPath: web.RedactPath,
		}),
		middleware.SecurityHeadersWithConfig[*router.Context](security),
	)
	web.Mount(r, h, app.logger.With(logger.Component("health")))

	return r, nil
}

// Handler returns the HTTP handler serving every route.
func (app *App) Handler() http.Handler {
	return app.router
}

// Logger returns the application logger.
func (app *App) Logger() *slog.Logger {
	return app.logger
}

// Server returns the HTTP server.
func (app *App) Server() *server.Server {
	return app.server
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (app *App) Run(ctx context.Context) error {
	app.logger.InfoContext(ctx, "starting service",
		logger.Addr(app.config.Server.Addr),
		slog.Int64("time_step", app.engine.TimeStep()),
		slog.Int("digits", app.engine.Digits()),
	)
	return app.server.Run(ctx, app.router)()
}
