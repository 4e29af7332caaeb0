package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ContextExtractor pulls an attribute out of a context.
// It reports false when the context carries nothing to log.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

type config struct {
	level       slog.Leveler
	json        bool
	output      io.Writer
	attrs       []slog.Attr
	handlerOpts *slog.HandlerOptions
	extractors  []ContextExtractor
}

// Option configures New.
type Option func(*config)

// New builds a *slog.Logger. Without options it writes text at info level to stdout.
func New(opts ...Option) *slog.Logger {
	cfg := &config{
		level:  slog.LevelInfo,
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	hopts := &slog.HandlerOptions{}
	if cfg.handlerOpts != nil {
		*hopts = *cfg.handlerOpts
	}
	if hopts.Level == nil {
		hopts.Level = cfg.level
	}

	var h slog.Handler
	if cfg.json {
		h = slog.NewJSONHandler(cfg.output, hopts)
	} else {
		h = slog.NewTextHandler(cfg.output, hopts)
	}
	if len(cfg.attrs) > 0 {
		h = h.WithAttrs(cfg.attrs)
	}
	if len(cfg.extractors) > 0 {
		h = &contextHandler{Handler: h, extractors: cfg.extractors}
	}
	return slog.New(h)
}

// WithLevel sets the minimum level.
func WithLevel(level slog.Leveler) Option {
	return func(c *config) {
		if level != nil {
			c.level = level
		}
	}
}

// WithJSONFormatter switches the output to JSON.
func WithJSONFormatter() Option {
	return func(c *config) { c.json = true }
}

// WithTextFormatter switches the output to logfmt-style text.
func WithTextFormatter() Option {
	return func(c *config) { c.json = false }
}

// WithOutput sets the destination writer.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithAttr adds attributes to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *config) { c.attrs = append(c.attrs, attrs...) }
}

// WithHandlerOptions overrides the slog handler options.
// A Level set here wins over WithLevel.
func WithHandlerOptions(opts *slog.HandlerOptions) Option {
	return func(c *config) { c.handlerOpts = opts }
}

// WithContextExtractors adds extractors run for every record logged with a context.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) { c.extractors = append(c.extractors, extractors...) }
}

// WithContextValue logs ctx.Value(key) under name when present.
func WithContextValue(name string, key any) Option {
	return WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
		v := ctx.Value(key)
		if v == nil {
			return slog.Attr{}, false
		}
		return slog.Any(name, v), true
	})
}

// WithDevelopment configures text output at debug level.
func WithDevelopment(service string) Option {
	return func(c *config) {
		c.json = false
		c.level = slog.LevelDebug
		c.attrs = append(c.attrs, slog.String("service", service), slog.String("env", "development"))
	}
}

// WithStaging configures JSON output at info level.
func WithStaging(service string) Option {
	return func(c *config) {
		c.json = true
		c.level = slog.LevelInfo
		c.attrs = append(c.attrs, slog.String("service", service), slog.String("env", "staging"))
	}
}

// WithProduction configures JSON output at info level.
func WithProduction(service string) Option {
	return func(c *config) {
		c.json = true
		c.level = slog.LevelInfo
		c.attrs = append(c.attrs, slog.String("service", service), slog.String("env", "production"))
	}
}

// WithEnvironment picks a preset by name. Unknown names fall back to development.
func WithEnvironment(env, service string) Option {
	switch strings.ToLower(env) {
	case "production", "prod":
		return WithProduction(service)
	case "staging", "stage":
		return WithStaging(service)
	default:
		return WithDevelopment(service)
	}
}

// ParseLevel converts a level name to slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return l
}

// SetAsDefault installs log as the slog default logger.
func SetAsDefault(log *slog.Logger) {
	if log != nil {
		slog.SetDefault(log)
	}
}

// contextHandler decorates a handler with attributes extracted from the record's context.
type contextHandler struct {
	slog.Handler
	extractors []ContextExtractor
}

// Handle adds extracted attributes the record does not already carry.
func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx != nil {
		for _, extract := range h.extractors {
			if attr, ok := extract(ctx); ok && !hasAttr(r, attr.Key) {
				r.AddAttrs(attr)
			}
		}
	}
	return h.Handler.Handle(ctx, r)
}

func hasAttr(r slog.Record, key string) bool {
	found := false
	r.Attrs(func(a slog.Attr) bool {
		found = a.Key == key
		return !found
	})
	return found
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs), extractors: h.extractors}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name), extractors: h.extractors}
}
