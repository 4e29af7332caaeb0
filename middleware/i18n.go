package middleware

import (
	"context"

	"github.com/dmitrymomot/totpwidget/core/handler"
	"github.com/dmitrymomot/totpwidget/core/i18n"
)

// i18nTranslatorContextKey is used as a key for storing i18n translator in request context.
type i18nTranslatorContextKey struct{}

// I18nConfig configures the i18n middleware.
type I18nConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool
	// I18n is the i18n instance to use for translations (required)
	I18n *i18n.I18n
	// Namespace is the translation namespace to use (required)
	Namespace string
	// QueryParam names the query parameter that overrides negotiation (default: "lang")
	QueryParam string
}

// I18n creates an i18n middleware with default configuration.
// The language comes from the ?lang= query parameter, then Accept-Language,
// then the instance's default language.
func I18n[C handler.Context](i18nInstance *i18n.I18n, namespace string) handler.Middleware[C] {
	return I18nWithConfig[C](I18nConfig{
		I18n:      i18nInstance,
		Namespace: namespace,
	})
}

// I18nWithConfig creates an i18n middleware that stores a Translator in the request context.
func I18nWithConfig[C handler.Context](cfg I18nConfig) handler.Middleware[C] {
	if cfg.I18n == nil {
		panic("i18n middleware: i18n instance is required")
	}
	if cfg.Namespace == "" {
		panic("i18n middleware: namespace is required")
	}
	if cfg.QueryParam == "" {
		cfg.QueryParam = "lang"
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			r := ctx.Request()
			lang := cfg.I18n.Match(
				r.URL.Query().Get(cfg.QueryParam),
				r.Header.Get("Accept-Language"),
			)

			ctx.SetValue(i18nTranslatorContextKey{}, i18n.NewTranslator(cfg.I18n, lang, cfg.Namespace))

			return next(ctx)
		}
	}
}

// GetTranslator retrieves the i18n translator from the context.
// Works with any context.Context, not just handler.Context.
func GetTranslator(ctx context.Context) (*i18n.Translator, bool) {
	translator, ok := ctx.Value(i18nTranslatorContextKey{}).(*i18n.Translator)
	return translator, ok
}
