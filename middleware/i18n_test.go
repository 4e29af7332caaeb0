package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/totpwidget/core/handler"
	"github.com/dmitrymomot/totpwidget/core/i18n"
	"github.com/dmitrymomot/totpwidget/core/response"
	"github.com/dmitrymomot/totpwidget/core/router"
	"github.com/dmitrymomot/totpwidget/middleware"
)

func newTranslations(t *testing.T) *i18n.I18n {
	t.Helper()
	tr, err := i18n.New(
		i18n.WithDefaultLanguage("en"),
		i18n.WithTranslations("en", "widget", map[string]any{"copy": "Copy"}),
		i18n.WithTranslations("zh-Hans", "widget", map[string]any{"copy": "复制"}),
	)
	require.NoError(t, err)
	return tr
}

func TestI18nMiddleware(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Use(middleware.I18n[*router.Context](newTranslations(t), "widget"))
	r.Get("/t", func(ctx *router.Context) handler.Response {
		tr, found := middleware.GetTranslator(ctx)
		require.True(t, found)
		return response.String(tr.Language() + ":" + tr.T("copy"))
	})

	tests := []struct {
		name   string
		target string
		accept string
		want   string
	}{
		{"default", "/t", "", "en:Copy"},
		{"accept language", "/t", "zh-CN,zh;q=0.9,en;q=0.5", "zh-Hans:复制"},
		{"query wins", "/t?lang=en", "zh-CN", "en:Copy"},
		{"unsupported falls back", "/t", "fr-FR", "en:Copy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			w := serve(r, req)
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}

func TestI18nMiddlewareRequiresInstance(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		middleware.I18n[*router.Context](nil, "widget")
	})
	assert.Panics(t, func() {
		middleware.I18n[*router.Context](newTranslations(t), "")
	})
}
