package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/totpwidget/internal/app"
)

func newApp(t *testing.T, opts ...app.Option) *app.App {
	t.Helper()

	cfg := app.DefaultConfig()
	cfg.Server.Addr = "127.0.0.1:0"

	opts = append([]app.Option{
		app.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		app.WithClock(func() time.Time { return time.Unix(59, 0) }),
	}, opts...)

	a, err := app.New(cfg, opts...)
	require.NoError(t, err)
	return a
}

func TestAppHandlerJSON(t *testing.T) {
	t.Parallel()

	a := newApp(t)

	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/JBSWY3DPEHPK3PXP?format=json", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"token":"996554","remaining":1,"serverTime":59}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Empty(t, w.Header().Get("Content-Security-Policy"), "security headers are for the page only")
}

func TestAppHandlerHTML(t *testing.T) {
	t.Parallel()

	a := newApp(t)

	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/JBSWY3DPEHPK3PXP", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "996554")
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "no-referrer", w.Header().Get("Referrer-Policy"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"), "development omits HSTS")
}

func TestAppRequestLogRedactsSecret(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	a := newApp(t, app.WithLogger(slog.New(slog.NewJSONHandler(&buf, nil))))

	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/JBSWY3DPEHPK3PXP?format=json", nil))
	require.Equal(t, http.StatusOK, w.Code)

	assert.NotContains(t, buf.String(), "JBSWY3DPEHPK3PXP")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec))
	assert.Equal(t, "/JB***", rec["path"])
	assert.Equal(t, w.Header().Get("X-Request-ID"), rec["request_id"])
}

func TestAppRun(t *testing.T) {
	t.Parallel()

	a := newApp(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	require.Eventually(t, func() bool { return a.Server().Addr() != nil }, 2*time.Second, 10*time.Millisecond)

	resp, err := http.Get("http://" + a.Server().Addr().String() + "/-/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ALIVE", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}

func TestAppInvalidLanguage(t *testing.T) {
	t.Parallel()

	cfg := app.DefaultConfig()
	cfg.Widget.DefaultLang = "xx"

	_, err := app.New(cfg, app.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.Error(t, err)
}

func TestConfigIsDevelopment(t *testing.T) {
	t.Parallel()

	cfg := app.DefaultConfig()
	assert.True(t, cfg.IsDevelopment())

	cfg.Env = "production"
	assert.False(t, cfg.IsDevelopment())
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_ADDR", "127.0.0.1:0")
	t.Setenv("WIDGET_MAX_RETRIES", "5")
	t.Setenv("WIDGET_DEFAULT_LANG", "zh-Hans")

	a, err := app.NewFromEnv(app.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, w.Body.String(), `<html lang="zh-Hans">`)
	assert.Contains(t, w.Body.String(), `"maxRetries":5`)
	assert.NotEmpty(t, w.Header().Get("Strict-Transport-Security"))
}
