package web_test

import (
	"crypto/tls"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/totpwidget/core/response"
	"github.com/dmitrymomot/totpwidget/core/router"
	"github.com/dmitrymomot/totpwidget/internal/web"
	"github.com/dmitrymomot/totpwidget/middleware"
	"github.com/dmitrymomot/totpwidget/pkg/totp"
)

func fixedClock(unix int64) func() time.Time {
	return func() time.Time { return time.Unix(unix, 0) }
}

func newRouter(t *testing.T, now int64) router.Router[*router.Context] {
	t.Helper()

	h := web.New(totp.Default(), web.WithClock(fixedClock(now)))
	r := router.New[*router.Context](router.WithErrorHandler(response.ErrorHandler[*router.Context]))
	r.Use(middleware.RequestID[*router.Context]())
	web.Mount(r, h, nil)
	return r
}

func do(r http.Handler, method, target string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func assertNoCache(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, "no-store, no-cache, must-revalidate, proxy-revalidate", w.Header().Get("Cache-Control"))
	assert.Equal(t, "no-cache", w.Header().Get("Pragma"))
	assert.Equal(t, "0", w.Header().Get("Expires"))
}

func TestJSONSuccess(t *testing.T) {
	t.Parallel()

	r := newRouter(t, 59)
	w := do(r, http.MethodGet, "/JBSWY3DPEHPK3PXP?format=json", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assertNoCache(t, w)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	assert.JSONEq(t, `{"token":"996554","remaining":1,"serverTime":59}`, w.Body.String())
}

func TestJSONFieldOrder(t *testing.T) {
	t.Parallel()

	w := do(newRouter(t, 59), http.MethodGet, "/JBSWY3DPEHPK3PXP?format=json", nil)
	assert.Equal(t, `{"token":"996554","remaining":1,"serverTime":59}`, strings.TrimSpace(w.Body.String()))
}

func TestJSONSecretNormalization(t *testing.T) {
	t.Parallel()

	r := newRouter(t, 59)
	tests := []struct {
		name   string
		target string
	}{
		{"lowercase", "/jbswy3dpehpk3pxp?format=json"},
		{"padding", "/JBSWY3DPEHPK3PXP====?format=json"},
		{"escaped spaces", "/JBSW%20Y3DP%20EHPK%203PXP?format=json"},
		{"escaped tab and newline", "/JBSWY3DP%09EHPK3PXP%0A?format=json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := do(r, http.MethodGet, tt.target, nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, "996554", decode(t, w)["token"])
		})
	}
}

func TestJSONRemainingWindow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		now       int64
		remaining float64
	}{
		{60, 30},
		{61, 29},
		{89, 1},
		{1700000003, 17},
	}

	for _, tt := range tests {
		w := do(newRouter(t, tt.now), http.MethodGet, "/JBSWY3DPEHPK3PXP?format=json", nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.InDelta(t, tt.remaining, body["remaining"], 0, "now=%d", tt.now)
		assert.InDelta(t, float64(tt.now), body["serverTime"], 0)
	}

	w := do(newRouter(t, 1700000003), http.MethodGet, "/JBSWY3DPEHPK3PXP?format=json", nil)
	assert.Equal(t, "324550", decode(t, w)["token"])
}

func TestJSONMissingSecret(t *testing.T) {
	t.Parallel()

	r := newRouter(t, 59)
	for _, target := range []string{"/?format=json", "/%20%20?format=json"} {
		w := do(r, http.MethodGet, target, nil)

		require.Equal(t, http.StatusBadRequest, w.Code, target)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assertNoCache(t, w)
		assert.JSONEq(t, `{
			"error": "Missing secret parameter",
			"usage": "http://example.com/YOUR_SECRET_KEY?format=json",
			"example": "http://example.com/JBSWY3DPEHPK3PXP?format=json"
		}`, w.Body.String())
	}
}

func TestJSONMissingSecretHTTPSOrigin(t *testing.T) {
	t.Parallel()

	w := do(newRouter(t, 59), http.MethodGet, "/?format=json", map[string]string{"X-Forwarded-Proto": "https"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "https://example.com/YOUR_SECRET_KEY?format=json", decode(t, w)["usage"])
}

func TestJSONInvalidSecret(t *testing.T) {
	t.Parallel()

	w := do(newRouter(t, 59), http.MethodGet, "/ABC018?format=json", nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assertNoCache(t, w)
	assert.JSONEq(t, `{
		"error": "Invalid secret key format",
		"message": "Invalid Base32 character: '0'. Only A-Z and 2-7 are allowed."
	}`, w.Body.String())
}

func TestHTMLPage(t *testing.T) {
	t.Parallel()

	w := do(newRouter(t, 59), http.MethodGet, "/JBSWY3DPEHPK3PXP", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assertNoCache(t, w)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	body := w.Body.String()
	assert.Contains(t, body, `<html lang="en">`)
	assert.Contains(t, body, ">996554</span>")
	assert.Contains(t, body, `<b id="seconds">1</b>`)
	assert.Contains(t, body, `"serverTime":59`)
}

func TestHTMLLandingPage(t *testing.T) {
	t.Parallel()

	w := do(newRouter(t, 59), http.MethodGet, "/", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `id="code-container" hidden`)
	assert.Contains(t, body, `id="error-message" hidden`)
	assert.Contains(t, body, "http://example.com/YOUR_SECRET_KEY")
}

func TestHTMLInvalidSecret(t *testing.T) {
	t.Parallel()

	w := do(newRouter(t, 59), http.MethodGet, "/ABC018", nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assertNoCache(t, w)
	body := w.Body.String()
	assert.Contains(t, body, "Invalid secret, check the Base32 format")
	assert.Contains(t, body, `id="code-container" hidden`)
	assert.NotContains(t, body, `"code":`)
}

func TestSecretWithoutKeyBytes(t *testing.T) {
	t.Parallel()

	r := newRouter(t, 59)

	for _, secret := range []string{"====", "A", "a%20=", "7======"} {
		t.Run("json "+secret, func(t *testing.T) {
			t.Parallel()

			w := do(r, http.MethodGet, "/"+secret+"?format=json", nil)

			require.Equal(t, http.StatusBadRequest, w.Code)
			assertNoCache(t, w)
			body := decode(t, w)
			assert.Equal(t, "Invalid secret key format", body["error"])
			assert.Contains(t, body["message"], "key is empty")
			assert.NotContains(t, body, "token")
		})

		t.Run("html "+secret, func(t *testing.T) {
			t.Parallel()

			w := do(r, http.MethodGet, "/"+secret, nil)

			require.Equal(t, http.StatusBadRequest, w.Code)
			body := w.Body.String()
			assert.Contains(t, body, "Invalid secret, check the Base32 format")
			assert.Contains(t, body, `id="code-container" hidden`)
		})
	}
}

func TestHTMLLanguage(t *testing.T) {
	t.Parallel()

	r := newRouter(t, 59)

	w := do(r, http.MethodGet, "/JBSWY3DPEHPK3PXP", map[string]string{"Accept-Language": "zh-CN,zh;q=0.9"})
	assert.Contains(t, w.Body.String(), `<html lang="zh-Hans">`)
	assert.Contains(t, w.Body.String(), "剩余")

	w = do(r, http.MethodGet, "/JBSWY3DPEHPK3PXP?lang=en", map[string]string{"Accept-Language": "zh-CN"})
	assert.Contains(t, w.Body.String(), `<html lang="en">`)
}

func TestHead(t *testing.T) {
	t.Parallel()

	w := do(newRouter(t, 59), http.MethodHead, "/JBSWY3DPEHPK3PXP?format=json", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMethodNotAllowed(t *testing.T) {
	t.Parallel()

	r := newRouter(t, 59)
	for _, target := range []string{"/JBSWY3DPEHPK3PXP", "/-/healthz", "/"} {
		w := do(r, http.MethodPost, target, nil)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code, target)
		assert.Equal(t, "GET, HEAD", w.Header().Get("Allow"))
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	}
}

func TestHealthProbes(t *testing.T) {
	t.Parallel()

	r := newRouter(t, 59)

	w := do(r, http.MethodGet, web.LivenessPath, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ALIVE", w.Body.String())

	w = do(r, http.MethodGet, web.ReadinessPath, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "READY", w.Body.String())
}

func TestAssets(t *testing.T) {
	t.Parallel()

	r := newRouter(t, 59)

	w := do(r, http.MethodGet, "/-/assets/widget.js", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "widget-state")

	w = do(r, http.MethodGet, "/-/assets/missing.js", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSecret(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/"+url.PathEscape(" JB SW\tY3DP\n")+"?format=json", nil)
	assert.Equal(t, "JBSWY3DP", web.Secret(req))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, web.Secret(req))
}

func TestOrigin(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "http://otp.example.com/x", nil)
	assert.Equal(t, "http://otp.example.com", web.Origin(req))

	req.Header.Set("X-Forwarded-Proto", "https, http")
	assert.Equal(t, "https://otp.example.com", web.Origin(req))

	req = httptest.NewRequest(http.MethodGet, "https://otp.example.com/x", nil)
	req.TLS = &tls.ConnectionState{}
	assert.Equal(t, "https://otp.example.com", web.Origin(req))
}

func TestRedactPath(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"/JBSWY3DPEHPK3PXP": "/JB***",
		"/JB":               "/***",
		"/":                 "/",
		"/-/healthz":        "/-/healthz",
		"/密钥密钥":             "/密钥***",
	}
	for in, want := range tests {
		assert.Equal(t, want, web.RedactPath(in), in)
	}
}

func TestMissingSecretError(t *testing.T) {
	t.Parallel()

	err := &web.MissingSecretError{Origin: "https://otp.example.com"}
	assert.Equal(t, "Missing secret parameter", err.Error())
	assert.Equal(t, "https://otp.example.com/YOUR_SECRET_KEY?format=json", err.Usage())
	assert.Equal(t, "https://otp.example.com/JBSWY3DPEHPK3PXP?format=json", err.Example())
}
