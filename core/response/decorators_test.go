package response_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/totpwidget/core/response"
)

func TestWithHeaders(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	resp := response.WithHeaders(response.String("ok"), map[string]string{"X-Custom": "value"})
	require.NoError(t, resp(w, req))
	assert.Equal(t, "value", w.Header().Get("X-Custom"))
	assert.Equal(t, "ok", w.Body.String())

	assert.Nil(t, response.WithHeaders(nil, map[string]string{"X": "y"}))
}

func TestNoStore(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	require.NoError(t, response.NoStore(response.String("ok"))(w, req))
	assert.Equal(t, "no-store, no-cache, must-revalidate, proxy-revalidate", w.Header().Get("Cache-Control"))
	assert.Equal(t, "no-cache", w.Header().Get("Pragma"))
	assert.Equal(t, "0", w.Header().Get("Expires"))
}

func TestWithCache(t *testing.T) {
	t.Parallel()

	t.Run("positive max age", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		require.NoError(t, response.WithCache(response.String("ok"), time.Hour)(w, req))
		assert.Equal(t, "public, max-age=3600", w.Header().Get("Cache-Control"))
		expires, err := http.ParseTime(w.Header().Get("Expires"))
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)
	})

	t.Run("zero disables caching", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		require.NoError(t, response.WithCache(response.String("ok"), 0)(w, req))
		assert.Equal(t, response.NoCacheControl, w.Header().Get("Cache-Control"))
		assert.Equal(t, "0", w.Header().Get("Expires"))
	})
}

func TestWithCORS(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)

	w := httptest.NewRecorder()
	require.NoError(t, response.WithCORS(response.String("ok"), "*")(w, req))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	require.NoError(t, response.WithCORS(response.String("ok"), "")(w, req))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
