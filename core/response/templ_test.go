package response_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/totpwidget/core/response"
)

func TestTempl(t *testing.T) {
	t.Parallel()

	component := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>"+templ.EscapeString("<b>")+"</p>")
		return err
	})

	t.Run("ok", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		require.NoError(t, response.Templ(component)(w, req))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, "<p>&lt;b&gt;</p>", w.Body.String())
	})

	t.Run("with status", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		require.NoError(t, response.TemplWithStatus(component, http.StatusBadRequest)(w, req))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("render error is wrapped", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		failing := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error { return boom })

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		err := response.Templ(failing)(w, req)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("nil component", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, response.Templ(nil))
	})
}
