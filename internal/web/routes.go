package web

import (
	"log/slog"

	"github.com/dmitrymomot/totpwidget/core/handler"
	"github.com/dmitrymomot/totpwidget/core/health"
	"github.com/dmitrymomot/totpwidget/core/response"
	"github.com/dmitrymomot/totpwidget/core/router"
	"github.com/dmitrymomot/totpwidget/core/static"
	"github.com/dmitrymomot/totpwidget/internal/web/widget"
	"github.com/dmitrymomot/totpwidget/middleware"
)

// Service paths. "-" is outside the Base32 alphabet, so no secret collides with them.
const (
	LivenessPath  = "/-/healthz"
	ReadinessPath = "/-/readyz"
)

// Mount registers the service routes on r:
//
//	GET /-/healthz          liveness
//	GET /-/readyz           engine self test
//	GET /-/assets/{file}    widget stylesheet and script
//	GET /{secret...}        code as JSON or widget page
//
// Any other method gets 405 with Allow: GET, HEAD. GET routes also answer HEAD.
func Mount[C handler.Context](r router.Router[C], h *Handler, log *slog.Logger) {
	if log == nil {
		log = h.log
	}

	r.Get(LivenessPath, health.Liveness[C])
	r.Get(ReadinessPath, health.Readiness[C](log, h.SelfTest))

	r.Get(h.assetsPath+"/{file}", static.FS[C](widget.Assets,
		static.WithSubFS("assets"),
		static.WithStripPrefix(h.assetsPath),
	))

	r.With(middleware.I18n[C](h.translations, widget.Namespace)).
		Get("/{secret...}", func(ctx C) handler.Response {
			return h.Code(ctx)
		})

	r.Handle("/{path...}", func(ctx C) handler.Response {
		return response.WithHeaders(response.Error(response.ErrMethodNotAllowed), map[string]string{
			"Allow": "GET, HEAD",
		})
	})
}
