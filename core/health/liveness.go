package health

import (
	"github.com/dmitrymomot/totpwidget/core/handler"
	"github.com/dmitrymomot/totpwidget/core/response"
)

// Liveness indicates if the service process is running.
// Always returns "ALIVE" with 200 OK. No dependency checks.
//
// Example:
//
//	r.Get("/-/healthz", health.Liveness[*router.Context])
func Liveness[C handler.Context](C) handler.Response {
	return response.NoStore(response.String("ALIVE"))
}
