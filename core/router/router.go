package router

import (
	"net/http"

	"github.com/dmitrymomot/totpwidget/core/handler"
)

// Router registers handlers on an http.ServeMux. Middleware added with Use
// wraps every registered route; With and Group scope middleware to the routes
// registered through them. Unmatched requests go straight to the error
// handler, so register a "/{path...}" catch-all when middleware must see
// them.
type Router[C handler.Context] interface {
	http.Handler
	Routes

	Get(pattern string, h handler.HandlerFunc[C])
	Post(pattern string, h handler.HandlerFunc[C])
	Put(pattern string, h handler.HandlerFunc[C])
	Delete(pattern string, h handler.HandlerFunc[C])
	Patch(pattern string, h handler.HandlerFunc[C])
	Head(pattern string, h handler.HandlerFunc[C])
	Options(pattern string, h handler.HandlerFunc[C])

	// Handle matches every method; Method matches only the listed ones.
	Handle(pattern string, h handler.HandlerFunc[C])
	Method(pattern string, h handler.HandlerFunc[C], methods ...string)

	Use(middlewares ...handler.Middleware[C])
	With(middlewares ...handler.Middleware[C]) Router[C]
	Group(fn func(r Router[C])) Router[C]
}

// Routes lists registered routes in registration order.
type Routes interface {
	Routes() []Route
}

// Route is one registration. Method is empty for Handle.
type Route struct {
	Method  string
	Pattern string
}

// New creates a Router.
//
// Patterns use net/http syntax without the method prefix: "/users/{id}",
// "/files/{path...}", "/{$}". Precedence follows http.ServeMux, so a literal
// route such as "/-/healthz" wins over a catch-all "/{secret...}".
func New[C handler.Context](opts ...Option[C]) Router[C] {
	return newMux[C](opts...)
}
