// Package router provides a generic HTTP router with middleware support,
// context management and centralized error handling. Route matching is
// delegated to net/http's ServeMux, so patterns, wildcards and precedence
// follow the standard library rules.
//
// # Basic Usage
//
//	r := router.New[*router.Context]()
//
//	r.Get("/-/healthz", health.Liveness[*router.Context])
//	r.Get("/{secret...}", showCode)
//
//	http.ListenAndServe(":8080", r)
//
// A GET route also answers HEAD requests.
//
// # Path Parameters
//
//	func showUser(ctx *router.Context) handler.Response {
//		id := ctx.Param("id")
//		return response.JSON(map[string]string{"id": id})
//	}
//
// # Middleware
//
// Middleware added with Use or WithMiddleware wraps every matched route.
// With and Group create inline routers whose extra middleware only wraps
// routes registered on them:
//
//	r.Use(middleware.RequestID[*router.Context]())
//	r.With(requireJSON).Post("/api/items", createItem)
//
// # Error Handling
//
// Errors returned by a Response, recovered panics and routing failures
// (ErrNotFound, ErrMethodNotAllowed) are passed to the error handler set
// with WithErrorHandler. Panics are wrapped in a PanicError.
//
// # Custom Contexts
//
// Any type implementing handler.Context can be used with a factory:
//
//	r := router.New[*AppContext](
//		router.WithContextFactory(func(w http.ResponseWriter, r *http.Request) *AppContext {
//			return &AppContext{Context: router.NewContext(w, r)}
//		}),
//	)
package router
