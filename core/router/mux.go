package router

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/dmitrymomot/totpwidget/core/handler"
)

var knownMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
	http.MethodConnect,
	http.MethodTrace,
}

// mux is the private implementation of Router interface.
// Route matching is delegated to http.ServeMux; mux owns context creation,
// middleware, response rendering and error handling.
type mux[C handler.Context] struct {
	serveMux     *http.ServeMux
	routes       *[]Route
	middlewares  []handler.Middleware[C]
	errorHandler handler.ErrorHandler[C]
	newContext   func(http.ResponseWriter, *http.Request) C
	logger       *slog.Logger
	parent       *mux[C] // set for inline groups
	hasRoutes    bool
}

func newMux[C handler.Context](opts ...Option[C]) *mux[C] {
	m := &mux[C]{
		serveMux:     http.NewServeMux(),
		routes:       &[]Route{},
		errorHandler: defaultErrorHandler[C],
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)), // No-op logger by default
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.newContext == nil {
		m.newContext = func(w http.ResponseWriter, r *http.Request) C {
			// Only the default *Context works without a factory.
			var zero C
			if _, ok := any(zero).(*Context); ok {
				return any(newContext(w, r)).(C)
			}
			panic(ErrNoContextFactory)
		}
	}

	return m
}

// ServeHTTP implements http.Handler interface.
func (m *mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ww := newResponseWriter(w)

	if _, pattern := m.serveMux.Handler(r); pattern == "" {
		m.serveUnmatched(ww, r)
		return
	}
	m.serveMux.ServeHTTP(ww, r)
}

func (m *mux[C]) serveUnmatched(w *responseWriter, r *http.Request) {
	ctx := m.newContext(w, r)

	if allowed := m.allowedMethods(r); len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
		m.errorHandler(ctx, ErrMethodNotAllowed)
		return
	}
	m.errorHandler(ctx, ErrNotFound)
}

// allowedMethods lists the methods that would match r's path.
func (m *mux[C]) allowedMethods(r *http.Request) []string {
	var allowed []string
	for _, method := range knownMethods {
		if method == r.Method {
			continue
		}
		probe := r.Clone(r.Context())
		probe.Method = method
		if _, pattern := m.serveMux.Handler(probe); pattern != "" {
			allowed = append(allowed, method)
		}
	}
	return allowed
}

// serve runs the root middleware chain and the endpoint, then renders the response.
func (m *mux[C]) serve(w http.ResponseWriter, r *http.Request, h handler.HandlerFunc[C]) {
	ww := newResponseWriter(w)
	ctx := m.newContext(ww, r)

	defer func() {
		if p := recover(); p != nil {
			if p == http.ErrAbortHandler {
				panic(p)
			}
			panicErr := &panicError{value: p, stack: debug.Stack()}

			if ww.Written() {
				// Can't send error response, just log the panic
				m.logger.Error("panic after response written",
					"value", panicErr.value,
					"stack", string(panicErr.stack),
					"method", r.Method,
					"status", ww.Status(),
				)
				return
			}
			m.errorHandler(ctx, panicErr)
		}
	}()

	resp := handler.Chain(h, m.middlewares...)(ctx)
	if resp == nil {
		m.errorHandler(ctx, ErrNilResponse)
		return
	}

	if err := resp(ww, ctx.Request()); err != nil {
		if ww.Written() {
			m.logger.Error("response failed after headers were written",
				"error", err,
				"method", r.Method,
				"status", ww.Status(),
			)
			return
		}
		m.errorHandler(ctx, err)
	}
}

// Get registers a handler for GET requests. It also answers HEAD.
func (m *mux[C]) Get(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodGet, pattern, h)
}

// Post registers a handler for POST requests.
func (m *mux[C]) Post(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPost, pattern, h)
}

// Put registers a handler for PUT requests.
func (m *mux[C]) Put(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPut, pattern, h)
}

// Delete registers a handler for DELETE requests.
func (m *mux[C]) Delete(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodDelete, pattern, h)
}

// Patch registers a handler for PATCH requests.
func (m *mux[C]) Patch(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPatch, pattern, h)
}

// Head registers a handler for HEAD requests.
func (m *mux[C]) Head(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodHead, pattern, h)
}

// Options registers a handler for OPTIONS requests.
func (m *mux[C]) Options(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodOptions, pattern, h)
}

// Handle registers a handler for all HTTP methods.
func (m *mux[C]) Handle(pattern string, h handler.HandlerFunc[C]) {
	m.handle("", pattern, h)
}

// Method registers a handler for one or more specific HTTP methods.
func (m *mux[C]) Method(pattern string, h handler.HandlerFunc[C], methods ...string) {
	if len(methods) == 0 {
		panic(fmt.Errorf("%w: no methods provided", ErrInvalidMethod))
	}

	seen := make(map[string]bool, len(methods))
	for _, method := range methods {
		method = strings.ToUpper(method)
		if !isKnownMethod(method) {
			panic(fmt.Errorf("%w: %s", ErrInvalidMethod, method))
		}
		if seen[method] {
			continue
		}
		seen[method] = true
		m.handle(method, pattern, h)
	}
}

// Use appends middleware to the router.
func (m *mux[C]) Use(middlewares ...handler.Middleware[C]) {
	if m.hasRoutes {
		panic("router: all middlewares must be defined before routes on a mux")
	}
	m.middlewares = append(m.middlewares, middlewares...)
}

// With creates a new inline router with additional middleware.
func (m *mux[C]) With(middlewares ...handler.Middleware[C]) Router[C] {
	var mws []handler.Middleware[C]
	if m.parent != nil {
		// Inline routers carry their parent's route-level middleware.
		mws = append(mws, m.middlewares...)
	}
	mws = append(mws, middlewares...)

	return &mux[C]{
		serveMux:     m.serveMux,
		routes:       m.routes,
		middlewares:  mws,
		errorHandler: m.errorHandler,
		newContext:   m.newContext,
		logger:       m.logger,
		parent:       m.root(),
	}
}

// Group creates a new inline router for grouping routes.
func (m *mux[C]) Group(fn func(r Router[C])) Router[C] {
	im := m.With()
	if fn != nil {
		fn(im)
	}
	return im
}

// Routes returns all registered routes in registration order.
func (m *mux[C]) Routes() []Route {
	out := make([]Route, len(*m.routes))
	copy(out, *m.routes)
	return out
}

func (m *mux[C]) root() *mux[C] {
	if m.parent != nil {
		return m.parent
	}
	return m
}

// handle registers a handler with the underlying ServeMux.
func (m *mux[C]) handle(method, pattern string, h handler.HandlerFunc[C]) {
	if len(pattern) == 0 || pattern[0] != '/' {
		panic(fmt.Errorf("%w: '%s'", ErrInvalidPattern, pattern))
	}

	if m.parent != nil {
		h = handler.Chain(h, m.middlewares...)
	}

	root := m.root()
	root.hasRoutes = true

	muxPattern := pattern
	if method != "" {
		muxPattern = method + " " + pattern
	}
	root.serveMux.Handle(muxPattern, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		root.serve(w, r, h)
	}))

	*root.routes = append(*root.routes, Route{Method: method, Pattern: pattern})
}

func isKnownMethod(method string) bool {
	for _, m := range knownMethods {
		if m == method {
			return true
		}
	}
	return false
}
