// Package handler defines the request-processing contracts shared by the
// router, the response constructors and the middleware.
//
//	// Response renders an HTTP response.
//	type Response func(w http.ResponseWriter, r *http.Request) error
//
//	// HandlerFunc handles a request with a typed context.
//	type HandlerFunc[C Context] func(ctx C) Response
//
//	// Middleware wraps a HandlerFunc.
//	type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]
//
// Handlers build a Response value instead of writing to the connection
// directly. The router renders it afterwards and routes any rendering error
// to its ErrorHandler, which keeps error formatting in one place:
//
//	func show(ctx *router.Context) handler.Response {
//		code, err := engine.Compute(key, time.Now().Unix())
//		if err != nil {
//			return response.Error(err)
//		}
//		return response.JSON(code)
//	}
//
// Middleware can act before the handler runs, after it returns a Response,
// or around rendering by returning a new Response that wraps the original.
package handler
