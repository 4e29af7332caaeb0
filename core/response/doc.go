// Package response builds handler.Response values: plain text, JSON and
// templ-rendered HTML, plus decorators that add headers, caching policy and
// CORS to any response. It also provides HTTPError and ready-made error
// handlers for the router.
//
//	func showCode(ctx *router.Context) handler.Response {
//		return response.NoStore(response.JSON(payload))
//	}
//
// Errors that implement StatusCode() int keep their status when converted by
// ErrorHandler or JSONErrorHandler; anything else becomes a 500 and its
// message is not exposed.
package response
