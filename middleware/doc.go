// Package middleware provides handler.Middleware implementations for
// cross-cutting HTTP concerns: request IDs, client IP extraction, request
// logging, security headers and language negotiation.
//
// Every middleware is generic over the handler.Context type and comes as a
// default constructor plus a WithConfig variant:
//
//	r.Use(
//		middleware.RequestID[*router.Context](),
//		middleware.ClientIP[*router.Context](),
//		middleware.LoggingWithConfig[*router.Context](middleware.LoggingConfig{
//			Logger:     log,
//			RedactPath: web.RedactPath,
//		}),
//		middleware.SecurityHeaders[*router.Context](),
//		middleware.I18n[*router.Context](translations, "widget"),
//	)
//
// Values stored by the middleware are read back with GetRequestID,
// GetClientIP and GetTranslator, which accept any context.Context.
package middleware
