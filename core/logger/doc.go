// Package logger provides structured logging utilities built on log/slog:
// a configurable constructor with environment presets, a handler decorator
// that injects request-scoped values from the context, and nil-safe
// attribute helpers.
//
//	log := logger.New(
//		logger.WithEnvironment("production", "totpwidget"),
//		logger.WithLevel(logger.ParseLevel("debug")),
//		logger.WithContextValue("request_id", requestIDKey{}),
//	)
//
//	log.InfoContext(ctx, "code served",
//		logger.Component("web"),
//		logger.Latency(time.Since(start)),
//	)
//
// Attribute helpers return an empty slog.Attr for nil or empty input, which
// slog drops, so callers need no nil checks:
//
//	log.Error("fetch failed", logger.Error(err), logger.RetryCount(n))
package logger
