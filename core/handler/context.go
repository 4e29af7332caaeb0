package handler

import (
	"context"
	"net/http"
)

// Context is the per-request context handed to handlers and middleware.
// It is also a context.Context backed by the request's context.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	Param(key string) string
	SetValue(key, val any)
}
