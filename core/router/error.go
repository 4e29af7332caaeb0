package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/totpwidget/core/handler"
)

// routeError is a routing failure that carries its HTTP status.
type routeError struct {
	status int
	msg    string
}

func (e routeError) Error() string   { return e.msg }
func (e routeError) StatusCode() int { return e.status }

var (
	// Dispatch errors
	ErrNotFound         error = routeError{http.StatusNotFound, "not found"}
	ErrMethodNotAllowed error = routeError{http.StatusMethodNotAllowed, "method not allowed"}
	ErrNilResponse      error = routeError{http.StatusInternalServerError, "nil response"}

	// Configuration errors
	ErrNoContextFactory = errors.New("no context factory provided")
	ErrInvalidMethod    = errors.New("invalid http method")
	ErrInvalidPattern   = errors.New("invalid route path pattern")
)

// statusCode is an unexported interface that errors can implement
// to provide a custom HTTP status code.
type statusCode interface {
	StatusCode() int
}

// defaultErrorHandler provides default error handling.
func defaultErrorHandler[C handler.Context](ctx C, err error) {
	w := ctx.ResponseWriter()

	// Prevent double-writing responses which causes HTTP protocol errors
	if ww, ok := w.(*responseWriter); ok && ww.Written() {
		return
	}

	status := http.StatusInternalServerError
	var sc statusCode
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	msg := err.Error()
	if status >= http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	http.Error(w, msg, status)
}

// PanicError interface allows external error handlers to detect and handle panics.
// When a panic is recovered by the router, it's wrapped in an error that implements
// this interface, providing access to the original panic value and stack trace.
type PanicError interface {
	error
	// Value returns the original panic value.
	Value() any
	// Stack returns the stack trace captured at the panic point.
	Stack() []byte
}

type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

func (e *panicError) Value() any {
	return e.value
}

func (e *panicError) Stack() []byte {
	return e.stack
}

// Unwrap allows errors.Is/As to work with wrapped panics.
func (e *panicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}
