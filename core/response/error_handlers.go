package response

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/totpwidget/core/handler"
)

// statusCoder is implemented by errors that carry an HTTP status.
type statusCoder interface {
	StatusCode() int
}

// convertToHTTPError maps err to an HTTPError. Only client errors (4xx) that
// carry a status expose their message; everything else shows the status text.
func convertToHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var sc statusCoder
	if !errors.As(err, &sc) {
		return ErrInternalServerError
	}

	base := StatusError(sc.StatusCode())
	if base.Status >= http.StatusInternalServerError {
		return base
	}
	return base.WithMessage(err.Error())
}

// ErrorHandler is the default error handler that returns plain text errors.
// HTTPError values are used as is, errors with a StatusCode method get that
// status, anything else is a 500.
func ErrorHandler[C handler.Context](ctx C, err error) {
	httpErr := convertToHTTPError(err)
	Render(ctx, StringWithStatus(httpErr.Error(), httpErr.Status))
}

// JSONErrorHandler returns errors as JSON responses.
func JSONErrorHandler[C handler.Context](ctx C, err error) {
	httpErr := convertToHTTPError(err)
	Render(ctx, JSONWithStatus(httpErr, httpErr.Status))
}
