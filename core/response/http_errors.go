package response

import (
	"maps"
	"net/http"
	"strings"
)

// HTTPError is an error with a status, a machine-readable code and a message
// safe to show to clients. JSONErrorHandler renders it as is.
type HTTPError struct {
	Status  int            `json:"-"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// StatusError returns the HTTPError for status, with the status text as the
// message and its snake_case form as the code ("Not Found" -> "not_found").
func StatusError(status int) HTTPError {
	text := http.StatusText(status)
	return HTTPError{Status: status, Code: snakeCase(text), Message: text}
}

func snakeCase(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-':
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "error"
	}
	return b.String()
}

func (e HTTPError) Error() string   { return e.Message }
func (e HTTPError) StatusCode() int { return e.Status }

// WithMessage returns a copy with message.
func (e HTTPError) WithMessage(message string) HTTPError {
	e.Message = message
	return e
}

// WithDetails returns a copy with details.
func (e HTTPError) WithDetails(details map[string]any) HTTPError {
	e.Details = details
	return e
}

// WithError returns a copy whose details carry err under "cause".
// The receiver's details are not modified.
func (e HTTPError) WithError(err error) HTTPError {
	details := maps.Clone(e.Details)
	if details == nil {
		details = make(map[string]any, 1)
	}
	details["cause"] = err.Error()
	e.Details = details
	return e
}

var (
	ErrBadRequest          = StatusError(http.StatusBadRequest)
	ErrNotFound            = StatusError(http.StatusNotFound)
	ErrMethodNotAllowed    = StatusError(http.StatusMethodNotAllowed)
	ErrRequestTimeout      = StatusError(http.StatusRequestTimeout)
	ErrTooManyRequests     = StatusError(http.StatusTooManyRequests)
	ErrInternalServerError = StatusError(http.StatusInternalServerError)
	ErrServiceUnavailable  = StatusError(http.StatusServiceUnavailable)
)
