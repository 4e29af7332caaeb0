package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrEmptyBaseURL is returned by New without a base URL.
var ErrEmptyBaseURL = errors.New("client: base URL is required")

// APIError is a non-200 answer from the service.
// For 400 responses the body fields are filled from the service's JSON.
type APIError struct {
	Status  int    `json:"-"`
	Reason  string `json:"error"`
	Message string `json:"message,omitempty"`
	Usage   string `json:"usage,omitempty"`
	Example string `json:"example,omitempty"`
}

func (e *APIError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = http.StatusText(e.Status)
	}
	if e.Message != "" {
		return fmt.Sprintf("%d %s: %s", e.Status, reason, e.Message)
	}
	return fmt.Sprintf("%d %s", e.Status, reason)
}

// Temporary reports whether repeating the request may succeed.
func (e *APIError) Temporary() bool {
	return e.Status >= http.StatusInternalServerError || e.Status == http.StatusTooManyRequests
}

// IsRejected reports whether err is the service refusing the secret itself.
func IsRejected(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest
}
