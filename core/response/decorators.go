package response

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrymomot/totpwidget/core/handler"
)

// NoCacheControl is the Cache-Control value used for responses that must never be cached.
const NoCacheControl = "no-store, no-cache, must-revalidate, proxy-revalidate"

// WithHeaders wraps a response with custom HTTP headers.
// Headers are set before the wrapped response is rendered.
func WithHeaders(response handler.Response, headers map[string]string) handler.Response {
	if response == nil {
		return nil
	}
	if len(headers) == 0 {
		return response
	}
	return func(w http.ResponseWriter, r *http.Request) error {
		for k, v := range headers {
			w.Header().Set(k, v)
		}
		return response(w, r)
	}
}

// WithCache wraps a handler.Response with cache control headers.
// If maxAge > 0, sets Cache-Control and Expires headers for caching.
// If maxAge <= 0, the response is marked as not cacheable, same as NoStore.
func WithCache(response handler.Response, maxAge time.Duration) handler.Response {
	if response == nil {
		return nil
	}
	if maxAge <= 0 {
		return NoStore(response)
	}
	return func(w http.ResponseWriter, r *http.Request) error {
		seconds := int(maxAge.Seconds())
		w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", seconds))
		w.Header().Set("Expires", time.Now().Add(maxAge).UTC().Format(http.TimeFormat))
		return response(w, r)
	}
}

// NoStore forbids browsers and proxies from caching the response.
func NoStore(response handler.Response) handler.Response {
	return WithHeaders(response, map[string]string{
		"Cache-Control": NoCacheControl,
		"Pragma":        "no-cache",
		"Expires":       "0",
	})
}

// WithCORS allows cross-origin reads of the response from origin.
// Use "*" to allow any origin.
func WithCORS(response handler.Response, origin string) handler.Response {
	if origin == "" {
		return response
	}
	return WithHeaders(response, map[string]string{
		"Access-Control-Allow-Origin": origin,
	})
}
