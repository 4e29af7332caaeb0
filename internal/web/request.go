package web

import (
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Secret returns the candidate secret carried by r: the URL-decoded path
// without its leading slash and with every whitespace character removed.
func Secret(r *http.Request) string {
	return stripSpace(strings.TrimPrefix(r.URL.Path, "/"))
}

func stripSpace(s string) string {
	return strings.Map(func(c rune) rune {
		if unicode.IsSpace(c) {
			return -1
		}
		return c
	}, s)
}

// Origin returns the scheme and host r was addressed to. The scheme is https
// when the connection is TLS or a proxy reports X-Forwarded-Proto: https.
func Origin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	} else if proto, _, _ := strings.Cut(r.Header.Get("X-Forwarded-Proto"), ","); strings.EqualFold(strings.TrimSpace(proto), "https") {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

// wantsJSON reports whether the caller asked for the JSON representation.
func wantsJSON(r *http.Request) bool {
	return r.URL.Query().Get("format") == "json"
}

// RedactPath hides a secret-bearing path for logs, keeping the first two
// characters. Paths under "/-/" belong to the service and are kept as is.
func RedactPath(p string) string {
	if p == "/" || strings.HasPrefix(p, "/-/") {
		return p
	}
	rest := strings.TrimPrefix(p, "/")
	if utf8.RuneCountInString(rest) <= 2 {
		return "/" + strings.Repeat("*", 3)
	}
	_, n1 := utf8.DecodeRuneInString(rest)
	_, n2 := utf8.DecodeRuneInString(rest[n1:])
	return "/" + rest[:n1+n2] + "***"
}
