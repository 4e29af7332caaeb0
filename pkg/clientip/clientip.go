package clientip

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

var headers = []string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// GetIP returns the best-guess client IP for r.
func GetIP(r *http.Request) string {
	for _, h := range headers {
		v := r.Header.Get(h)
		if v == "" {
			continue
		}
		if h == "X-Forwarded-For" {
			v, _, _ = strings.Cut(v, ",")
		}
		if ip, ok := parse(v); ok {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if ip, ok := parse(host); ok {
		return ip
	}
	return r.RemoteAddr
}

func parse(s string) (string, bool) {
	addr, err := netip.ParseAddr(strings.Trim(strings.TrimSpace(s), "[]"))
	if err != nil || addr.IsUnspecified() {
		return "", false
	}
	return addr.Unmap().String(), true
}
