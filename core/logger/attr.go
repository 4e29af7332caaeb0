package logger

import (
	"log/slog"
	"time"
)

// Attribute helpers return an empty slog.Attr for zero inputs where noted,
// which slog drops, so callers can pass them unconditionally.

// Error is the "error" attribute, empty for a nil err.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID is the "request_id" attribute, empty for an empty id.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Addr is the "addr" attribute, empty for an empty addr.
func Addr(addr string) slog.Attr {
	if addr == "" {
		return slog.Attr{}
	}
	return slog.String("addr", addr)
}

func Duration(d time.Duration) slog.Attr { return slog.Duration("duration", d) }
func Latency(d time.Duration) slog.Attr  { return slog.Duration("latency", d) }

func Method(method string) slog.Attr { return slog.String("method", method) }
func Path(path string) slog.Attr     { return slog.String("path", path) }
func StatusCode(code int) slog.Attr  { return slog.Int("status_code", code) }
func ClientIP(ip string) slog.Attr   { return slog.String("client_ip", ip) }
func UserAgent(ua string) slog.Attr  { return slog.String("user_agent", ua) }
func BytesOut(n int64) slog.Attr     { return slog.Int64("bytes_out", n) }

func Component(name string) slog.Attr { return slog.String("component", name) }
func Event(name string) slog.Attr     { return slog.String("event", name) }
func Version(v string) slog.Attr      { return slog.String("version", v) }
func RetryCount(n int) slog.Attr      { return slog.Int("retry_count", n) }

// Counter is the TOTP time-step counter. Never log the secret itself.
func Counter(n uint64) slog.Attr { return slog.Uint64("counter", n) }
