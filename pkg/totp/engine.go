package totp

import (
	"encoding/binary"
	"fmt"
	"strconv"
)

// Code is a computed one-time password and its validity window.
type Code struct {
	// Value is the zero-padded decimal code.
	Value string `json:"token"`
	// Remaining is the number of seconds until the window closes.
	Remaining int64 `json:"remaining"`
	// Counter is floor(now / time step).
	Counter uint64 `json:"counter"`
	// ExpiresAt is the unix second at which the next window starts.
	ExpiresAt int64 `json:"expires_at"`
}

// Engine computes TOTP codes. The zero value is not usable; use New or Default.
type Engine struct {
	timeStep int64
	digits   int
	mac      macFunc
}

// New creates an Engine. Without options it uses a 30-second step and 6 digits.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		timeStep: DefaultTimeStep,
		digits:   DefaultDigits,
		mac:      hmacSHA1,
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Default returns an Engine with the RFC 6238 defaults.
func Default() *Engine {
	e, _ := New()
	return e
}

// TimeStep returns the window length in seconds.
func (e *Engine) TimeStep() int64 { return e.timeStep }

// Digits returns the code length.
func (e *Engine) Digits() int { return e.digits }

// Counter returns the moving factor for the given unix time.
// Times before the epoch map to counter 0.
func (e *Engine) Counter(now int64) uint64 {
	if now < 0 {
		return 0
	}
	return uint64(now / e.timeStep)
}

// Remaining returns the seconds left in the window containing now.
// For non-negative now the result is in [1, timeStep]; Compute rejects
// negative times.
func (e *Engine) Remaining(now int64) int64 {
	return e.expiresAt(now) - now
}

// Compute returns the code for the window containing now together with
// the time left in that window. An empty key fails with a
// *CodeGenerationError wrapping ErrEmptyKey.
func (e *Engine) Compute(key []byte, now int64) (Code, error) {
	if now < 0 {
		return Code{}, fmt.Errorf("%w: %d", ErrNegativeTime, now)
	}
	counter := e.Counter(now)
	value, err := e.HOTP(key, counter)
	if err != nil {
		return Code{}, err
	}
	expiresAt := e.expiresAt(now)
	return Code{
		Value:     value,
		Remaining: expiresAt - now,
		Counter:   counter,
		ExpiresAt: expiresAt,
	}, nil
}

// HOTP returns the RFC 4226 code for an explicit counter.
func (e *Engine) HOTP(key []byte, counter uint64) (string, error) {
	digest, err := e.sum(key, counter)
	if err != nil {
		return "", err
	}
	return format(truncate(digest), e.digits), nil
}

func (e *Engine) expiresAt(now int64) int64 {
	return (int64(e.Counter(now)) + 1) * e.timeStep
}

func (e *Engine) sum(key []byte, counter uint64) ([]byte, error) {
	h, err := e.mac(key)
	if err != nil {
		return nil, &CodeGenerationError{Err: err}
	}
	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)
	if _, err := h.Write(msg[:]); err != nil {
		return nil, &CodeGenerationError{Err: err}
	}
	digest := h.Sum(nil)
	if len(digest) < 20 {
		return nil, &CodeGenerationError{Err: fmt.Errorf("digest too short: %d bytes", len(digest))}
	}
	return digest, nil
}

// truncate applies RFC 4226 dynamic truncation: the low nibble of the last
// byte selects four bytes, read big-endian with the sign bit cleared.
func truncate(digest []byte) uint32 {
	offset := digest[len(digest)-1] & 0x0f
	return binary.BigEndian.Uint32(digest[offset:offset+4]) & 0x7fffffff
}

var pow10 = [...]uint64{1, 10, 100, 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9, 1e10}

func format(value uint32, digits int) string {
	s := strconv.FormatUint(uint64(value)%pow10[digits], 10)
	for len(s) < digits {
		s = "0" + s
	}
	return s
}
