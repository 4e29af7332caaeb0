package totp

import (
	"crypto/hmac"
	"crypto/sha1"
	"fmt"
	"hash"
)

const (
	// DefaultTimeStep is the window length in seconds.
	DefaultTimeStep = 30

	// DefaultDigits is the code length.
	DefaultDigits = 6

	// MaxDigits bounds the code length; 10 digits already exceed the 31-bit
	// truncated value, so longer codes would only add leading zeros.
	MaxDigits = 10
)

// Option configures an Engine.
type Option func(*Engine)

// WithTimeStep sets the window length in seconds. Must be at least 1.
func WithTimeStep(seconds int64) Option {
	return func(e *Engine) {
		e.timeStep = seconds
	}
}

// WithDigits sets the number of decimal digits in a code, between 1 and MaxDigits.
func WithDigits(n int) Option {
	return func(e *Engine) {
		e.digits = n
	}
}

// macFunc builds a keyed MAC. HMAC-SHA1 is the only algorithm in production;
// the seam exists so tests can make the primitive fail.
type macFunc func(key []byte) (hash.Hash, error)

func hmacSHA1(key []byte) (hash.Hash, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}
	return hmac.New(sha1.New, key), nil
}

func (e *Engine) validate() error {
	if e.timeStep < 1 {
		return fmt.Errorf("%w: time step must be positive, got %d", ErrInvalidConfig, e.timeStep)
	}
	if e.digits < 1 || e.digits > MaxDigits {
		return fmt.Errorf("%w: digits must be between 1 and %d, got %d", ErrInvalidConfig, MaxDigits, e.digits)
	}
	return nil
}
