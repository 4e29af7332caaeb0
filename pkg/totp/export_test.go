package totp

import "hash"

// WithMAC replaces the MAC constructor so tests can simulate a failing primitive.
func WithMAC(f func(key []byte) (hash.Hash, error)) Option {
	return func(e *Engine) {
		e.mac = f
	}
}

var Truncate = truncate
