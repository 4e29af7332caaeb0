package totp

import "errors"

var (
	// ErrInvalidConfig is returned by New when an option is out of range.
	ErrInvalidConfig = errors.New("invalid totp configuration")

	// ErrEmptyKey is the cause of the CodeGenerationError returned for a
	// zero-length key, such as a secret made only of padding.
	ErrEmptyKey = errors.New("key is empty")

	// ErrNegativeTime is returned by Compute for times before the epoch.
	ErrNegativeTime = errors.New("time before the unix epoch")
)

// CodeGenerationError wraps a failure of the underlying MAC primitive.
type CodeGenerationError struct {
	Err error
}

func (e *CodeGenerationError) Error() string {
	return "failed to generate code: " + e.Err.Error()
}

func (e *CodeGenerationError) Unwrap() error {
	return e.Err
}
