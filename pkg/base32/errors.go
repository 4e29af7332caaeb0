package base32

import (
	"errors"
	"fmt"
)

// ErrInvalidCharacter is matched by every *InvalidCharacterError via errors.Is.
var ErrInvalidCharacter = errors.New("invalid base32 character")

// InvalidCharacterError reports the first character outside the Base32 alphabet.
// Pos is the rune index in the normalized input.
type InvalidCharacterError struct {
	Char rune
	Pos  int
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("Invalid Base32 character: '%c'. Only A-Z and 2-7 are allowed.", e.Char)
}

// Is reports whether target is ErrInvalidCharacter.
func (e *InvalidCharacterError) Is(target error) bool {
	return target == ErrInvalidCharacter
}
