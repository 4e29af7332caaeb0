package base32

import "strings"

// Alphabet is the RFC 4648 Base32 alphabet. A symbol's index is its 5-bit value.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"

// Decode converts Base32 text into bytes. See the package documentation for the
// accepted syntax. An empty input decodes to an empty, non-nil slice.
func Decode(s string) ([]byte, error) {
	clean := strings.TrimRight(strings.ToUpper(s), "=")

	out := make([]byte, 0, len(clean)*5/8)
	var (
		buf  uint32 // pending bits, right-aligned
		bits uint   // number of pending bits
	)
	for i, r := range []rune(clean) {
		v, ok := value(r)
		if !ok {
			return nil, &InvalidCharacterError{Char: r, Pos: i}
		}
		buf = buf<<5 | uint32(v)
		bits += 5
		if bits >= 8 {
			bits -= 8
			out = append(out, byte(buf>>bits))
			buf &= 1<<bits - 1
		}
	}
	// Fewer than 8 bits left over carry no information.
	return out, nil
}

// MustDecode is like Decode but panics on invalid input.
// Intended for constants in tests and examples.
func MustDecode(s string) []byte {
	b, err := Decode(s)
	if err != nil {
		panic(err)
	}
	return b
}

func value(r rune) (byte, bool) {
	switch {
	case r >= 'A' && r <= 'Z':
		return byte(r - 'A'), true
	case r >= '2' && r <= '7':
		return byte(r-'2') + 26, true
	}
	return 0, false
}
