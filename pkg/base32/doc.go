// Package base32 decodes RFC 4648 Base32 text into raw key bytes the way
// authenticator apps expect it.
//
// Decoding is deliberately lenient about length and strict about alphabet:
//
//   - input is upper-cased before validation, so lowercase keys decode;
//   - any number of trailing '=' characters is dropped;
//   - every remaining character must be in A-Z or 2-7;
//   - the 5-bit groups are concatenated and split into bytes, and a trailing
//     group shorter than 8 bits is discarded rather than padded.
//
// Unlike encoding/base32, input of any length is accepted. Whitespace is not
// skipped; callers strip it before decoding.
//
// Basic usage:
//
//	key, err := base32.Decode("JBSWY3DPEHPK3PXP")
//	if err != nil {
//		var ice *base32.InvalidCharacterError
//		if errors.As(err, &ice) {
//			log.Printf("bad character %q at %d", ice.Char, ice.Pos)
//		}
//	}
package base32
