// Package totp computes RFC 6238 time-based one-time passwords from raw key
// bytes.
//
// The engine is a pure function of (key, unix seconds, time step, digits):
// it keeps no state, reads no clock, and is safe for concurrent use. The
// caller reads the wall clock once per request and passes it in, so the
// counter and the remaining-seconds figure always agree.
//
// # Basic Usage
//
//	import (
//		"github.com/dmitrymomot/totpwidget/pkg/base32"
//		"github.com/dmitrymomot/totpwidget/pkg/totp"
//	)
//
//	key, err := base32.Decode("JBSWY3DPEHPK3PXP")
//	if err != nil {
//		return err
//	}
//
//	engine := totp.Default()
//	code, err := engine.Compute(key, time.Now().Unix())
//	if err != nil {
//		return err
//	}
//	fmt.Println(code.Value, code.Remaining)
//
// # Custom Windows
//
// Time step and digit count are explicit options, which lets tests exercise
// non-default windows without touching globals:
//
//	engine, err := totp.New(totp.WithTimeStep(60), totp.WithDigits(8))
//
// # Errors
//
// A failure of the MAC primitive surfaces as *CodeGenerationError. Invalid
// options surface as ErrInvalidConfig from New.
package totp
