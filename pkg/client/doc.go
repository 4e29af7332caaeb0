// Package client talks to a running code service over its JSON API.
//
//	c, err := client.New("https://otp.example.com")
//	tok, err := c.Fetch(ctx, "JBSWY3DPEHPK3PXP")
//	fmt.Println(tok.Code, tok.Remaining)
//
// Watcher keeps a code current: it fetches once per window and sleeps until
// the window closes. Transient failures are retried immediately up to
// MaxRetries times; a rejected secret is never retried.
package client
