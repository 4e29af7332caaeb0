// Package web is the HTTP boundary of the code service.
//
// A request's path, URL-decoded and stripped of whitespace, is the Base32
// secret. With ?format=json the handler answers
//
//	{"token": "123456", "remaining": 17, "serverTime": 1700000003}
//
// and otherwise renders the widget page. An empty secret is a
// MissingSecretError (400 with usage hints for JSON, the landing page for
// HTML); a secret that fails to decode or hash is a 400 with the decoder's
// message. Every response is marked as not cacheable and JSON responses
// allow any origin.
//
// Mount registers the application routes next to the health probes and the
// widget assets:
//
//	h := web.New(totp.Default(), web.WithTranslations(tr), web.WithLogger(log))
//	web.Mount(r, h)
package web
