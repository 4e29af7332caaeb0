package client

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/dmitrymomot/totpwidget/core/logger"
)

// Watcher refreshes the code of one secret once per window.
type Watcher struct {
	client *Client
	secret string
}

// Watch creates a Watcher for secret.
func (c *Client) Watch(secret string) *Watcher {
	return &Watcher{client: c, secret: secret}
}

// Run fetches a code, hands it to fn and sleeps until the window closes,
// until ctx is canceled or fn returns an error.
//
// A failed fetch is retried immediately up to the client's MaxRetries; once
// the ceiling is hit Run returns the last error. Rejected secrets (400) are
// not retried. Cancellation of ctx is not an error.
func (w *Watcher) Run(ctx context.Context, fn func(Token) error) error {
	for {
		tok, err := w.fetch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		if err := fn(tok); err != nil {
			return err
		}

		if !sleep(ctx, tok.Remaining) {
			return nil
		}
	}
}

// fetch runs one refresh with the retry ceiling.
func (w *Watcher) fetch(ctx context.Context) (Token, error) {
	attempt := 0
	return retry.DoValue(ctx, w.backoff(), func(ctx context.Context) (Token, error) {
		tok, err := w.client.Fetch(ctx, w.secret)
		if err == nil {
			return tok, nil
		}

		var apiErr *APIError
		if errors.As(err, &apiErr) && !apiErr.Temporary() {
			return Token{}, err
		}

		attempt++
		w.client.log.WarnContext(ctx, "code refresh failed",
			logger.Error(err),
			logger.RetryCount(attempt),
		)
		return Token{}, retry.RetryableError(err)
	})
}

// backoff retries without delay, at most maxRetries times.
func (w *Watcher) backoff() retry.Backoff {
	immediate := retry.BackoffFunc(func() (time.Duration, bool) {
		return 0, false
	})
	return retry.WithMaxRetries(w.client.maxRetries, immediate)
}

// sleep waits for d and reports whether ctx is still live.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
