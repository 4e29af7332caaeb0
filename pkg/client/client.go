package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultMaxRetries bounds the retries of one refresh.
const DefaultMaxRetries = 3

// maxBodySize caps how much of a response is read.
const maxBodySize = 64 << 10

// Token is a code fetched from the service.
type Token struct {
	Code string
	// Remaining is the time left in the code's window when it was served.
	Remaining time.Duration
	// ServerTime is the service clock at the time the code was computed.
	ServerTime time.Time
	// FetchedAt is the local clock when the response arrived.
	FetchedAt time.Time
	// Skew is ServerTime minus the local clock.
	Skew time.Duration
}

// ExpiresAt is the local time at which the code's window closes.
func (t Token) ExpiresAt() time.Time {
	return t.FetchedAt.Add(t.Remaining)
}

// Client fetches codes from one service.
type Client struct {
	baseURL    *url.URL
	http       *http.Client
	maxRetries uint64
	now        func() time.Time
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client. Nil is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithMaxRetries sets how many times a Watcher retries a failed refresh.
func WithMaxRetries(n uint64) Option {
	return func(c *Client) {
		c.maxRetries = n
	}
}

// WithClock replaces the local clock used for skew and expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger sets the logger for retries. Nil is ignored.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a Client for the service at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, ErrEmptyBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("client: parse base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("client: unsupported scheme %q", u.Scheme)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""

	c := &Client{
		baseURL:    u,
		http:       &http.Client{Timeout: 10 * time.Second},
		maxRetries: DefaultMaxRetries,
		now:        time.Now,
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// URL returns the JSON endpoint for secret.
func (c *Client) URL(secret string) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + "/" + secret
	u.RawPath = c.baseURL.EscapedPath() + "/" + url.PathEscape(secret)
	u.RawQuery = url.Values{"format": {"json"}}.Encode()
	return u.String()
}

type tokenBody struct {
	Token      string `json:"token"`
	Remaining  int64  `json:"remaining"`
	ServerTime int64  `json:"serverTime"`
}

// Fetch asks the service for the current code of secret.
// Non-200 answers are returned as *APIError.
func (c *Client) Fetch(ctx context.Context, secret string) (Token, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(secret), nil)
	if err != nil {
		return Token{}, fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Token{}, fmt.Errorf("client: request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body := io.LimitReader(resp.Body, maxBodySize)

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Status: resp.StatusCode}
		// The body is informational; a malformed one still yields the status.
		_ = json.NewDecoder(body).Decode(apiErr)
		return Token{}, apiErr
	}

	var tb tokenBody
	if err := json.NewDecoder(body).Decode(&tb); err != nil {
		return Token{}, fmt.Errorf("client: decode response: %w", err)
	}
	if tb.Token == "" {
		return Token{}, fmt.Errorf("client: response without token")
	}

	now := c.now()
	serverTime := time.Unix(tb.ServerTime, 0)
	return Token{
		Code:       tb.Token,
		Remaining:  time.Duration(tb.Remaining) * time.Second,
		ServerTime: serverTime,
		FetchedAt:  now,
		Skew:       serverTime.Sub(now.Truncate(time.Second)),
	}, nil
}
