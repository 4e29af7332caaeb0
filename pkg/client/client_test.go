package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/totpwidget/pkg/client"
)

func tokenServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	_, err := client.New("")
	require.ErrorIs(t, err, client.ErrEmptyBaseURL)

	_, err = client.New("ftp://example.com")
	require.Error(t, err)

	c, err := client.New("https://otp.example.com/base/")
	require.NoError(t, err)
	assert.Equal(t, "https://otp.example.com/base/JBSW%20Y3DP?format=json", c.URL("JBSW Y3DP"))
	assert.Equal(t, "https://otp.example.com/base/a%2Fb?format=json", c.URL("a/b"))
}

func TestFetch(t *testing.T) {
	t.Parallel()

	srv := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/JBSWY3DPEHPK3PXP", r.URL.Path)
		assert.Equal(t, "format=json", r.URL.RawQuery)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"996554","remaining":12,"serverTime":1700000010}`))
	})

	local := time.Unix(1700000005, 0)
	c, err := client.New(srv.URL, client.WithClock(func() time.Time { return local }))
	require.NoError(t, err)

	tok, err := c.Fetch(context.Background(), "JBSWY3DPEHPK3PXP")
	require.NoError(t, err)

	assert.Equal(t, "996554", tok.Code)
	assert.Equal(t, 12*time.Second, tok.Remaining)
	assert.Equal(t, int64(1700000010), tok.ServerTime.Unix())
	assert.Equal(t, 5*time.Second, tok.Skew)
	assert.Equal(t, local.Add(12*time.Second), tok.ExpiresAt())
}

func TestFetchRejected(t *testing.T) {
	t.Parallel()

	srv := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Invalid secret key format","message":"Invalid Base32 character: '0'. Only A-Z and 2-7 are allowed."}`))
	})

	c, err := client.New(srv.URL)
	require.NoError(t, err)

	_, err = c.Fetch(context.Background(), "ABC018")
	require.Error(t, err)
	assert.True(t, client.IsRejected(err))

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Invalid secret key format", apiErr.Reason)
	assert.False(t, apiErr.Temporary())
	assert.Contains(t, err.Error(), "Only A-Z and 2-7")
}

func TestFetchMissingSecret(t *testing.T) {
	t.Parallel()

	srv := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Missing secret parameter","usage":"http://x/YOUR_SECRET_KEY?format=json","example":"http://x/JBSWY3DPEHPK3PXP?format=json"}`))
	})

	c, err := client.New(srv.URL)
	require.NoError(t, err)

	_, err = c.Fetch(context.Background(), "")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "http://x/YOUR_SECRET_KEY?format=json", apiErr.Usage)
	assert.Equal(t, "http://x/JBSWY3DPEHPK3PXP?format=json", apiErr.Example)
}

func TestFetchServerError(t *testing.T) {
	t.Parallel()

	srv := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	})

	c, err := client.New(srv.URL)
	require.NoError(t, err)

	_, err = c.Fetch(context.Background(), "JBSWY3DPEHPK3PXP")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.Temporary())
	assert.Equal(t, "503 Service Unavailable", apiErr.Error())
}

func TestWatcherDeliversTokens(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"token":"123456","remaining":0,"serverTime":60}`))
	})

	c, err := client.New(srv.URL)
	require.NoError(t, err)

	var got int
	stop := errors.New("stop")
	err = c.Watch("JBSWY3DPEHPK3PXP").Run(context.Background(), func(tok client.Token) error {
		assert.Equal(t, "123456", tok.Code)
		got++
		if got == 3 {
			return stop
		}
		return nil
	})

	require.ErrorIs(t, err, stop)
	assert.Equal(t, 3, got)
	assert.Equal(t, int32(3), calls.Load())
}

func TestWatcherRetriesTransientFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"token":"654321","remaining":30,"serverTime":60}`))
	})

	c, err := client.New(srv.URL, client.WithMaxRetries(3))
	require.NoError(t, err)

	stop := errors.New("stop")
	err = c.Watch("JBSWY3DPEHPK3PXP").Run(context.Background(), func(tok client.Token) error {
		assert.Equal(t, "654321", tok.Code)
		return stop
	})

	require.ErrorIs(t, err, stop)
	assert.Equal(t, int32(3), calls.Load())
}

func TestWatcherGivesUpAfterCeiling(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "down", http.StatusInternalServerError)
	})

	c, err := client.New(srv.URL, client.WithMaxRetries(2))
	require.NoError(t, err)

	err = c.Watch("JBSWY3DPEHPK3PXP").Run(context.Background(), func(client.Token) error {
		t.Fatal("no token expected")
		return nil
	})

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, int32(3), calls.Load(), "one attempt plus two retries")
}

func TestWatcherDoesNotRetryRejectedSecret(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Invalid secret key format","message":"bad"}`))
	})

	c, err := client.New(srv.URL, client.WithMaxRetries(5))
	require.NoError(t, err)

	err = c.Watch("ABC018").Run(context.Background(), func(client.Token) error { return nil })
	assert.True(t, client.IsRejected(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestWatcherStopsOnCancel(t *testing.T) {
	t.Parallel()

	srv := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"token":"111111","remaining":30,"serverTime":60}`))
	})

	c, err := client.New(srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- c.Watch("JBSWY3DPEHPK3PXP").Run(ctx, func(client.Token) error {
			cancel()
			return nil
		})
	}()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
