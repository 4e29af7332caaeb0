package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrymomot/totpwidget/core/logger"
)

// Server runs an http.Server with graceful shutdown. Options are applied by
// New; the methods are safe for concurrent use.
type Server struct {
	addr            string
	log             *slog.Logger
	shutdownTimeout time.Duration
	// template holds timeouts, header limit and TLS; each Start copies it.
	template http.Server

	mu     sync.Mutex
	active *http.Server
	bound  net.Addr
}

// New creates a Server that listens on addr. Without options it uses the
// Default* timeouts and discards its own logs.
func New(addr string, opts ...Option) *Server {
	s := &Server{
		addr:            addr,
		log:             slog.New(slog.NewTextHandler(io.Discard, nil)),
		shutdownTimeout: DefaultShutdownTimeout,
		template: http.Server{
			ReadTimeout:    DefaultReadTimeout,
			WriteTimeout:   DefaultWriteTimeout,
			IdleTimeout:    DefaultIdleTimeout,
			MaxHeaderBytes: DefaultMaxHeaderBytes,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start listens and serves handler. It blocks until ctx is done, in which
// case it returns ctx.Err() and leaves the server running for Stop, or until
// serving fails.
func (s *Server) Start(ctx context.Context, handler http.Handler) error {
	srv, ln, err := s.listen(handler)
	if err != nil {
		return err
	}

	tls := srv.TLSConfig != nil
	s.log.InfoContext(ctx, "starting server", logger.Addr(ln.Addr().String()), slog.Bool("tls", tls))

	failed := make(chan error, 1)
	go func() {
		var err error
		if tls {
			err = srv.ServeTLS(ln, "", "")
		} else {
			err = srv.Serve(ln)
		}
		if !errors.Is(err, http.ErrServerClosed) {
			failed <- err
		}
	}()

	select {
	case err := <-failed:
		s.release(srv)
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Server) listen(handler http.Handler) (*http.Server, net.Listener, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil {
		return nil, nil, ErrServerAlreadyRunning
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return nil, nil, err
	}

	srv := &http.Server{
		Handler:        handler,
		ReadTimeout:    s.template.ReadTimeout,
		WriteTimeout:   s.template.WriteTimeout,
		IdleTimeout:    s.template.IdleTimeout,
		MaxHeaderBytes: s.template.MaxHeaderBytes,
		TLSConfig:      s.template.TLSConfig,
		ErrorLog:       slog.NewLogLogger(s.log.Handler(), slog.LevelWarn),
	}
	s.active = srv
	s.bound = ln.Addr()
	return srv, ln, nil
}

// release forgets srv if it is still the active server.
func (s *Server) release(srv *http.Server) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != srv || srv == nil {
		return false
	}
	s.active = nil
	return true
}

// Stop drains in-flight requests for up to the shutdown timeout.
// Stopping a server that is not running is a no-op.
func (s *Server) Stop() error {
	s.mu.Lock()
	srv := s.active
	s.mu.Unlock()

	if !s.release(srv) {
		return nil
	}

	s.log.Info("shutting down server", logger.Duration(s.shutdownTimeout))

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		s.log.Error("server shutdown failed", logger.Error(err))
		return err
	}
	s.log.Info("server stopped")
	return nil
}

// Addr is the bound address, nil before the first Start. It resolves port 0.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bound
}

// Running reports whether the server is serving.
func (s *Server) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active != nil
}

// Run returns a func suited to errgroup.Go: it serves handler until ctx is
// done, then stops gracefully. Cancellation is not reported as an error.
func (s *Server) Run(ctx context.Context, handler http.Handler) func() error {
	return func() error {
		done := make(chan error, 1)
		go func() { done <- s.Start(ctx, handler) }()

		select {
		case err := <-done:
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return s.Stop()
			}
			return err
		case <-ctx.Done():
			err := s.Stop()
			<-done
			return err
		}
	}
}
