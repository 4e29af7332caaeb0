// Package server wraps http.Server with graceful shutdown, production
// timeouts, optional TLS and structured logging.
//
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, handler))
//	return g.Wait()
//
// Run returns a func() error so it plugs into errgroup-style supervisors;
// when ctx is cancelled the server drains in-flight requests for up to the
// shutdown timeout before returning.
//
// Config is populated from the environment (SERVER_ADDR, SERVER_READ_TIMEOUT,
// SERVER_TLS_CERT_FILE and friends) with core/config.
package server
