package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ShutdownTimeout bounds how long in-flight requests may take once Run is asked to stop.
const ShutdownTimeout = 30 * time.Second

// Run serves HTTP until ctx is done, then drains in-flight requests.
func (srv *HTTPServer) Run(ctx context.Context) error {
	srv.srv = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", srv.host, srv.port),
		Handler:           srv.gin,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	srv.logger.Infof(ctx, "HTTP server started on %s", srv.srv.Addr)

	select {
	case err, ok := <-errCh:
		if ok {
			srv.logger.Errorf(ctx, "HTTP server error: %v", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	srv.logger.Info(context.Background(), "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := srv.srv.Shutdown(shutdownCtx); err != nil {
		srv.logger.Errorf(shutdownCtx, "HTTP server shutdown error: %v", err)
		return err
	}
	return nil
}

// Handler exposes the routed engine, mainly for tests.
func (srv *HTTPServer) Handler() http.Handler {
	return srv.gin
}
