package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/zvrva/farewatch/config"
)

// Run serves the HTTP API and blocks until the context is canceled or the
// server fails. Cancellation triggers a graceful shutdown with a short
// drain window.
func Run(ctx context.Context, cfg *config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}
