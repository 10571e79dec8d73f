package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// ShutdownTimeout is how long outstanding requests get once a stop signal arrives.
const ShutdownTimeout = 5 * time.Second

// Serve runs handler on port until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, handler http.Handler, port int, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Starting Workbench Server", "addr", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info("Start shutdown...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown did not complete", "timeout", ShutdownTimeout, "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		logger.Info("Workbench Server stopped gracefully")
		return nil
	}
}
