package app

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const defaultShutdownTimeout = 10 * time.Second

// Start serves HTTP on the configured address. The returned channel is closed
// on SIGINT/SIGTERM/SIGHUP or when the listener fails.
func (a *App) Start() <-chan struct{} {
	done := make(chan struct{})
	ctx, stop := signal.NotifyContext(a.ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		slog.Info("registration api listening",
			"address", a.httpServer.Addr,
			"store", a.config.GetString("modules.registration.store"),
			"broker", a.config.GetString("messaging.driver"),
		)

		if err := a.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to listen and serve http server", "error", err)
			stop()
		}
	}()

	go func() {
		<-ctx.Done()
		stop()
		close(done)
		slog.Info("termination requested, shutting down")
	}()

	return done
}

// Serve runs the HTTP server on l. Tests use it with an ephemeral listener.
func (a *App) Serve(l net.Listener) <-chan error {
	errChan := make(chan error, 1)

	go func() {
		errChan <- a.httpServer.Serve(l)
		close(errChan)
	}()

	return errChan
}

// Stop drains HTTP first so no new registration starts, then waits for the
// pending event publishes, then closes broker, cache, database and telemetry.
// The whole sequence is bounded by app.server.shutdown_timeout_seconds.
func (a *App) Stop(ctx context.Context) {
	timeout := a.config.GetSecond("app.server.shutdown_timeout_seconds")
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to close resources", "name", "HTTP Server", "error", err)
	}

	if a.cancel != nil {
		a.cancel()
	}

	a.drainBackground(ctx)

	for _, closer := range a.closers {
		if err := closer.fn(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resources", "name", closer.name, "error", err)
		}
	}

	slog.InfoContext(ctx, "application gracefully shutdown")
}

func (a *App) drainBackground(ctx context.Context) {
	waited := make(chan error, 1)
	go func() { waited <- a.goroutine.Wait() }()

	select {
	case err := <-waited:
		if err != nil {
			slog.ErrorContext(ctx, "background tasks finished with errors", "error", err)
			return
		}
		slog.InfoContext(ctx, "background tasks finished")
	case <-ctx.Done():
		slog.WarnContext(ctx, "shutdown deadline reached with background tasks still running", "error", ctx.Err())
	}
}
