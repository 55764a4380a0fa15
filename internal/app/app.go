// Package app provides application lifecycle management for the hydrosync daemon.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aquatrack/hydrosync/internal/config"
)

// SyncApp encapsulates all components needed to run the sync daemon.
// It provides lifecycle management and graceful shutdown capabilities.
type SyncApp struct {
	config     *config.Config
	components *AppComponents
	httpServer *http.Server

	// Lifecycle management
	ctx        context.Context
	cancelFunc context.CancelFunc
}

// Start restores the persisted status, then runs the periodic sync loop and
// the HTTP API side by side. It blocks until the HTTP server stops; a server
// failure also ends the sync loop.
func (app *SyncApp) Start() error {
	coord := app.components.Coordinator

	if err := coord.RestoreStatus(app.ctx); err != nil {
		slog.Warn("Failed to restore sync status", "error", err)
	}

	g, gctx := errgroup.WithContext(app.ctx)
	g.Go(func() error {
		if err := coord.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("Sync coordinator failed", "error", err)
		}
		return nil
	})
	g.Go(func() error {
		slog.Info("Server listening", "address", app.httpServer.Addr)
		if err := app.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// Stop gracefully stops the application with the given timeout.
// It stops the sync coordinator, shuts down the HTTP server and closes the stores.
func (app *SyncApp) Stop(timeout time.Duration) error {
	slog.Info("Shutting down server")

	if err := app.components.Coordinator.Stop(); err != nil {
		slog.Error("Failed to stop sync coordinator", "error", err)
	}

	if app.cancelFunc != nil {
		app.cancelFunc()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err := app.httpServer.Shutdown(shutdownCtx)
	app.components.Close()
	if err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("Server shutdown complete")
	return nil
}

// GetConfig returns the application configuration
func (app *SyncApp) GetConfig() *config.Config {
	return app.config
}

// GetHTTPServer returns the HTTP server (useful for testing to get the actual port)
func (app *SyncApp) GetHTTPServer() *http.Server {
	return app.httpServer
}

// Components returns the application components
func (app *SyncApp) Components() *AppComponents {
	return app.components
}
