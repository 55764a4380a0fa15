package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aquatrack/hydrosync/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the sync daemon and its local API",
	Long: `Run the sync daemon. It restores the last persisted sync status,
runs periodic syncs when syncPolicy.interval is set and serves the local
REST API:

  GET  /v1/sync/status         current sync status
  GET  /v1/sync/status/stream  status updates as server-sent events
  GET  /v1/sync/last           remote watermark of the last successful sync
  POST /v1/sync                full sync
  POST /v1/sync/download       download only
  POST /v1/sync/upload         upload only

See examples/ directory for sample configurations.`,
	RunE: runServe,
}

const (
	defaultGracefulTimeout = 30 * time.Second
)

func init() {
	serveCmd.Flags().String("address", "127.0.0.1:8080", "Address to listen on")
	serveCmd.Flags().Duration("request-timeout", 60*time.Second, "Timeout for API requests other than the status stream")

	if err := viper.BindPFlag("address", serveCmd.Flags().Lookup("address")); err != nil {
		slog.Error("Failed to bind address flag", "error", err)
	}
	if err := viper.BindPFlag("request-timeout", serveCmd.Flags().Lookup("request-timeout")); err != nil {
		slog.Error("Failed to bind request-timeout flag", "error", err)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	unlock, err := acquireSyncLock(cfg)
	if err != nil {
		return err
	}
	defer unlock()

	tel, shutdownTelemetry, err := setupTelemetry(ctx, cfg)
	if err != nil {
		return err
	}
	defer shutdownTelemetry()

	syncApp, err := app.NewSyncApp(ctx,
		app.WithConfig(cfg),
		app.WithAddress(viper.GetString("address")),
		app.WithRequestTimeout(viper.GetDuration("request-timeout")),
		app.WithMeterProvider(tel.MeterProvider()),
		app.WithTracerProvider(tel.TracerProvider()),
		app.WithMetricsHandler(tel.MetricsHandler()),
	)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- syncApp.Start()
	}()

	select {
	case err := <-errCh:
		if stopErr := syncApp.Stop(defaultGracefulTimeout); stopErr != nil {
			slog.Error("Failed to stop application", "error", stopErr)
		}
		return err
	case <-ctx.Done():
		slog.Info("Received shutdown signal")
	}

	if err := syncApp.Stop(defaultGracefulTimeout); err != nil {
		return err
	}
	return <-errCh
}
