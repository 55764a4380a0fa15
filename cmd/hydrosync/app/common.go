package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/spf13/viper"

	"github.com/aquatrack/hydrosync/internal/config"
	"github.com/aquatrack/hydrosync/internal/telemetry"
)

const formatJSON = "json"

// errSyncInProgress is returned when another process holds the sync lock
var errSyncInProgress = errors.New("another sync is in progress; use the running daemon's API instead")

// loadConfig loads the file given by --config, or the default config file
// when it exists. Without either the built-in defaults are used.
func loadConfig() (*config.Config, error) {
	path := viper.GetString("config")
	if path == "" {
		if _, err := os.Stat(config.DefaultConfigPath()); err == nil {
			path = config.DefaultConfigPath()
		}
	}

	var opts []config.Option
	if path != "" {
		opts = append(opts, config.WithConfigPath(path))
	}

	cfg, err := config.LoadConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if path != "" {
		slog.Debug("Loaded configuration", "path", path, "remote", cfg.GetRemoteType())
	}
	return cfg, nil
}

// syncLockPath returns the lock file guarding sync runs on the local store
func syncLockPath(cfg *config.Config) string {
	return cfg.GetLocalPath() + ".sync.lock"
}

// acquireSyncLock takes the process-wide sync lock without waiting. The
// returned function releases it.
func acquireSyncLock(cfg *config.Config) (func(), error) {
	path := syncLockPath(cfg)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	lock := flock.New(path)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire sync lock: %w", err)
	}
	if !locked {
		return nil, errSyncInProgress
	}

	return func() {
		if err := lock.Unlock(); err != nil {
			slog.Warn("Failed to release sync lock", "error", err)
		}
	}, nil
}

// setupTelemetry creates the telemetry providers. The returned function
// flushes and shuts them down.
func setupTelemetry(ctx context.Context, cfg *config.Config) (*telemetry.Telemetry, func(), error) {
	tel, err := telemetry.New(ctx, telemetry.WithTelemetryConfig(cfg.Telemetry))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	return tel, func() {
		if err := tel.Shutdown(context.Background()); err != nil {
			slog.Error("Failed to shutdown telemetry", "error", err)
		}
	}, nil
}
