package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aquatrack/hydrosync/internal/identity"
	"github.com/aquatrack/hydrosync/internal/local"
	"github.com/aquatrack/hydrosync/internal/remote"
	"github.com/aquatrack/hydrosync/internal/sync/coordinator"
)

// AppComponents groups all application components
//
//nolint:revive // This name is fine
type AppComponents struct {
	// Coordinator runs and reports synchronization
	Coordinator coordinator.Coordinator

	// LocalStore is the on-device source of truth
	LocalStore local.Store

	// DocumentStore is the remote per-user store
	DocumentStore remote.DocumentStore

	// Identity resolves the signed-in user
	Identity identity.Provider

	cleanups []func()
}

// CheckReadiness reports an error when either store cannot be reached
func (c *AppComponents) CheckReadiness(ctx context.Context) error {
	var errs []error
	if c.LocalStore != nil {
		if err := c.LocalStore.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("local store: %w", err))
		}
	}
	if c.DocumentStore != nil {
		if err := c.DocumentStore.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("remote store: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Close releases the stores in reverse order of creation
func (c *AppComponents) Close() {
	for i := len(c.cleanups) - 1; i >= 0; i-- {
		c.cleanups[i]()
	}
	c.cleanups = nil
	slog.Debug("Application components closed")
}

func (c *AppComponents) onClose(fn func()) {
	c.cleanups = append(c.cleanups, fn)
}
