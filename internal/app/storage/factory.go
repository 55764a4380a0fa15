// Package storage provides factory functions for creating the remote document
// store. It keeps the choice of backend (memory, postgres, mongo) in a single
// place and owns the lifecycle of the connections behind it.
package storage

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"

	"github.com/aquatrack/hydrosync/internal/config"
	"github.com/aquatrack/hydrosync/internal/remote"
)

//go:generate mockgen -destination=mocks/mock_factory.go -package=mocks -source=factory.go Factory

// Factory creates the remote document store for the configured backend.
type Factory interface {
	// CreateDocumentStore returns the remote store. Repeated calls return
	// the same instance.
	CreateDocumentStore(ctx context.Context) (remote.DocumentStore, error)

	// Cleanup releases any resources held by this factory.
	// For database factories, this closes the connection pool.
	// Should be called when the application shuts down.
	Cleanup()
}

// FactoryOption configures NewStorageFactory
type FactoryOption func(*factoryOptions)

type factoryOptions struct {
	tracer trace.Tracer
}

// WithTracer sets the OpenTelemetry tracer for backends that support it.
// If not set, tracing will be disabled (no-op).
func WithTracer(tracer trace.Tracer) FactoryOption {
	return func(o *factoryOptions) {
		o.tracer = tracer
	}
}

// NewStorageFactory creates a storage factory based on the configured remote type.
func NewStorageFactory(ctx context.Context, cfg *config.Config, opts ...FactoryOption) (Factory, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	o := &factoryOptions{}
	for _, opt := range opts {
		opt(o)
	}

	switch cfg.GetRemoteType() {
	case config.RemoteTypeMemory:
		return NewMemoryFactory(), nil
	case config.RemoteTypePostgres:
		return NewDatabaseFactory(ctx, cfg, o.tracer)
	case config.RemoteTypeMongo:
		return NewMongoFactory(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown remote type: %s", cfg.GetRemoteType())
	}
}
