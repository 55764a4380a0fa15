package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/trace"

	"github.com/aquatrack/hydrosync/database"
	"github.com/aquatrack/hydrosync/internal/config"
	"github.com/aquatrack/hydrosync/internal/db"
	"github.com/aquatrack/hydrosync/internal/remote"
	"github.com/aquatrack/hydrosync/internal/remote/postgres"
)

// DatabaseFactory creates the PostgreSQL-backed document store.
type DatabaseFactory struct {
	pool   *pgxpool.Pool
	tracer trace.Tracer
}

var _ Factory = (*DatabaseFactory)(nil)

// NewDatabaseFactory connects to the configured PostgreSQL database and
// applies pending migrations before any document is read.
func NewDatabaseFactory(ctx context.Context, cfg *config.Config, tracer trace.Tracer) (*DatabaseFactory, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.Remote == nil || cfg.Remote.Database == nil {
		return nil, fmt.Errorf("database configuration is required for the postgres remote")
	}

	slog.Info("Creating database-backed storage factory")

	connStr, err := cfg.Remote.Database.GetConnectionString()
	if err != nil {
		return nil, fmt.Errorf("failed to build connection string: %w", err)
	}

	pool, err := db.NewPool(ctx, cfg.Remote.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}

	if err := database.MigrateUp(connStr); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &DatabaseFactory{
		pool:   pool,
		tracer: tracer,
	}, nil
}

// CreateDocumentStore creates the postgres document store on the shared pool.
func (d *DatabaseFactory) CreateDocumentStore(_ context.Context) (remote.DocumentStore, error) {
	slog.Debug("Creating database-backed document store")

	opts := []postgres.Option{
		postgres.WithConnectionPool(d.pool),
	}
	if d.tracer != nil {
		opts = append(opts, postgres.WithTracer(d.tracer))
		slog.Debug("Database store tracing enabled")
	}

	return postgres.New(opts...)
}

// Cleanup closes the database connection pool.
func (d *DatabaseFactory) Cleanup() {
	if d.pool != nil {
		slog.Info("Closing database connection pool")
		d.pool.Close()
	}
}
