package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aquatrack/hydrosync/internal/config"
	"github.com/aquatrack/hydrosync/internal/remote"
	"github.com/aquatrack/hydrosync/internal/remote/mongo"
)

// MongoFactory creates the MongoDB-backed document store.
type MongoFactory struct {
	store remote.DocumentStore
}

var _ Factory = (*MongoFactory)(nil)

// NewMongoFactory connects to the configured MongoDB deployment.
func NewMongoFactory(ctx context.Context, cfg *config.Config) (*MongoFactory, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.Remote == nil || cfg.Remote.Mongo == nil {
		return nil, fmt.Errorf("mongo configuration is required for the mongo remote")
	}

	uri, err := cfg.Remote.Mongo.GetURI()
	if err != nil {
		return nil, err
	}

	store, err := mongo.Connect(ctx, uri, cfg.Remote.Mongo.GetDatabase())
	if err != nil {
		return nil, err
	}

	return &MongoFactory{store: store}, nil
}

// CreateDocumentStore returns the connected mongo store.
func (m *MongoFactory) CreateDocumentStore(_ context.Context) (remote.DocumentStore, error) {
	return m.store, nil
}

// Cleanup disconnects the mongo client.
func (m *MongoFactory) Cleanup() {
	if m.store == nil {
		return
	}
	slog.Info("Disconnecting from mongo")
	if err := m.store.Close(); err != nil {
		slog.Error("Failed to disconnect from mongo", "error", err)
	}
}
