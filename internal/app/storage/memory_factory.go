package storage

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aquatrack/hydrosync/internal/remote"
	"github.com/aquatrack/hydrosync/internal/remote/memory"
)

// MemoryFactory creates an in-process document store. Data does not outlive
// the process, which makes it suitable for tests and local experiments.
type MemoryFactory struct {
	once  sync.Once
	store remote.DocumentStore
}

var _ Factory = (*MemoryFactory)(nil)

// NewMemoryFactory creates a new in-memory storage factory
func NewMemoryFactory() *MemoryFactory {
	return &MemoryFactory{}
}

// CreateDocumentStore returns the in-memory document store
func (m *MemoryFactory) CreateDocumentStore(_ context.Context) (remote.DocumentStore, error) {
	m.once.Do(func() {
		slog.Warn("Using in-memory remote store; synced data is lost on exit")
		m.store = memory.New()
	})
	return m.store, nil
}

// Cleanup is a no-op for the in-memory factory
func (*MemoryFactory) Cleanup() {}
