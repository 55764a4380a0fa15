// Package memory provides an in-memory implementation of the remote DocumentStore.
package memory

import (
	"context"
	"sync"

	"github.com/aquatrack/hydrosync/internal/remote"
)

// store keeps documents grouped by collection. Reads and writes copy the
// documents so callers never share maps with the store.
type store struct {
	mu          sync.RWMutex
	collections map[string]map[string]remote.Document
}

var _ remote.DocumentStore = (*store)(nil)

// New creates an empty in-memory document store.
func New() remote.DocumentStore {
	return &store{
		collections: make(map[string]map[string]remote.Document),
	}
}

func (s *store) Get(ctx context.Context, ref remote.Ref) (remote.Document, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if err := ref.Validate(); err != nil {
		return nil, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.collections[ref.Collection][ref.ID]
	if !ok {
		return nil, false, nil
	}
	return doc.Clone(), true, nil
}

func (s *store) Set(ctx context.Context, ref remote.Ref, doc remote.Document, opts ...remote.SetOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ref.Validate(); err != nil {
		return err
	}
	o := remote.ApplySetOptions(opts...)

	s.mu.Lock()
	defer s.mu.Unlock()

	coll, ok := s.collections[ref.Collection]
	if !ok {
		coll = make(map[string]remote.Document)
		s.collections[ref.Collection] = coll
	}

	if existing, found := coll[ref.ID]; found && o.Merge {
		coll[ref.ID] = remote.MergeDocuments(existing, doc)
		return nil
	}
	next := doc.Clone()
	if next == nil {
		next = remote.Document{}
	}
	coll[ref.ID] = next
	return nil
}

func (s *store) List(ctx context.Context, collection string) ([]remote.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	coll := s.collections[collection]
	out := make([]remote.Snapshot, 0, len(coll))
	for id, doc := range coll {
		out = append(out, remote.Snapshot{ID: id, Data: doc.Clone()})
	}
	remote.SortSnapshots(out)
	return out, nil
}

func (*store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (*store) Close() error {
	return nil
}
