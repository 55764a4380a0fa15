package remote

import (
	"context"
	"maps"
	"slices"
)

//go:generate mockgen -destination=mocks/mock_store.go -package=mocks -source=store.go DocumentStore

// Document is the field map of a remote document. Values are JSON compatible:
// strings, booleans, numbers, []any and map[string]any.
type Document map[string]any

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return map[string]any(Document(t).Clone())
	case Document:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

// Snapshot is a document read from a collection listing. Data is nil when
// the stored document is not a readable object.
type Snapshot struct {
	ID   string
	Data Document
}

// SortSnapshots orders snapshots by id so listings are deterministic across backends.
func SortSnapshots(s []Snapshot) {
	slices.SortFunc(s, func(a, b Snapshot) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})
}

// SetOptions controls a write.
type SetOptions struct {
	// Merge overlays the provided fields onto the existing document instead
	// of replacing it.
	Merge bool
}

// SetOption configures a write.
type SetOption func(*SetOptions)

// Merge requests a field overlay write.
func Merge() SetOption {
	return func(o *SetOptions) {
		o.Merge = true
	}
}

// ApplySetOptions folds the options into a SetOptions value.
func ApplySetOptions(opts ...SetOption) SetOptions {
	var o SetOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// MergeDocuments overlays patch onto base and returns the result. Neither
// argument is modified.
func MergeDocuments(base, patch Document) Document {
	out := base.Clone()
	if out == nil {
		out = Document{}
	}
	maps.Copy(out, patch.Clone())
	return out
}

// DocumentStore is the remote per-user document store.
type DocumentStore interface {
	// Get reads a single document. The boolean reports whether it exists.
	Get(ctx context.Context, ref Ref) (Document, bool, error)
	// Set writes a document, replacing it unless Merge is given.
	Set(ctx context.Context, ref Ref, doc Document, opts ...SetOption) error
	// List returns every document directly inside the collection, ordered by id.
	List(ctx context.Context, collection string) ([]Snapshot, error)
	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error
	// Close releases the resources held by the store.
	Close() error
}
