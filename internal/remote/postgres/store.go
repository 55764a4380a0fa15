// Package postgres provides a PostgreSQL-backed implementation of the remote
// DocumentStore. Documents are kept as JSONB rows keyed by collection and id.
package postgres

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/trace"

	"github.com/aquatrack/hydrosync/internal/remote"
)

const (
	getQuery = `SELECT data FROM documents WHERE collection = $1 AND doc_id = $2`

	replaceQuery = `
INSERT INTO documents (collection, doc_id, data, updated_at)
VALUES ($1, $2, $3::jsonb, now())
ON CONFLICT (collection, doc_id)
DO UPDATE SET data = EXCLUDED.data, updated_at = now()`

	mergeQuery = `
INSERT INTO documents (collection, doc_id, data, updated_at)
VALUES ($1, $2, $3::jsonb, now())
ON CONFLICT (collection, doc_id)
DO UPDATE SET data = documents.data || EXCLUDED.data, updated_at = now()`

	listQuery = `SELECT doc_id, data FROM documents WHERE collection = $1 ORDER BY doc_id`
)

// options holds configuration options for the postgres document store
type options struct {
	pool   *pgxpool.Pool
	tracer trace.Tracer
}

// Option is a functional option for configuring the postgres document store
type Option func(*options) error

// WithConnectionPool sets the pgx pool used by the store. The caller is
// responsible for closing the pool when it is done.
func WithConnectionPool(pool *pgxpool.Pool) Option {
	return func(o *options) error {
		if pool == nil {
			return fmt.Errorf("pgx pool is required")
		}
		o.pool = pool
		return nil
	}
}

// WithTracer sets the OpenTelemetry tracer for the store.
// If not set, tracing is disabled.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) error {
		o.tracer = tracer
		return nil
	}
}

type store struct {
	pool   *pgxpool.Pool
	tracer trace.Tracer
}

var _ remote.DocumentStore = (*store)(nil)

// New creates a postgres-backed document store with the given options.
func New(opts ...Option) (remote.DocumentStore, error) {
	o := &options{}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if o.pool == nil {
		return nil, fmt.Errorf("pgx pool is required")
	}

	return &store{
		pool:   o.pool,
		tracer: o.tracer,
	}, nil
}

func (s *store) Get(ctx context.Context, ref remote.Ref) (remote.Document, bool, error) {
	if err := ref.Validate(); err != nil {
		return nil, false, err
	}

	ctx, span := s.startSpan(ctx, "remote.postgres.Get", trace.WithAttributes(AttrCollection.String(ref.Collection)))
	defer span.End()

	var raw []byte
	err := s.pool.QueryRow(ctx, getQuery, ref.Collection, ref.ID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		recordError(span, err)
		return nil, false, fmt.Errorf("failed to get document %s: %w", ref, err)
	}

	doc, err := decodeDocument(raw)
	if err != nil {
		recordError(span, err)
		return nil, false, fmt.Errorf("failed to decode document %s: %w", ref, err)
	}
	return doc, true, nil
}

func (s *store) Set(ctx context.Context, ref remote.Ref, doc remote.Document, opts ...remote.SetOption) error {
	if err := ref.Validate(); err != nil {
		return err
	}
	o := remote.ApplySetOptions(opts...)

	ctx, span := s.startSpan(ctx, "remote.postgres.Set", trace.WithAttributes(
		AttrCollection.String(ref.Collection),
		AttrMerge.Bool(o.Merge),
	))
	defer span.End()

	if doc == nil {
		doc = remote.Document{}
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		recordError(span, err)
		return fmt.Errorf("failed to encode document %s: %w", ref, err)
	}

	query := replaceQuery
	if o.Merge {
		query = mergeQuery
	}
	if _, err := s.pool.Exec(ctx, query, ref.Collection, ref.ID, string(payload)); err != nil {
		recordError(span, err)
		return fmt.Errorf("failed to write document %s: %w", ref, err)
	}
	return nil
}

func (s *store) List(ctx context.Context, collection string) ([]remote.Snapshot, error) {
	ctx, span := s.startSpan(ctx, "remote.postgres.List", trace.WithAttributes(AttrCollection.String(collection)))
	defer span.End()

	rows, err := s.pool.Query(ctx, listQuery, collection)
	if err != nil {
		recordError(span, err)
		return nil, fmt.Errorf("failed to list collection %s: %w", collection, err)
	}
	defer rows.Close()

	var out []remote.Snapshot
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			recordError(span, err)
			return nil, fmt.Errorf("failed to scan document in %s: %w", collection, err)
		}
		out = append(out, snapshotFromRow(collection, id, raw))
	}
	if err := rows.Err(); err != nil {
		recordError(span, err)
		return nil, fmt.Errorf("failed to list collection %s: %w", collection, err)
	}

	span.SetAttributes(AttrResultCount.Int(len(out)))
	return out, nil
}

func (s *store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close is a no-op; the pool belongs to the caller.
func (*store) Close() error {
	return nil
}

// snapshotFromRow decodes one listed row. A row whose data is not a JSON
// object is returned without data so callers still see its id.
func snapshotFromRow(collection, id string, raw []byte) remote.Snapshot {
	doc, err := decodeDocument(raw)
	if err != nil {
		slog.Warn("Listing malformed remote document",
			"collection", collection,
			"id", id,
			"error", err)
		return remote.Snapshot{ID: id}
	}
	return remote.Snapshot{ID: id, Data: doc}
}

// decodeDocument keeps numbers as json.Number so int64 values survive the
// round trip through JSONB.
func decodeDocument(raw []byte) (remote.Document, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc remote.Document
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = remote.Document{}
	}
	return doc, nil
}
