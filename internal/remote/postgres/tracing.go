package postgres

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	// TracerName is the name used for the postgres document store tracer
	TracerName = "github.com/aquatrack/hydrosync/remote/postgres"
)

// Custom attribute keys for document operations
const (
	AttrCollection  = attribute.Key("document.collection")
	AttrMerge       = attribute.Key("document.merge")
	AttrResultCount = attribute.Key("result.count")
)

// startSpan starts a new span for database operations.
// If the tracer is nil, it returns a no-op span from the context.
func (s *store) startSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	if s.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	opts = append([]trace.SpanStartOption{trace.WithAttributes(semconv.DBSystemPostgreSQL)}, opts...)
	return s.tracer.Start(ctx, name, opts...)
}

// recordError records an error on a span and sets the span status to error.
// The status description stays generic so SQL and connection details only
// appear in span events.
func recordError(span trace.Span, err error) {
	if err != nil && span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "operation failed")
	}
}
