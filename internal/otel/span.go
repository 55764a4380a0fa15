// Package otel holds the span helpers and attribute keys shared by the sync
// manager and the remote stores.
package otel

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys recorded on per-family sync spans
const (
	AttrSyncFamily      = attribute.Key("sync.family")
	AttrSyncOperation   = attribute.Key("sync.operation")
	AttrUploadedCount   = attribute.Key("sync.uploaded")
	AttrDownloadedCount = attribute.Key("sync.downloaded")
	AttrSkippedCount    = attribute.Key("sync.skipped")
)

// StartSpan starts a span on tracer. With a nil tracer the span already in
// ctx is returned, so untraced callers pay nothing.
func StartSpan(
	ctx context.Context,
	tracer trace.Tracer,
	name string,
	opts ...trace.SpanStartOption,
) (context.Context, trace.Span) {
	if tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, name, opts...)
}

// RecordError marks span as failed. The status text is fixed; the error
// itself only goes into the exception event, since remote errors can carry
// connection strings.
func RecordError(span trace.Span, err error) {
	if err == nil || span == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, "operation failed")
}
