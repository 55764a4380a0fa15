package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// SyncMetricsMeterName is the name used for the sync metrics meter
const SyncMetricsMeterName = "github.com/aquatrack/hydrosync/sync"

// Document directions recorded by SyncMetrics.RecordDocuments
const (
	DirectionUploaded   = "uploaded"
	DirectionDownloaded = "downloaded"
	DirectionSkipped    = "skipped"
)

// SyncMetrics holds the OpenTelemetry instruments for sync runs
type SyncMetrics struct {
	syncDuration metric.Float64Histogram
	documents    metric.Int64Counter
}

// NewSyncMetrics creates the sync instruments. A nil provider yields nil
// metrics, and every method on a nil *SyncMetrics is a no-op.
func NewSyncMetrics(provider metric.MeterProvider) (*SyncMetrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(SyncMetricsMeterName)

	syncDuration, err := meter.Float64Histogram(
		"hydrosync_sync_duration_seconds",
		metric.WithDescription("Duration of sync operations in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60),
	)
	if err != nil {
		return nil, err
	}

	documents, err := meter.Int64Counter(
		"hydrosync_sync_documents_total",
		metric.WithDescription("Documents moved by sync, per family and direction"),
		metric.WithUnit("{document}"),
	)
	if err != nil {
		return nil, err
	}

	return &SyncMetrics{
		syncDuration: syncDuration,
		documents:    documents,
	}, nil
}

// RecordSyncDuration records how long one operation ("sync", "upload",
// "download") took.
func (m *SyncMetrics) RecordSyncDuration(ctx context.Context, operation string, duration time.Duration, success bool) {
	if m == nil || m.syncDuration == nil {
		return
	}

	m.syncDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.Bool("success", success),
	))
}

// RecordDocuments adds the per-family counters of one run. Zero counts are
// not recorded.
func (m *SyncMetrics) RecordDocuments(ctx context.Context, family string, uploaded, downloaded, skipped int) {
	if m == nil || m.documents == nil {
		return
	}

	for direction, n := range map[string]int{
		DirectionUploaded:   uploaded,
		DirectionDownloaded: downloaded,
		DirectionSkipped:    skipped,
	} {
		if n == 0 {
			continue
		}
		m.documents.Add(ctx, int64(n), metric.WithAttributes(
			attribute.String("family", family),
			attribute.String("direction", direction),
		))
	}
}
