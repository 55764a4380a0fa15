package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

func TestNewDisabled(t *testing.T) {
	t.Parallel()

	for _, opts := range [][]Option{
		nil,
		{WithTelemetryConfig(&Config{Enabled: false})},
		{WithTelemetryConfig(&Config{Enabled: true})},
	} {
		tel, err := New(context.Background(), opts...)
		require.NoError(t, err)
		assert.IsType(t, tracenoop.TracerProvider{}, tel.TracerProvider())
		assert.IsType(t, metricnoop.MeterProvider{}, tel.MeterProvider())
		assert.Nil(t, tel.MetricsHandler())
		require.NoError(t, tel.Shutdown(context.Background()))
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), WithTelemetryConfig(&Config{
		Enabled: true,
		Tracing: &TracingConfig{Enabled: true, Sampling: -1},
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid telemetry configuration")
}

func TestNewWithPrometheusAndTracing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	exporter := tracetest.NewInMemoryExporter()
	tel, err := New(ctx,
		WithTelemetryConfig(&Config{
			Enabled: true,
			Tracing: &TracingConfig{Enabled: true, Sampling: 1},
			Metrics: &MetricsConfig{Enabled: true, Exporter: ExporterPrometheus},
		}),
		WithTelemetrySpanExporter(exporter),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tel.Shutdown(ctx) })

	assert.IsType(t, &sdktrace.TracerProvider{}, tel.TracerProvider())
	assert.IsType(t, &sdkmetric.MeterProvider{}, tel.MeterProvider())

	metrics, err := NewSyncMetrics(tel.MeterProvider())
	require.NoError(t, err)
	metrics.RecordDocuments(ctx, "waterEntries", 3, 0, 0)

	handler := tel.MetricsHandler()
	require.NotNil(t, handler)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "hydrosync_sync_documents_total")

	_, span := tel.Tracer("test").Start(ctx, "op")
	span.End()
	require.NoError(t, tel.TracerProvider().(*sdktrace.TracerProvider).ForceFlush(ctx))
	assert.Len(t, exporter.GetSpans(), 1)
}
