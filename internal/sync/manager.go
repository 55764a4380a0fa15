package sync

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/aquatrack/hydrosync/internal/otel"
)

// Operation names a manager run.
type Operation string

// Manager operations
const (
	OperationSync     Operation = "sync"
	OperationUpload   Operation = "upload"
	OperationDownload Operation = "download"
)

// Report collects the per-family results of one manager run, in run order.
type Report struct {
	Operation Operation `json:"operation"`
	Results   []Result  `json:"results"`
	Duration  string    `json:"duration"`
}

// Totals sums the per-family counters.
func (r *Report) Totals() Result {
	var total Result
	if r == nil {
		return total
	}
	for _, res := range r.Results {
		total.Uploaded += res.Uploaded
		total.Downloaded += res.Downloaded
		total.Skipped += res.Skipped
	}
	return total
}

// Manager runs the family syncers for the signed-in user
//
//go:generate mockgen -destination=mocks/mock_manager.go -package=mocks github.com/aquatrack/hydrosync/internal/sync Manager
type Manager interface {
	// SyncAll merges every family in order and stops at the first failure.
	// Families that already finished keep their changes.
	SyncAll(ctx context.Context) (*Report, error)

	// DownloadAll copies every family from the remote into the local store.
	DownloadAll(ctx context.Context) (*Report, error)

	// UploadAll copies every family from the local store to the remote.
	UploadAll(ctx context.Context) (*Report, error)
}

// ManagerOption configures the default manager
type ManagerOption func(*defaultSyncManager)

// WithTracer sets the OpenTelemetry tracer used for per-family spans.
// If not set, tracing is disabled.
func WithTracer(tracer trace.Tracer) ManagerOption {
	return func(m *defaultSyncManager) {
		m.tracer = tracer
	}
}

// defaultSyncManager is the default implementation of Manager
type defaultSyncManager struct {
	syncers []Syncer
	tracer  trace.Tracer
}

// NewDefaultSyncManager creates a manager running syncers in the given order.
func NewDefaultSyncManager(syncers []Syncer, opts ...ManagerOption) Manager {
	m := &defaultSyncManager{syncers: syncers}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *defaultSyncManager) SyncAll(ctx context.Context) (*Report, error) {
	return m.run(ctx, OperationSync, func(ctx context.Context, s Syncer) (*Result, error) {
		return s.Sync(ctx)
	})
}

func (m *defaultSyncManager) DownloadAll(ctx context.Context) (*Report, error) {
	return m.run(ctx, OperationDownload, func(ctx context.Context, s Syncer) (*Result, error) {
		return s.Download(ctx)
	})
}

func (m *defaultSyncManager) UploadAll(ctx context.Context) (*Report, error) {
	return m.run(ctx, OperationUpload, func(ctx context.Context, s Syncer) (*Result, error) {
		return s.Upload(ctx)
	})
}

func (m *defaultSyncManager) run(
	ctx context.Context,
	op Operation,
	step func(context.Context, Syncer) (*Result, error),
) (*Report, error) {
	start := time.Now()
	report := &Report{Operation: op}

	for _, s := range m.syncers {
		if err := ctx.Err(); err != nil {
			report.Duration = time.Since(start).String()
			return report, err
		}

		res, err := m.runFamily(ctx, op, s, step)
		if res != nil {
			report.Results = append(report.Results, *res)
		}
		if err != nil {
			report.Duration = time.Since(start).String()
			slog.Error("Sync step failed",
				"operation", op,
				"family", s.Family(),
				"error", err)
			return report, err
		}
	}

	report.Duration = time.Since(start).String()
	return report, nil
}

func (m *defaultSyncManager) runFamily(
	ctx context.Context,
	op Operation,
	s Syncer,
	step func(context.Context, Syncer) (*Result, error),
) (*Result, error) {
	ctx, span := otel.StartSpan(ctx, m.tracer, "sync."+string(op)+"."+s.Family(),
		trace.WithAttributes(
			otel.AttrSyncFamily.String(s.Family()),
			otel.AttrSyncOperation.String(string(op)),
		))
	defer span.End()

	res, err := step(ctx, s)
	if res != nil {
		span.SetAttributes(
			otel.AttrUploadedCount.Int(res.Uploaded),
			otel.AttrDownloadedCount.Int(res.Downloaded),
			otel.AttrSkippedCount.Int(res.Skipped),
		)
	}
	otel.RecordError(span, err)
	return res, err
}
