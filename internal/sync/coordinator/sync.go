package coordinator

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aquatrack/hydrosync/internal/codec"
	"github.com/aquatrack/hydrosync/internal/remote"
	"github.com/aquatrack/hydrosync/internal/status"
	pkgsync "github.com/aquatrack/hydrosync/internal/sync"
)

func (c *defaultCoordinator) SyncAll(ctx context.Context) (*pkgsync.Report, error) {
	uid, ok := c.identity.CurrentUserID(ctx)
	if !ok {
		return nil, pkgsync.ErrNotAuthenticated
	}
	return c.flight(pkgsync.OperationSync, uid, func() (*pkgsync.Report, error) {
		return c.performSync(ctx, uid)
	})
}

func (c *defaultCoordinator) DownloadAll(ctx context.Context) (*pkgsync.Report, error) {
	uid, ok := c.identity.CurrentUserID(ctx)
	if !ok {
		return nil, pkgsync.ErrNotAuthenticated
	}
	return c.flight(pkgsync.OperationDownload, uid, func() (*pkgsync.Report, error) {
		return c.measure(ctx, pkgsync.OperationDownload, c.manager.DownloadAll)
	})
}

func (c *defaultCoordinator) UploadAll(ctx context.Context) (*pkgsync.Report, error) {
	uid, ok := c.identity.CurrentUserID(ctx)
	if !ok {
		return nil, pkgsync.ErrNotAuthenticated
	}
	return c.flight(pkgsync.OperationUpload, uid, func() (*pkgsync.Report, error) {
		return c.measure(ctx, pkgsync.OperationUpload, c.manager.UploadAll)
	})
}

// flight runs fn once per operation and user at a time; concurrent callers
// share the result.
func (c *defaultCoordinator) flight(
	op pkgsync.Operation,
	uid string,
	fn func() (*pkgsync.Report, error),
) (*pkgsync.Report, error) {
	v, err, shared := c.flights.Do(string(op)+"/"+uid, func() (any, error) {
		return fn()
	})
	if shared {
		slog.Debug("Joined in-flight sync operation", "operation", op, "user", uid)
	}
	report, _ := v.(*pkgsync.Report)
	return report, err
}

// performSync executes one full sync and publishes its status
func (c *defaultCoordinator) performSync(ctx context.Context, uid string) (*pkgsync.Report, error) {
	c.restoreFor(ctx, uid)

	c.publish(ctx, uid, status.Syncing(c.broadcaster.Current(), c.now()))
	slog.Info("Starting sync operation", "user", uid)

	report, err := c.measure(ctx, pkgsync.OperationSync, c.manager.SyncAll)
	if err != nil {
		slog.Error("Sync failed", "user", uid, "error", err)
		c.publish(ctx, uid, status.Failed(c.broadcaster.Current(), errorMessage(err)))
		return report, err
	}

	now := c.now()
	c.stampLastSync(ctx, uid, now)
	c.publish(ctx, uid, status.Success(c.broadcaster.Current(), now))

	totals := report.Totals()
	slog.Info("Sync completed successfully",
		"user", uid,
		"uploaded", totals.Uploaded,
		"downloaded", totals.Downloaded,
		"skipped", totals.Skipped,
		"duration", report.Duration)
	return report, nil
}

// measure runs one manager operation and records its metrics
func (c *defaultCoordinator) measure(
	ctx context.Context,
	op pkgsync.Operation,
	run func(context.Context) (*pkgsync.Report, error),
) (*pkgsync.Report, error) {
	start := time.Now()
	report, err := run(ctx)

	c.syncMetrics.RecordSyncDuration(ctx, string(op), time.Since(start), err == nil)
	if report != nil {
		for _, res := range report.Results {
			c.syncMetrics.RecordDocuments(ctx, res.Family, res.Uploaded, res.Downloaded, res.Skipped)
		}
	}
	return report, err
}

// stampLastSync merge-writes lastSyncAt on the user root document. A failure
// does not fail the sync.
func (c *defaultCoordinator) stampLastSync(ctx context.Context, uid string, now time.Time) {
	err := c.docs.Set(ctx, remote.UserRef(uid), codec.EncodeLastSyncAt(now), remote.Merge())
	if err != nil {
		slog.Warn("Failed to stamp last sync time",
			"user", uid,
			"error", err)
	}
}

func (c *defaultCoordinator) publish(ctx context.Context, uid string, s status.SyncStatus) {
	if err := c.broadcaster.Publish(s); err != nil {
		slog.Error("Rejected sync status change",
			"user", uid,
			"phase", s.Phase,
			"error", err)
		return
	}
	c.saveStatus(ctx, uid, s)
}

func (c *defaultCoordinator) saveStatus(ctx context.Context, uid string, s status.SyncStatus) {
	if c.persistence == nil {
		return
	}
	if err := c.persistence.SaveStatus(ctx, uid, &s); err != nil {
		slog.Error("Error updating sync status",
			"user", uid,
			"error", err)
	}
}

// periodicSync is one tick of the background loop
func (c *defaultCoordinator) periodicSync(ctx context.Context) {
	_, err := c.SyncAll(ctx)
	switch {
	case err == nil:
	case errors.Is(err, pkgsync.ErrNotAuthenticated):
		slog.Debug("Skipping periodic sync, no user signed in")
	case ctx.Err() != nil:
		slog.Debug("Periodic sync cancelled")
	default:
		slog.Warn("Periodic sync failed", "error", err)
	}
}

// errorMessage is the text shown in an Error status
func errorMessage(err error) string {
	var syncErr *pkgsync.Error
	if errors.As(err, &syncErr) && syncErr.Message != "" {
		return syncErr.Message
	}
	return err.Error()
}
