package coordinator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	gosync "sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/aquatrack/hydrosync/internal/codec"
	"github.com/aquatrack/hydrosync/internal/identity"
	"github.com/aquatrack/hydrosync/internal/remote"
	"github.com/aquatrack/hydrosync/internal/status"
	pkgsync "github.com/aquatrack/hydrosync/internal/sync"
	"github.com/aquatrack/hydrosync/internal/telemetry"
)

// InterruptedMessage is the error message of a persisted status that was
// still Syncing when the process stopped.
const InterruptedMessage = "Previous sync was interrupted"

// ErrAlreadyStarted is returned by Start when the loop has already been started.
var ErrAlreadyStarted = errors.New("sync coordinator already started")

// Coordinator runs syncs for the signed-in user and publishes their status
//
//go:generate mockgen -destination=mocks/mock_coordinator.go -package=mocks github.com/aquatrack/hydrosync/internal/sync/coordinator Coordinator
type Coordinator interface {
	// SyncAll merges all families with the remote. The status goes to
	// Syncing, then to Success or Error. Without a signed-in user it returns
	// sync.ErrNotAuthenticated and the status is not changed.
	SyncAll(ctx context.Context) (*pkgsync.Report, error)

	// DownloadAll copies all families from the remote. It does not publish
	// a status.
	DownloadAll(ctx context.Context) (*pkgsync.Report, error)

	// UploadAll copies all families to the remote. It does not publish a
	// status.
	UploadAll(ctx context.Context) (*pkgsync.Report, error)

	// CurrentStatus returns the latest published status
	CurrentStatus() status.SyncStatus

	// ObserveSyncStatus streams the status until ctx ends, starting with
	// the current one
	ObserveSyncStatus(ctx context.Context) <-chan status.SyncStatus

	// LastSyncTime reads the lastSyncAt watermark of the signed-in user from
	// the remote. It returns nil when no user is signed in or no sync has
	// completed yet.
	LastSyncTime(ctx context.Context) (*time.Time, error)

	// RestoreStatus loads the persisted status of the signed-in user
	RestoreStatus(ctx context.Context) error

	// Start runs the periodic sync loop until ctx is cancelled or Stop is
	// called. Without an interval it only waits.
	Start(ctx context.Context) error

	// Stop ends the loop started by Start and waits for it
	Stop() error
}

// defaultCoordinator is the default implementation of Coordinator
type defaultCoordinator struct {
	manager  pkgsync.Manager
	identity identity.Provider
	docs     remote.DocumentStore

	broadcaster *status.Broadcaster
	persistence status.StatusPersistence
	syncMetrics *telemetry.SyncMetrics

	interval time.Duration
	now      func() time.Time
	flights  singleflight.Group

	mu         gosync.Mutex
	statusUser string
	restored   bool

	// Lifecycle management
	cancelFunc context.CancelFunc
	done       chan struct{}
	stopped    bool
}

// Option is a function that configures the coordinator
type Option func(*defaultCoordinator)

// WithSyncMetrics sets the sync metrics for the coordinator
func WithSyncMetrics(metrics *telemetry.SyncMetrics) Option {
	return func(c *defaultCoordinator) {
		c.syncMetrics = metrics
	}
}

// WithStatusPersistence stores every published status per user
func WithStatusPersistence(p status.StatusPersistence) Option {
	return func(c *defaultCoordinator) {
		c.persistence = p
	}
}

// WithInterval enables the periodic loop run by Start
func WithInterval(interval time.Duration) Option {
	return func(c *defaultCoordinator) {
		c.interval = interval
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(c *defaultCoordinator) {
		c.now = now
	}
}

// New creates a new coordinator with injected dependencies
func New(
	manager pkgsync.Manager,
	ids identity.Provider,
	docs remote.DocumentStore,
	opts ...Option,
) Coordinator {
	c := &defaultCoordinator{
		manager:     manager,
		identity:    ids,
		docs:        docs,
		broadcaster: status.NewBroadcaster(status.Idle()),
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *defaultCoordinator) CurrentStatus() status.SyncStatus {
	return c.broadcaster.Current()
}

func (c *defaultCoordinator) ObserveSyncStatus(ctx context.Context) <-chan status.SyncStatus {
	return c.broadcaster.Subscribe(ctx)
}

func (c *defaultCoordinator) LastSyncTime(ctx context.Context) (*time.Time, error) {
	uid, ok := c.identity.CurrentUserID(ctx)
	if !ok {
		return nil, nil
	}

	doc, found, err := c.docs.Get(ctx, remote.UserRef(uid))
	if err != nil {
		return nil, fmt.Errorf("failed to read user document: %w", err)
	}
	if !found {
		return nil, nil
	}
	return codec.DecodeLastSyncAt(uid, doc)
}

func (c *defaultCoordinator) RestoreStatus(ctx context.Context) error {
	uid, ok := c.identity.CurrentUserID(ctx)
	if !ok {
		return nil
	}
	c.restoreFor(ctx, uid)
	return nil
}

// restoreFor loads the persisted status of uid the first time uid is seen,
// and every time the signed-in user changes.
func (c *defaultCoordinator) restoreFor(ctx context.Context, uid string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.restored && c.statusUser == uid {
		return
	}
	c.statusUser = uid
	c.restored = true

	restored := status.Idle()
	if c.persistence != nil {
		loaded, err := c.persistence.LoadStatus(ctx, uid)
		if err != nil {
			slog.Warn("Failed to load sync status, starting idle",
				"user", uid,
				"error", err)
		} else if loaded != nil {
			restored = *loaded
		}
	}

	if restored.Phase == status.SyncPhaseSyncing {
		restored = status.Failed(restored, InterruptedMessage)
		c.saveStatus(ctx, uid, restored)
	}
	c.broadcaster.Restore(restored)
}

// Start begins the periodic sync loop
func (c *defaultCoordinator) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		slog.Info("Sync coordinator was stopped before it started")
		return nil
	}
	if c.done != nil {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}
	coordCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	c.cancelFunc = cancel
	c.done = done
	c.mu.Unlock()

	defer func() {
		cancel()
		close(done)
		slog.Info("Background sync coordinator shutting down")
	}()

	if c.interval <= 0 {
		slog.Info("Periodic sync disabled")
		<-coordCtx.Done()
		return nil
	}

	pollingInterval := calculatePollingInterval(c.interval)
	slog.Info("Starting background sync coordinator",
		"base_interval", c.interval,
		"actual_interval", pollingInterval)

	ticker := time.NewTicker(pollingInterval)
	defer ticker.Stop()

	c.periodicSync(coordCtx)

	for {
		select {
		case <-ticker.C:
			c.periodicSync(coordCtx)
			ticker.Reset(calculatePollingInterval(c.interval))
		case <-coordCtx.Done():
			slog.Info("Sync coordinator stopping")
			return nil
		}
	}
}

// Stop gracefully stops the coordinator. A coordinator stopped before its
// loop started never starts it.
func (c *defaultCoordinator) Stop() error {
	c.mu.Lock()
	c.stopped = true
	cancel, done := c.cancelFunc, c.done
	c.mu.Unlock()

	if cancel != nil {
		slog.Info("Stopping sync coordinator")
		cancel()
		<-done
	}
	return nil
}

// calculatePollingInterval applies a random offset of up to a quarter of
// base in either direction, so devices of one user do not sync in lockstep.
func calculatePollingInterval(base time.Duration) time.Duration {
	jitter := base / 4
	if jitter <= 0 {
		return base
	}
	//nolint:gosec // G404: Non-cryptographic randomness is sufficient for polling jitter
	offset := time.Duration(rand.Int64N(int64(2*jitter))) - jitter
	return base + offset
}
