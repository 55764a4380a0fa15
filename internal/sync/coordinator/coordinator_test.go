package coordinator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/mock/gomock"

	"github.com/aquatrack/hydrosync/internal/config"
	"github.com/aquatrack/hydrosync/internal/identity"
	"github.com/aquatrack/hydrosync/internal/remote"
	"github.com/aquatrack/hydrosync/internal/remote/memory"
	remotemocks "github.com/aquatrack/hydrosync/internal/remote/mocks"
	"github.com/aquatrack/hydrosync/internal/status"
	statusmocks "github.com/aquatrack/hydrosync/internal/status/mocks"
	"github.com/aquatrack/hydrosync/internal/sync"
	syncmocks "github.com/aquatrack/hydrosync/internal/sync/mocks"
	"github.com/aquatrack/hydrosync/internal/telemetry"
)

const testUser = "u1"

var fixedNow = time.Date(2024, 5, 1, 20, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func okReport(op sync.Operation) *sync.Report {
	return &sync.Report{
		Operation: op,
		Results: []sync.Result{
			{Family: remote.WaterEntriesCollection, Uploaded: 2, Downloaded: 1},
			{Family: remote.SettingsCollection},
		},
	}
}

func TestIntervalFromPolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		policy   *config.SyncPolicyConfig
		expected time.Duration
	}{
		{name: "nil policy disables the loop", policy: nil, expected: 0},
		{name: "empty interval disables the loop", policy: &config.SyncPolicyConfig{}, expected: 0},
		{name: "valid interval", policy: &config.SyncPolicyConfig{Interval: "15m"}, expected: 15 * time.Minute},
		{name: "invalid interval", policy: &config.SyncPolicyConfig{Interval: "soon"}, expected: 0},
		{name: "negative interval", policy: &config.SyncPolicyConfig{Interval: "-1m"}, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, IntervalFromPolicy(tt.policy))
		})
	}
}

func TestCalculatePollingInterval(t *testing.T) {
	t.Parallel()

	base := 4 * time.Minute
	for range 100 {
		got := calculatePollingInterval(base)
		assert.GreaterOrEqual(t, got, 3*time.Minute)
		assert.Less(t, got, 5*time.Minute)
	}
	assert.Equal(t, time.Duration(1), calculatePollingInterval(1))
}

func TestSyncAllNotAuthenticated(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	manager := syncmocks.NewMockManager(ctrl)
	persistence := statusmocks.NewMockStatusPersistence(ctrl)
	docs := memory.New()

	c := New(manager, identity.Anonymous(), docs, WithStatusPersistence(persistence))

	for _, op := range []func(context.Context) (*sync.Report, error){c.SyncAll, c.DownloadAll, c.UploadAll} {
		report, err := op(context.Background())
		require.ErrorIs(t, err, sync.ErrNotAuthenticated)
		assert.Nil(t, report)
	}
	assert.Equal(t, status.Idle(), c.CurrentStatus())

	last, err := c.LastSyncTime(context.Background())
	require.NoError(t, err)
	assert.Nil(t, last)
	require.NoError(t, c.RestoreStatus(context.Background()))
}

func TestSyncAllSuccess(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	manager := syncmocks.NewMockManager(ctrl)
	persistence := statusmocks.NewMockStatusPersistence(ctrl)
	docs := memory.New()
	ctx := context.Background()

	persistence.EXPECT().LoadStatus(gomock.Any(), testUser).Return(nil, nil)
	gomock.InOrder(
		persistence.EXPECT().SaveStatus(gomock.Any(), testUser, gomock.Cond(func(x any) bool {
			s, ok := x.(*status.SyncStatus)
			return ok && s.Phase == status.SyncPhaseSyncing
		})).Return(nil),
		manager.EXPECT().SyncAll(gomock.Any()).Return(okReport(sync.OperationSync), nil),
		persistence.EXPECT().SaveStatus(gomock.Any(), testUser, gomock.Cond(func(x any) bool {
			s, ok := x.(*status.SyncStatus)
			return ok && s.Phase == status.SyncPhaseSuccess
		})).Return(nil),
	)

	c := New(manager, identity.Static(testUser), docs,
		WithStatusPersistence(persistence),
		WithClock(clock),
	)

	report, err := c.SyncAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Totals().Uploaded)

	current := c.CurrentStatus()
	assert.Equal(t, status.SyncPhaseSuccess, current.Phase)
	require.NotNil(t, current.LastSyncTime)
	assert.Equal(t, fixedNow, *current.LastSyncTime)
	assert.Equal(t, 0, current.AttemptCount)

	last, err := c.LastSyncTime(ctx)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.True(t, fixedNow.Equal(*last))
}

func TestSyncAllKeepsOtherRootFields(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	manager := syncmocks.NewMockManager(ctrl)
	docs := memory.New()
	ctx := context.Background()

	require.NoError(t, docs.Set(ctx, remote.UserRef(testUser), remote.Document{"email": "a@b.c"}))
	manager.EXPECT().SyncAll(gomock.Any()).Return(okReport(sync.OperationSync), nil)

	c := New(manager, identity.Static(testUser), docs, WithClock(clock))
	_, err := c.SyncAll(ctx)
	require.NoError(t, err)

	root, ok, err := docs.Get(ctx, remote.UserRef(testUser))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a@b.c", root["email"])
	assert.Contains(t, root, remote.LastSyncAtField)
}

func TestSyncAllFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	manager := syncmocks.NewMockManager(ctrl)
	docs := memory.New()
	ctx := context.Background()

	failure := &sync.Error{
		Err:     errors.New("connection refused"),
		Message: "settings: failed to read remote: connection refused",
		Family:  remote.SettingsCollection,
		Kind:    sync.KindRemoteUnavailable,
	}
	partial := &sync.Report{Operation: sync.OperationSync, Results: []sync.Result{{Family: remote.WaterEntriesCollection}}}
	manager.EXPECT().SyncAll(gomock.Any()).Return(partial, failure)

	c := New(manager, identity.Static(testUser), docs, WithClock(clock))

	report, err := c.SyncAll(ctx)
	require.ErrorIs(t, err, failure)
	assert.Same(t, partial, report)

	current := c.CurrentStatus()
	assert.Equal(t, status.SyncPhaseError, current.Phase)
	assert.Equal(t, failure.Message, current.Message)
	assert.Equal(t, 1, current.AttemptCount)
	assert.Nil(t, current.LastSyncTime)

	last, err := c.LastSyncTime(ctx)
	require.NoError(t, err)
	assert.Nil(t, last, "a failed sync must not stamp lastSyncAt")
}

func TestSyncAllStampFailureIsNotSurfaced(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	manager := syncmocks.NewMockManager(ctrl)
	docs := remotemocks.NewMockDocumentStore(ctrl)

	manager.EXPECT().SyncAll(gomock.Any()).Return(okReport(sync.OperationSync), nil)
	docs.EXPECT().
		Set(gomock.Any(), remote.UserRef(testUser), gomock.Any(), gomock.Any()).
		Return(errors.New("permission denied"))

	c := New(manager, identity.Static(testUser), docs, WithClock(clock))

	_, err := c.SyncAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, status.SyncPhaseSuccess, c.CurrentStatus().Phase)
}

func TestSyncAllSingleFlight(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	manager := syncmocks.NewMockManager(ctrl)
	docs := memory.New()

	started := make(chan struct{})
	release := make(chan struct{})
	want := okReport(sync.OperationSync)
	manager.EXPECT().SyncAll(gomock.Any()).DoAndReturn(func(context.Context) (*sync.Report, error) {
		close(started)
		<-release
		return want, nil
	}).Times(1)

	c := New(manager, identity.Static(testUser), docs, WithClock(clock))

	type outcome struct {
		report *sync.Report
		err    error
	}
	results := make(chan outcome, 2)
	call := func() {
		r, err := c.SyncAll(context.Background())
		results <- outcome{r, err}
	}

	go call()
	<-started
	go call()
	// let the second caller join the flight before it lands
	time.Sleep(50 * time.Millisecond)
	close(release)

	for range 2 {
		got := <-results
		require.NoError(t, got.err)
		assert.Same(t, want, got.report)
	}
}

func TestRestoreStatusResetsInterruptedSync(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	manager := syncmocks.NewMockManager(ctrl)
	persistence := statusmocks.NewMockStatusPersistence(ctrl)

	lastOK := fixedNow.Add(-time.Hour)
	persisted := status.Syncing(status.Success(status.Idle(), lastOK), fixedNow)
	persistence.EXPECT().LoadStatus(gomock.Any(), testUser).Return(&persisted, nil)
	persistence.EXPECT().SaveStatus(gomock.Any(), testUser, gomock.Cond(func(x any) bool {
		s, ok := x.(*status.SyncStatus)
		return ok && s.Phase == status.SyncPhaseError && s.Message == InterruptedMessage
	})).Return(nil)

	c := New(manager, identity.Static(testUser), memory.New(), WithStatusPersistence(persistence))
	require.NoError(t, c.RestoreStatus(context.Background()))
	// a second restore for the same user does not reload
	require.NoError(t, c.RestoreStatus(context.Background()))

	current := c.CurrentStatus()
	assert.Equal(t, status.SyncPhaseError, current.Phase)
	assert.Equal(t, InterruptedMessage, current.Message)
	require.NotNil(t, current.LastSyncTime)
	assert.Equal(t, lastOK, *current.LastSyncTime)
}

func TestRestoreStatusLoadFailureStartsIdle(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	manager := syncmocks.NewMockManager(ctrl)
	persistence := statusmocks.NewMockStatusPersistence(ctrl)
	persistence.EXPECT().LoadStatus(gomock.Any(), testUser).Return(nil, errors.New("corrupt"))

	c := New(manager, identity.Static(testUser), memory.New(), WithStatusPersistence(persistence))
	require.NoError(t, c.RestoreStatus(context.Background()))
	assert.Equal(t, status.Idle(), c.CurrentStatus())
}

func TestDownloadAndUploadDoNotPublish(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	manager := syncmocks.NewMockManager(ctrl)

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	metrics, err := telemetry.NewSyncMetrics(mp)
	require.NoError(t, err)

	boom := errors.New("boom")
	manager.EXPECT().DownloadAll(gomock.Any()).Return(okReport(sync.OperationDownload), nil)
	manager.EXPECT().UploadAll(gomock.Any()).Return(nil, boom)

	c := New(manager, identity.Static(testUser), memory.New(), WithSyncMetrics(metrics))

	report, err := c.DownloadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Totals().Downloaded)

	_, err = c.UploadAll(context.Background())
	require.ErrorIs(t, err, boom)

	assert.Equal(t, status.Idle(), c.CurrentStatus())

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	names := map[string]bool{}
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			names[m.Name] = true
		}
	}
	assert.True(t, names["hydrosync_sync_duration_seconds"])
	assert.True(t, names["hydrosync_sync_documents_total"])
}

func TestObserveSyncStatus(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	manager := syncmocks.NewMockManager(ctrl)
	manager.EXPECT().SyncAll(gomock.Any()).Return(okReport(sync.OperationSync), nil)

	c := New(manager, identity.Static(testUser), memory.New(), WithClock(clock))

	ctx, cancel := context.WithCancel(context.Background())
	updates := c.ObserveSyncStatus(ctx)
	assert.Equal(t, status.SyncPhaseIdle, (<-updates).Phase)

	_, err := c.SyncAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, status.SyncPhaseSuccess, (<-updates).Phase, "late readers see the latest status")

	cancel()
	for range updates {
	}
}

func TestStartAndStop(t *testing.T) {
	t.Parallel()

	t.Run("stop before start", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		c := New(syncmocks.NewMockManager(ctrl), identity.Static(testUser), memory.New(), WithInterval(time.Hour))
		assert.NoError(t, c.Stop())

		// SyncAll is never expected, so a running loop would fail the mock
		assert.NoError(t, c.Start(context.Background()))
	})

	t.Run("second start is rejected", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		manager := syncmocks.NewMockManager(ctrl)
		synced := make(chan struct{})
		manager.EXPECT().SyncAll(gomock.Any()).DoAndReturn(func(context.Context) (*sync.Report, error) {
			close(synced)
			return okReport(sync.OperationSync), nil
		})

		c := New(manager, identity.Static(testUser), memory.New(), WithInterval(time.Hour))
		errc := make(chan error, 1)
		go func() { errc <- c.Start(context.Background()) }()
		<-synced

		assert.ErrorIs(t, c.Start(context.Background()), ErrAlreadyStarted)

		require.NoError(t, c.Stop())
		assert.NoError(t, <-errc)
		assert.NoError(t, c.Stop(), "stopping twice is a no-op")
		assert.NoError(t, c.Start(context.Background()), "a stopped coordinator does not restart")
	})

	t.Run("loop syncs on start", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		manager := syncmocks.NewMockManager(ctrl)
		synced := make(chan struct{})
		manager.EXPECT().SyncAll(gomock.Any()).DoAndReturn(func(context.Context) (*sync.Report, error) {
			close(synced)
			return okReport(sync.OperationSync), nil
		})

		c := New(manager, identity.Static(testUser), memory.New(), WithInterval(time.Hour))
		errc := make(chan error, 1)
		go func() { errc <- c.Start(context.Background()) }()

		<-synced
		require.Eventually(t, func() bool {
			return c.CurrentStatus().Phase == status.SyncPhaseSuccess
		}, time.Second, 10*time.Millisecond)
		require.NoError(t, c.Stop())
		assert.NoError(t, <-errc)
	})

	t.Run("disabled loop waits for cancellation", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		c := New(syncmocks.NewMockManager(ctrl), identity.Static(testUser), memory.New())

		ctx, cancel := context.WithCancel(context.Background())
		errc := make(chan error, 1)
		go func() { errc <- c.Start(ctx) }()
		cancel()
		assert.NoError(t, <-errc)
	})
}
