package status

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan SyncStatus) SyncStatus {
	t.Helper()
	select {
	case s, ok := <-ch:
		require.True(t, ok, "channel closed unexpectedly")
		return s
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for status")
		return SyncStatus{}
	}
}

func TestBroadcasterStartsIdle(t *testing.T) {
	t.Parallel()

	b := NewBroadcaster(SyncStatus{})
	assert.Equal(t, SyncPhaseIdle, b.Current().Phase)
}

func TestBroadcasterLateSubscriberSeesOnlyCurrent(t *testing.T) {
	t.Parallel()

	b := NewBroadcaster(Idle())
	now := time.Now()
	require.NoError(t, b.Publish(Syncing(b.Current(), now)))
	require.NoError(t, b.Publish(Success(b.Current(), now)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := b.Subscribe(ctx)
	got := receive(t, ch)
	assert.Equal(t, SyncPhaseSuccess, got.Phase)

	select {
	case s := <-ch:
		t.Fatalf("unexpected extra status %v", s.Phase)
	default:
	}
}

func TestBroadcasterSlowSubscriberGetsLatest(t *testing.T) {
	t.Parallel()

	b := NewBroadcaster(Idle())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := b.Subscribe(ctx)
	require.NoError(t, b.Publish(Syncing(b.Current(), time.Now())))
	require.NoError(t, b.Publish(Failed(b.Current(), "boom")))

	got := receive(t, ch)
	assert.Equal(t, SyncPhaseError, got.Phase)
	assert.Equal(t, "boom", got.Message)
}

func TestBroadcasterFollowsRun(t *testing.T) {
	t.Parallel()

	b := NewBroadcaster(Idle())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := b.Subscribe(ctx)
	assert.Equal(t, SyncPhaseIdle, receive(t, ch).Phase)

	require.NoError(t, b.Publish(Syncing(b.Current(), time.Now())))
	assert.Equal(t, SyncPhaseSyncing, receive(t, ch).Phase)

	require.NoError(t, b.Publish(Success(b.Current(), time.Now())))
	assert.Equal(t, SyncPhaseSuccess, receive(t, ch).Phase)
}

func TestBroadcasterRejectsInvalidTransitions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		from SyncStatus
		to   SyncStatus
	}{
		{name: "idle to success", from: Idle(), to: SyncStatus{Phase: SyncPhaseSuccess}},
		{name: "idle to error", from: Idle(), to: SyncStatus{Phase: SyncPhaseError}},
		{name: "syncing to syncing", from: SyncStatus{Phase: SyncPhaseSyncing}, to: SyncStatus{Phase: SyncPhaseSyncing}},
		{name: "success to error", from: SyncStatus{Phase: SyncPhaseSuccess}, to: SyncStatus{Phase: SyncPhaseError}},
		{name: "unknown phase", from: Idle(), to: SyncStatus{Phase: "Paused"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := NewBroadcaster(tt.from)
			err := b.Publish(tt.to)
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Equal(t, tt.from.Phase, b.Current().Phase)
		})
	}
}

func TestBroadcasterUnsubscribeClosesChannel(t *testing.T) {
	t.Parallel()

	b := NewBroadcaster(Idle())
	ctx, cancel := context.WithCancel(context.Background())
	ch := b.Subscribe(ctx)
	receive(t, ch)

	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("channel was not closed")
	}

	// Publishing after the subscriber left must not panic.
	require.NoError(t, b.Publish(Syncing(b.Current(), time.Now())))
}

func TestStatusConstructors(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	s := Syncing(Idle(), now)
	assert.Equal(t, 1, s.AttemptCount)
	require.NotNil(t, s.LastAttempt)

	s = Failed(s, "remote down")
	s = Syncing(s, now.Add(time.Minute))
	assert.Equal(t, 2, s.AttemptCount)
	assert.Empty(t, s.Message)

	s = Success(s, now.Add(2*time.Minute))
	assert.Equal(t, 0, s.AttemptCount)
	require.NotNil(t, s.LastSyncTime)
	assert.Equal(t, now.Add(2*time.Minute), *s.LastSyncTime)
	assert.True(t, s.Phase.IsTerminal())
}
