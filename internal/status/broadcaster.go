package status

import (
	"context"
	"sync"
)

//go:generate mockgen -destination=mocks/mock_publisher.go -package=mocks -source=broadcaster.go Publisher

// Publisher exposes the sync status as a hot value: there is always exactly
// one current status, and subscribers only ever see the latest one.
type Publisher interface {
	// Current returns the status at the time of the call.
	Current() SyncStatus
	// Subscribe returns a channel that immediately yields the current status
	// and then every later status. Intermediate values are dropped if the
	// reader falls behind. The channel is closed when ctx ends.
	Subscribe(ctx context.Context) <-chan SyncStatus
}

// Broadcaster is the Publisher implementation. Only the sync coordinator
// publishes to it.
type Broadcaster struct {
	mu      sync.Mutex
	current SyncStatus
	subs    map[chan SyncStatus]struct{}
}

var _ Publisher = (*Broadcaster)(nil)

// NewBroadcaster returns a broadcaster holding initial.
func NewBroadcaster(initial SyncStatus) *Broadcaster {
	if initial.Phase == "" {
		initial = Idle()
	}
	return &Broadcaster{
		current: initial,
		subs:    make(map[chan SyncStatus]struct{}),
	}
}

// Current returns the latest status.
func (b *Broadcaster) Current() SyncStatus {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// Publish replaces the current status and notifies subscribers. It rejects
// changes that break the Idle|Success|Error -> Syncing -> Success|Error cycle.
func (b *Broadcaster) Publish(s SyncStatus) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := ValidateTransition(b.current.Phase, s.Phase); err != nil {
		return err
	}
	b.setLocked(s)
	return nil
}

// Restore replaces the current status without transition checks. It is used
// when a persisted status is loaded or the signed-in user changes.
func (b *Broadcaster) Restore(s SyncStatus) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.setLocked(s)
}

func (b *Broadcaster) setLocked(s SyncStatus) {
	b.current = s
	for ch := range b.subs {
		offer(ch, s)
	}
}

// Subscribe registers a subscriber until ctx is done.
func (b *Broadcaster) Subscribe(ctx context.Context) <-chan SyncStatus {
	ch := make(chan SyncStatus, 1)

	b.mu.Lock()
	ch <- b.current
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, ch)
		close(ch)
		b.mu.Unlock()
	}()

	return ch
}

// offer replaces any unread value in ch with s. Callers hold b.mu, and
// Publish is the only sender, so the send never blocks.
func offer(ch chan SyncStatus, s SyncStatus) {
	select {
	case <-ch:
	default:
	}
	ch <- s
}
