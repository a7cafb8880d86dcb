package booking

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"shopspotlight/models"
	"shopspotlight/realtime"
	"shopspotlight/utils"

	"go.uber.org/zap"
)

// Feed is the cached booking list behind the bookings screen for one actor.
// Two asynchronous paths mutate it: the optimistic apply after a locally
// issued write, and the refetch triggered by a change notification. Both must
// converge on identical state without duplicate entries; notifications older
// than the last locally applied change for the same row are discarded.
type Feed struct {
	svc   Service
	actor Actor

	mu          sync.Mutex
	views       []models.BookingView
	lastApplied map[string]time.Time

	generation uint64
	cancel     func()
}

// NewFeed loads the actor's bookings and subscribes to booking changes.
func NewFeed(ctx context.Context, svc Service, hub realtime.Hub, actor Actor) (*Feed, error) {
	f := &Feed{
		svc:         svc,
		actor:       actor,
		lastApplied: make(map[string]time.Time),
	}
	if err := f.Refresh(); err != nil {
		return nil, err
	}

	events, cancel, err := hub.Subscribe(ctx, realtime.CollectionBookings)
	if err != nil {
		return nil, fmt.Errorf("failed to watch booking changes: %w", err)
	}
	f.cancel = cancel

	go func() {
		logger := utils.GetLogger()
		for ev := range events {
			if f.staleEvent(ev) {
				continue
			}
			if err := f.Refresh(); err != nil {
				logger.Warn("Booking refetch after change event failed", zap.Error(err))
			}
		}
	}()

	return f, nil
}

// staleEvent reports whether the notification is older than state already
// applied locally for the same row.
func (f *Feed) staleEvent(ev realtime.Event) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	applied, ok := f.lastApplied[ev.RowID]
	return ok && !ev.OccurredAt.After(applied)
}

// Refresh refetches the actor's booking list in full. Superseded in-flight
// refetches are discarded via the generation counter.
func (f *Feed) Refresh() error {
	gen := atomic.AddUint64(&f.generation, 1)

	views, err := f.svc.ListFor(f.actor)
	if err != nil {
		return fmt.Errorf("failed to refresh bookings: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if atomic.LoadUint64(&f.generation) != gen {
		return nil
	}
	f.views = views
	return nil
}

// ApplyLocal mirrors a successful local write into the cached list
// immediately, without waiting for the change notification to redeliver it.
func (f *Feed) ApplyLocal(b *models.Booking) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastApplied[b.ID] = b.UpdatedAt
	for i := range f.views {
		if f.views[i].ID == b.ID {
			f.views[i].Booking = *b
			return
		}
	}
	// New row: prepend, matching the newest-first read order.
	f.views = append([]models.BookingView{{Booking: *b}}, f.views...)
}

// Bookings returns the cached list, newest first.
func (f *Feed) Bookings() []models.BookingView {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.BookingView, len(f.views))
	copy(out, f.views)
	return out
}

// Counts returns the per-status tab counts plus the total under "".
func (f *Feed) Counts() map[models.BookingStatus]int {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[models.BookingStatus]int)
	for _, v := range f.views {
		counts[v.Status]++
	}
	counts[""] = len(f.views)
	return counts
}

// Close tears down the change subscription.
func (f *Feed) Close() {
	if f.cancel != nil {
		f.cancel()
	}
}
