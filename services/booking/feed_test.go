package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"shopspotlight/models"
	"shopspotlight/realtime"
)

// listStub serves a swappable booking list and counts refetches.
type listStub struct {
	mu      sync.Mutex
	views   []models.BookingView
	fetches int
}

func (s *listStub) setViews(v []models.BookingView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.views = v
}

func (s *listStub) fetchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetches
}

func (s *listStub) ListFor(Actor) ([]models.BookingView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetches++
	out := make([]models.BookingView, len(s.views))
	copy(out, s.views)
	return out, nil
}

func (s *listStub) Create(string, CreateRequest) (*models.Booking, error) { return nil, nil }
func (s *listStub) Transition(string, models.BookingStatus, Actor) (*models.Booking, error) {
	return nil, nil
}

func view(id string, status models.BookingStatus, updated time.Time) models.BookingView {
	return models.BookingView{Booking: models.Booking{ID: id, Status: status, UpdatedAt: updated}}
}

func newTestFeed(t *testing.T, stub *listStub) (*Feed, *realtime.MemoryHub) {
	t.Helper()
	hub := realtime.NewMemoryHub()
	feed, err := NewFeed(context.Background(), stub, hub, Actor{UserID: "cust-1", Role: models.RoleCustomer})
	if err != nil {
		t.Fatalf("failed to build feed: %v", err)
	}
	t.Cleanup(feed.Close)
	return feed, hub
}

func TestFeedApplyLocalInsertsWithoutDuplicates(t *testing.T) {
	now := time.Now()
	stub := &listStub{views: []models.BookingView{view("b1", models.BookingPending, now)}}
	feed, _ := newTestFeed(t, stub)

	b2 := &models.Booking{ID: "b2", Status: models.BookingPending, UpdatedAt: now}
	feed.ApplyLocal(b2)
	feed.ApplyLocal(b2)

	got := feed.Bookings()
	if len(got) != 2 {
		t.Fatalf("expected 2 bookings after repeated local apply, got %d", len(got))
	}
	if got[0].ID != "b2" {
		t.Fatalf("locally applied booking should be first, got %s", got[0].ID)
	}
}

func TestFeedApplyLocalUpdatesInPlace(t *testing.T) {
	now := time.Now()
	stub := &listStub{views: []models.BookingView{view("b1", models.BookingPending, now)}}
	feed, _ := newTestFeed(t, stub)

	feed.ApplyLocal(&models.Booking{ID: "b1", Status: models.BookingConfirmed, UpdatedAt: now.Add(time.Second)})

	got := feed.Bookings()
	if len(got) != 1 {
		t.Fatalf("in-place update must not duplicate, got %d entries", len(got))
	}
	if got[0].Status != models.BookingConfirmed {
		t.Fatalf("expected confirmed, got %s", got[0].Status)
	}
}

func TestFeedDiscardsNotificationsOlderThanLocalApply(t *testing.T) {
	now := time.Now()
	stub := &listStub{views: []models.BookingView{view("b1", models.BookingPending, now)}}
	feed, hub := newTestFeed(t, stub)
	base := stub.fetchCount()

	feed.ApplyLocal(&models.Booking{ID: "b1", Status: models.BookingConfirmed, UpdatedAt: now.Add(time.Second)})

	// The redelivery of the change we already applied locally.
	err := hub.Publish(context.Background(), realtime.Event{
		Collection: realtime.CollectionBookings,
		Action:     realtime.ActionUpdate,
		RowID:      "b1",
		OccurredAt: now.Add(time.Second),
	})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	time.Sleep(100 * time.Millisecond)
	if n := stub.fetchCount(); n != base {
		t.Fatalf("stale notification should not trigger a refetch, fetches went %d -> %d", base, n)
	}
}

func TestFeedRefetchesOnNewerNotification(t *testing.T) {
	now := time.Now()
	stub := &listStub{views: []models.BookingView{view("b1", models.BookingPending, now)}}
	feed, hub := newTestFeed(t, stub)

	stub.setViews([]models.BookingView{view("b1", models.BookingConfirmed, now.Add(time.Second))})
	err := hub.Publish(context.Background(), realtime.Event{
		Collection: realtime.CollectionBookings,
		Action:     realtime.ActionUpdate,
		RowID:      "b1",
		OccurredAt: now.Add(time.Second),
	})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		got := feed.Bookings()
		if len(got) == 1 && got[0].Status == models.BookingConfirmed {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("feed never converged on the notified change")
}

func TestFeedCounts(t *testing.T) {
	now := time.Now()
	stub := &listStub{views: []models.BookingView{
		view("b1", models.BookingPending, now),
		view("b2", models.BookingPending, now),
		view("b3", models.BookingCompleted, now),
	}}
	feed, _ := newTestFeed(t, stub)

	counts := feed.Counts()
	if counts[models.BookingPending] != 2 || counts[models.BookingCompleted] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
	if counts[""] != 3 {
		t.Fatalf("expected total of 3, got %d", counts[""])
	}
}
