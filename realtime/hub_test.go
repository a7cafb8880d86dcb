package realtime

import (
	"context"
	"testing"
	"time"
)

func TestMemoryHubDeliversToSubscribers(t *testing.T) {
	hub := NewMemoryHub()

	events, cancel, err := hub.Subscribe(context.Background(), CollectionShops)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer cancel()

	ev := Event{Collection: CollectionShops, Action: ActionUpdate, RowID: "s1", OccurredAt: time.Now()}
	if err := hub.Publish(context.Background(), ev); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	select {
	case got := <-events:
		if got.RowID != "s1" || got.Action != ActionUpdate {
			t.Fatalf("unexpected event: %+v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("event never delivered")
	}
}

func TestMemoryHubScopesByCollection(t *testing.T) {
	hub := NewMemoryHub()

	shopEvents, cancel, err := hub.Subscribe(context.Background(), CollectionShops)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer cancel()

	ev := Event{Collection: CollectionBookings, Action: ActionInsert, RowID: "b1", OccurredAt: time.Now()}
	if err := hub.Publish(context.Background(), ev); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	select {
	case got := <-shopEvents:
		t.Fatalf("shop subscriber received a booking event: %+v", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemoryHubCancelClosesChannel(t *testing.T) {
	hub := NewMemoryHub()

	events, cancel, err := hub.Subscribe(context.Background(), CollectionShops)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	cancel()

	select {
	case _, ok := <-events:
		if ok {
			t.Fatal("expected a closed channel after cancel")
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}

	// Publishing after cancel must not panic or deliver.
	ev := Event{Collection: CollectionShops, Action: ActionDelete, RowID: "s1", OccurredAt: time.Now()}
	if err := hub.Publish(context.Background(), ev); err != nil {
		t.Fatalf("publish after cancel failed: %v", err)
	}
}
