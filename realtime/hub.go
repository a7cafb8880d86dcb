// Package realtime carries row-change notifications between writers and the
// views that mirror remote collections. Services publish an event after every
// successful write; subscribers react by refetching the collection in full.
package realtime

import (
	"context"
	"time"
)

// Collections watched over the change feed.
const (
	CollectionShops     = "shops"
	CollectionBookings  = "bookings"
	CollectionFavorites = "favorites"
	CollectionUsers     = "users"
)

// Action distinguishes the kind of row change an event announces.
type Action string

const (
	ActionInsert Action = "insert"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Event is one row change on a watched collection. OccurredAt is the server
// timestamp of the write; subscribers use it to discard notifications older
// than state they already applied locally.
type Event struct {
	Collection string    `json:"collection"`
	Action     Action    `json:"action"`
	RowID      string    `json:"row_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Hub fans row-change events out to any number of subscribers.
type Hub interface {
	// Publish delivers an event to every current subscriber of its collection.
	Publish(ctx context.Context, ev Event) error
	// Subscribe returns a channel of events for one collection plus a cancel
	// function. After cancel returns, the channel is closed and no further
	// events are delivered.
	Subscribe(ctx context.Context, collection string) (<-chan Event, func(), error)
}
