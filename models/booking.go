package models

import "time"

// BookingStatus is the canonical booking vocabulary. The legacy
// "accepted"/"declined" forms that older clients still send are folded into
// it by NormalizeBookingStatus.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// NormalizeBookingStatus maps legacy status spellings onto the canonical set.
// The bool result is false for statuses outside either vocabulary.
func NormalizeBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return BookingStatus(s), true
	}
	switch s {
	case "accepted":
		return BookingConfirmed, true
	case "declined":
		return BookingCancelled, true
	}
	return "", false
}

// Terminal reports whether no further transition may leave this status.
func (s BookingStatus) Terminal() bool {
	return s == BookingCancelled || s == BookingCompleted
}

// Booking is a customer's request for a service at a shop. ServiceName is a
// denormalized copy of the catalog entry's name at creation time, not a
// foreign key.
type Booking struct {
	ID            string        `bson:"id" json:"id"`
	CustomerID    string        `bson:"customer_id" json:"customer_id"`
	ShopID        string        `bson:"shop_id" json:"shop_id"`
	ServiceName   string        `bson:"service_name" json:"service_name"`
	PreferredTime time.Time     `bson:"preferred_time" json:"preferred_time"`
	Status        BookingStatus `bson:"status" json:"status"`
	CreatedAt     time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `bson:"updated_at" json:"updated_at"`
}

// ContactCard carries the display fields joined onto a booking at read time.
type ContactCard struct {
	Name  string `bson:"name" json:"name"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// BookingView is a booking with the shop's and customer's display fields
// denormalized in, as rendered on the bookings screen.
type BookingView struct {
	Booking  `bson:",inline"`
	Shop     ContactCard `bson:"shop" json:"shop"`
	Customer ContactCard `bson:"customer" json:"customer"`
}
