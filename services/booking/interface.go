package booking

import (
	"time"

	"shopspotlight/models"
)

// Actor identifies who is asking for an operation, with the role fixed at
// sign-up.
type Actor struct {
	UserID string
	Role   models.Role
}

// CreateRequest carries the fields of a new booking request.
type CreateRequest struct {
	ShopID        string
	ServiceName   string
	PreferredTime time.Time
}

// Service is the booking lifecycle controller.
type Service interface {
	// Create validates and inserts a pending booking for the customer.
	// Validation failures return *ValidationError before any remote write.
	Create(customerID string, req CreateRequest) (*models.Booking, error)
	// Transition applies a role-gated status change as a targeted single-row
	// update and publishes the change event.
	Transition(bookingID string, next models.BookingStatus, actor Actor) (*models.Booking, error)
	// ListFor returns the bookings visible to the actor: customers see their
	// own, owners see those addressed to their shops.
	ListFor(actor Actor) ([]models.BookingView, error)
}
