package bookingRepo

import (
	"shopspotlight/models"
)

// BookingRepository defines methods for booking data access. List reads join
// in the denormalized shop/user display fields used by the bookings screen.
type BookingRepository interface {
	// GetByID retrieves a booking by its unique ID.
	GetByID(id string) (*models.Booking, error)
	// Create inserts a new booking record.
	Create(booking *models.Booking) error
	// UpdateStatus performs a targeted single-row status update.
	UpdateStatus(id string, status models.BookingStatus) error
	// ListForCustomer returns the customer's bookings, newest first, with
	// shop and customer contact cards joined in.
	ListForCustomer(customerID string) ([]models.BookingView, error)
	// ListForShops returns bookings addressed to any of the given shops,
	// newest first, with contact cards joined in.
	ListForShops(shopIDs []string) ([]models.BookingView, error)
}
