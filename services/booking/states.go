package booking

import "shopspotlight/models"

// allowedTransitions is the booking state machine: a pending booking is
// confirmed or cancelled by the shop owner; a confirmed booking is completed.
// Cancelled and completed are terminal.
var allowedTransitions = map[models.BookingStatus][]models.BookingStatus{
	models.BookingPending:   {models.BookingConfirmed, models.BookingCancelled},
	models.BookingConfirmed: {models.BookingCompleted},
}

// CanTransition reports whether a booking may move from one status to the
// next. Terminal statuses admit no transition.
func CanTransition(from, to models.BookingStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
