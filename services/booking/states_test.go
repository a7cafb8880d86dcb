package booking

import (
	"testing"

	"shopspotlight/models"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to models.BookingStatus
		want     bool
	}{
		{models.BookingPending, models.BookingConfirmed, true},
		{models.BookingPending, models.BookingCancelled, true},
		{models.BookingPending, models.BookingCompleted, false},
		{models.BookingConfirmed, models.BookingCompleted, true},
		{models.BookingConfirmed, models.BookingCancelled, false},
		{models.BookingConfirmed, models.BookingPending, false},
		{models.BookingCancelled, models.BookingConfirmed, false},
		{models.BookingCompleted, models.BookingPending, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestTerminalStatuses(t *testing.T) {
	if models.BookingPending.Terminal() || models.BookingConfirmed.Terminal() {
		t.Fatal("pending and confirmed must not be terminal")
	}
	if !models.BookingCancelled.Terminal() || !models.BookingCompleted.Terminal() {
		t.Fatal("cancelled and completed must be terminal")
	}
}
