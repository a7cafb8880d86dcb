package models

import "testing"

func TestNormalizeBookingStatus(t *testing.T) {
	cases := []struct {
		in   string
		want BookingStatus
		ok   bool
	}{
		{"pending", BookingPending, true},
		{"confirmed", BookingConfirmed, true},
		{"cancelled", BookingCancelled, true},
		{"completed", BookingCompleted, true},
		{"accepted", BookingConfirmed, true},
		{"declined", BookingCancelled, true},
		{"rejected", "", false},
		{"", "", false},
		{"CONFIRMED", "", false},
	}
	for _, tc := range cases {
		got, ok := NormalizeBookingStatus(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("NormalizeBookingStatus(%q) = (%q, %v), want (%q, %v)",
				tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
