package directory

import (
	"math"
	"testing"
)

func TestDistanceZeroForSamePoint(t *testing.T) {
	if d := Distance(51.5074, -0.1278, 51.5074, -0.1278); d != 0 {
		t.Fatalf("expected zero distance for identical points, got %f", d)
	}
}

func TestDistanceSymmetry(t *testing.T) {
	a := Distance(51.5074, -0.1278, 48.8566, 2.3522)
	b := Distance(48.8566, 2.3522, 51.5074, -0.1278)
	if math.Abs(a-b) > 1e-9 {
		t.Fatalf("distance not symmetric: %f vs %f", a, b)
	}
}

func TestDistanceKnownValue(t *testing.T) {
	// London to Paris is roughly 344 km.
	d := Distance(51.5074, -0.1278, 48.8566, 2.3522)
	if d < 330 || d > 360 {
		t.Fatalf("London-Paris distance out of range: %f km", d)
	}
}

func TestDistanceShortRange(t *testing.T) {
	// Roughly 1.11 km apart (0.01 degrees of latitude).
	d := Distance(51.50, -0.12, 51.51, -0.12)
	if d < 1.0 || d > 1.2 {
		t.Fatalf("short-range distance out of range: %f km", d)
	}
}
