package geo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"shopspotlight/models"
)

func newTestLocator(baseURL string) *IPLocator {
	return &IPLocator{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 2 * time.Second},
		cache:   make(map[string]models.Coordinate),
	}
}

func TestLocateDeniesPrivateAndEmptyIPs(t *testing.T) {
	l := newTestLocator("http://unused")
	for _, ip := range []string{"", "127.0.0.1", "10.0.0.5", "192.168.1.20"} {
		_, err := l.Locate(context.Background(), ip)
		if !errors.Is(err, ErrDenied) {
			t.Errorf("Locate(%q) = %v, want ErrDenied", ip, err)
		}
	}
}

func TestLocateResolvesAndCaches(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"latitude": 51.5074, "longitude": -0.1278}`))
	}))
	defer srv.Close()

	l := newTestLocator(srv.URL)
	for i := 0; i < 3; i++ {
		coord, err := l.Locate(context.Background(), "203.0.113.7")
		if err != nil {
			t.Fatalf("lookup %d failed: %v", i, err)
		}
		if coord.Latitude != 51.5074 || coord.Longitude != -0.1278 {
			t.Fatalf("unexpected coordinate: %+v", coord)
		}
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Fatalf("expected 1 upstream hit thanks to the cache, got %d", n)
	}
}

func TestLocateUnavailableOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	l := newTestLocator(srv.URL)
	_, err := l.Locate(context.Background(), "203.0.113.7")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestLocateDeniedByLookupService(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error": true, "reason": "Reserved IP Address"}`))
	}))
	defer srv.Close()

	l := newTestLocator(srv.URL)
	_, err := l.Locate(context.Background(), "203.0.113.7")
	if !errors.Is(err, ErrDenied) {
		t.Fatalf("expected ErrDenied, got %v", err)
	}
}

func TestLocateTimesOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	l := newTestLocator(srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := l.Locate(ctx, "203.0.113.7")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}
