// Package geo resolves a caller's approximate coordinate from its IP address.
// It stands in for the device geolocation capability when a directory client
// enables proximity mode without supplying an explicit coordinate.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"shopspotlight/config"
	"shopspotlight/models"
)

// LookupTimeout bounds how long a position request may take before it fails
// with ErrTimeout instead of hanging.
const LookupTimeout = 10 * time.Second

var (
	// ErrUnavailable means the lookup service could not produce a position.
	ErrUnavailable = errors.New("position unavailable")
	// ErrDenied means the lookup refused the request (reserved or private IP).
	ErrDenied = errors.New("position lookup denied")
	// ErrTimeout means the bounded wait elapsed before an answer arrived.
	ErrTimeout = errors.New("position request timed out")
)

// Locator resolves the coordinate for a client IP.
type Locator interface {
	Locate(ctx context.Context, ip string) (models.Coordinate, error)
}

type ipapiResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Error     bool    `json:"error"`
	Reason    string  `json:"reason"`
}

// IPLocator implements Locator against the ipapi.co lookup service, caching
// results per IP.
type IPLocator struct {
	baseURL string
	client  *http.Client

	mu    sync.RWMutex
	cache map[string]models.Coordinate
}

// NewIPLocator creates a locator using the configured lookup endpoint.
func NewIPLocator() *IPLocator {
	return &IPLocator{
		baseURL: config.AppConfig.GeoIPBaseURL,
		client:  &http.Client{Timeout: LookupTimeout},
		cache:   make(map[string]models.Coordinate),
	}
}

// isPrivateIP checks if an IP is private or loopback.
func isPrivateIP(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	return parsed.IsLoopback() || parsed.IsPrivate()
}

// Locate resolves the coordinate for the given IP. The wait is bounded by
// LookupTimeout; on expiry ErrTimeout is returned rather than a stale answer.
func (l *IPLocator) Locate(ctx context.Context, ip string) (models.Coordinate, error) {
	if ip == "" || isPrivateIP(ip) {
		return models.Coordinate{}, ErrDenied
	}

	l.mu.RLock()
	if c, ok := l.cache[ip]; ok {
		l.mu.RUnlock()
		return c, nil
	}
	l.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, LookupTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/%s/json/", l.baseURL, ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("failed to build position request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			return models.Coordinate{}, ErrTimeout
		}
		return models.Coordinate{}, ErrUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Coordinate{}, ErrUnavailable
	}

	var body ipapiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return models.Coordinate{}, ErrUnavailable
	}
	if body.Error {
		return models.Coordinate{}, ErrDenied
	}

	coord := models.Coordinate{Latitude: body.Latitude, Longitude: body.Longitude}
	l.mu.Lock()
	l.cache[ip] = coord
	l.mu.Unlock()
	return coord, nil
}
