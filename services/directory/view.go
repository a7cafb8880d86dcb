package directory

import (
	"strings"
	"sync"

	"shopspotlight/models"
)

// NearbyRadiusKm is the fixed proximity-mode radius.
const NearbyRadiusKm = 1.0

// View composes the shop snapshot with a free-text term, a status filter and
// an optional proximity filter, producing the list a customer sees. The
// status and proximity filters are mutually exclusive: activating one clears
// the other. Source ordering (creation time descending) is preserved through
// filtering, never re-sorted.
type View struct {
	snap *Snapshot

	mu     sync.Mutex
	term   string
	status *models.ShopStatus
	nearby bool
	center *models.Coordinate
}

// NewView creates a view over the given snapshot with no filters active.
func NewView(snap *Snapshot) *View {
	return &View{snap: snap}
}

// SetTerm sets the free-text term matched case-insensitively against shop
// name or address. An empty term matches all shops.
func (v *View) SetTerm(term string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.term = term
}

// SetStatusFilter activates an equality filter on status and deactivates
// proximity mode. Selecting the already-active status clears the filter.
func (v *View) SetStatusFilter(status models.ShopStatus) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.status != nil && *v.status == status {
		v.status = nil
		return
	}
	s := status
	v.status = &s
	v.nearby = false
	v.center = nil
}

// ClearStatusFilter removes any active status filter.
func (v *View) ClearStatusFilter() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.status = nil
}

// EnableNearby activates proximity mode around a freshly obtained user
// coordinate and deactivates any status filter. Callers must pass the result
// of the geolocation request made for this activation; on a failed request
// they call DisableNearby instead, so a stale coordinate from an earlier
// request is never reused.
func (v *View) EnableNearby(center models.Coordinate) {
	v.mu.Lock()
	defer v.mu.Unlock()
	c := center
	v.center = &c
	v.nearby = true
	v.status = nil
}

// DisableNearby deactivates proximity mode and forgets the last coordinate.
func (v *View) DisableNearby() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.nearby = false
	v.center = nil
}

// Results recomputes the filtered list synchronously from the current
// snapshot and filter state.
func (v *View) Results() []models.Shop {
	v.mu.Lock()
	term := strings.ToLower(v.term)
	status := v.status
	nearby := v.nearby && v.center != nil
	var center models.Coordinate
	if nearby {
		center = *v.center
	}
	v.mu.Unlock()

	shops := v.snap.Shops()
	filtered := make([]models.Shop, 0, len(shops))
	for _, shop := range shops {
		if term != "" &&
			!strings.Contains(strings.ToLower(shop.Name), term) &&
			!strings.Contains(strings.ToLower(shop.Address), term) {
			continue
		}
		if status != nil && shop.Status != *status {
			continue
		}
		if nearby {
			if !shop.HasCoordinates() {
				continue
			}
			d := Distance(center.Latitude, center.Longitude, *shop.Latitude, *shop.Longitude)
			if d > NearbyRadiusKm {
				continue
			}
		}
		filtered = append(filtered, shop)
	}
	return filtered
}
