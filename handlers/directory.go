package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"shopspotlight/models"
	"shopspotlight/services/directory"
	"shopspotlight/services/geo"
	"shopspotlight/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DirectoryHandler serves the customer-facing shop directory from the shared
// in-memory snapshot.
type DirectoryHandler struct {
	Snapshot *directory.Snapshot
	Locator  geo.Locator
}

// directoryEntry is one row of the directory answer: the shop plus the
// contact shortcuts and, in proximity mode, the distance to the caller.
type directoryEntry struct {
	models.Shop
	WhatsAppLink string   `json:"whatsapp_link,omitempty"`
	TelLink      string   `json:"tel_link,omitempty"`
	DistanceKm   *float64 `json:"distance_km,omitempty"`
}

// List answers a directory query. Query params: term (free text over name and
// address), status (one of open/mild/busy/closed), nearby (true enables the
// 1 km proximity filter), lat/lng (the caller's coordinate for proximity
// mode; omitted, the caller's IP is located instead). The status and nearby
// filters are mutually exclusive.
func (h *DirectoryHandler) List(c *gin.Context) {
	logger := getLogger(c)

	statusParam := c.Query("status")
	nearby := c.Query("nearby") == "true"
	if statusParam != "" && nearby {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status and nearby filters cannot be combined"})
		return
	}

	view := directory.NewView(h.Snapshot)
	view.SetTerm(c.Query("term"))

	if statusParam != "" {
		status := models.ShopStatus(statusParam)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status " + strconv.Quote(statusParam)})
			return
		}
		view.SetStatusFilter(status)
	}

	var center *models.Coordinate
	if nearby {
		coord, err := h.resolveCenter(c)
		if err != nil {
			respondPositionError(c, err)
			return
		}
		center = &coord
		view.EnableNearby(coord)
	}

	shops := view.Results()
	entries := make([]directoryEntry, 0, len(shops))
	for _, shop := range shops {
		entry := directoryEntry{
			Shop:         shop,
			WhatsAppLink: utils.WhatsAppLink(shop.Phone),
			TelLink:      utils.TelLink(shop.Phone),
		}
		if center != nil && shop.HasCoordinates() {
			d := directory.Distance(center.Latitude, center.Longitude, *shop.Latitude, *shop.Longitude)
			entry.DistanceKm = &d
		}
		entries = append(entries, entry)
	}

	logger.Debug("Directory query answered", zap.Int("results", len(entries)))
	c.JSON(http.StatusOK, gin.H{"shops": entries, "count": len(entries)})
}

// resolveCenter returns the proximity-mode center: the explicit coordinate
// when both lat and lng are supplied, otherwise a fresh IP-based lookup. A
// failed lookup is an error; no earlier coordinate is ever reused.
func (h *DirectoryHandler) resolveCenter(c *gin.Context) (models.Coordinate, error) {
	latStr, lngStr := c.Query("lat"), c.Query("lng")
	if latStr != "" || lngStr != "" {
		lat, errLat := strconv.ParseFloat(latStr, 64)
		lng, errLng := strconv.ParseFloat(lngStr, 64)
		if errLat != nil || errLng != nil {
			return models.Coordinate{}, errors.New("lat and lng must both be valid numbers")
		}
		return models.Coordinate{Latitude: lat, Longitude: lng}, nil
	}
	return h.Locator.Locate(c.Request.Context(), getRequestIP(c))
}

func respondPositionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, geo.ErrDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "Position lookup denied"})
	case errors.Is(err, geo.ErrTimeout):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Position request timed out"})
	case errors.Is(err, geo.ErrUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Position unavailable"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
