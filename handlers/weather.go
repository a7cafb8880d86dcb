package handlers

import (
	"net/http"
	"strconv"

	"shopspotlight/services/geo"
	"shopspotlight/services/weather"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WeatherHandler answers the current-weather widget next to the directory.
type WeatherHandler struct {
	Svc     weather.Service
	Locator geo.Locator
}

// Current returns the condensed weather report for the caller's coordinate.
// Without explicit lat/lng params the caller's IP is located first.
func (h *WeatherHandler) Current(c *gin.Context) {
	logger := getLogger(c)

	latStr, lngStr := c.Query("lat"), c.Query("lng")
	var lat, lng float64
	if latStr != "" && lngStr != "" {
		var errLat, errLng error
		lat, errLat = strconv.ParseFloat(latStr, 64)
		lng, errLng = strconv.ParseFloat(lngStr, 64)
		if errLat != nil || errLng != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng must both be valid numbers"})
			return
		}
	} else {
		coord, err := h.Locator.Locate(c.Request.Context(), getRequestIP(c))
		if err != nil {
			respondPositionError(c, err)
			return
		}
		lat, lng = coord.Latitude, coord.Longitude
	}

	report, err := h.Svc.Current(c.Request.Context(), lat, lng)
	if err != nil {
		logger.Warn("Weather lookup failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Weather unavailable"})
		return
	}
	c.JSON(http.StatusOK, report)
}
