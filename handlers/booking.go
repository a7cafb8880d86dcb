package handlers

import (
	"errors"
	"net/http"
	"time"

	"shopspotlight/models"
	bookingService "shopspotlight/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking lifecycle endpoints.
type BookingHandler struct {
	Svc bookingService.Service
}

// CreateBooking submits a new booking request for the caller.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		ShopID        string    `json:"shop_id"`
		ServiceName   string    `json:"service_name"`
		PreferredTime time.Time `json:"preferred_time"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	b, err := h.Svc.Create(actorID(c), bookingService.CreateRequest{
		ShopID:        req.ShopID,
		ServiceName:   req.ServiceName,
		PreferredTime: req.PreferredTime,
	})
	if err != nil {
		var verr *bookingService.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
			return
		}
		logger.Error("Booking creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		return
	}
	c.JSON(http.StatusCreated, b)
}

// UpdateBookingStatus applies a status transition to one booking. Legacy
// status names are normalized before the state machine sees them.
func (h *BookingHandler) UpdateBookingStatus(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	next, ok := models.NormalizeBookingStatus(req.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown booking status \"" + req.Status + "\""})
		return
	}

	actor := bookingService.Actor{UserID: actorID(c), Role: actorRole(c)}
	b, err := h.Svc.Transition(c.Param("id"), next, actor)
	if err != nil {
		var terr *bookingService.TransitionError
		if errors.As(err, &terr) {
			c.JSON(http.StatusConflict, gin.H{"error": terr.Message})
			return
		}
		logger.Error("Booking transition failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update booking"})
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListBookings returns the bookings visible to the caller, newest first,
// with per-status tab counts.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	actor := bookingService.Actor{UserID: actorID(c), Role: actorRole(c)}
	views, err := h.Svc.ListFor(actor)
	if err != nil {
		getLogger(c).Error("Failed to list bookings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookings"})
		return
	}

	counts := make(map[models.BookingStatus]int)
	for _, v := range views {
		counts[v.Status]++
	}
	c.JSON(http.StatusOK, gin.H{"bookings": views, "counts": counts, "total": len(views)})
}

// actorRole returns the authenticated role set by the auth middleware.
func actorRole(c *gin.Context) models.Role {
	if v, exists := c.Get("userRole"); exists {
		if role, ok := v.(models.Role); ok {
			return role
		}
	}
	return ""
}
