package handlers

import (
	"io"
	"net/http"

	"shopspotlight/realtime"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EventsHandler streams change notifications to clients over SSE so open
// directories and booking lists can refetch.
type EventsHandler struct {
	Hub realtime.Hub
}

// watchable lists the collections a client may subscribe to.
var watchable = map[string]bool{
	realtime.CollectionShops:     true,
	realtime.CollectionBookings:  true,
	realtime.CollectionFavorites: true,
}

// Stream subscribes the client to one collection's change feed. Each event
// is delivered as an SSE message; the stream ends when the client goes away.
func (h *EventsHandler) Stream(c *gin.Context) {
	logger := getLogger(c)

	collection := c.Param("collection")
	if !watchable[collection] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown collection \"" + collection + "\""})
		return
	}

	events, cancel, err := h.Hub.Subscribe(c.Request.Context(), collection)
	if err != nil {
		logger.Error("Failed to subscribe to change feed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open event stream"})
		return
	}
	defer cancel()

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("change", ev)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
