package handlers

import (
	"errors"
	"net/http"

	favoriteRepo "shopspotlight/database/repository/favorite"
	favoriteService "shopspotlight/services/favorite"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FavoriteHandler exposes the saved-shops endpoints.
type FavoriteHandler struct {
	Svc favoriteService.Service
}

// AddFavorite saves a shop for the caller.
func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	var req struct {
		ShopID string `json:"shop_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ShopID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shop_id is required"})
		return
	}

	if err := h.Svc.Add(actorID(c), req.ShopID); err != nil {
		if errors.Is(err, favoriteRepo.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		getLogger(c).Error("Failed to add favorite", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add favorite"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "favorite added"})
}

// RemoveFavorite unsaves a shop. Removing a shop that was never saved
// succeeds quietly.
func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	if err := h.Svc.Remove(actorID(c), c.Param("shopId")); err != nil {
		getLogger(c).Error("Failed to remove favorite", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove favorite"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "favorite removed"})
}

// ListFavorites returns the caller's saved shops, newest first.
func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	views, err := h.Svc.List(actorID(c))
	if err != nil {
		getLogger(c).Error("Failed to list favorites", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list favorites"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": views, "count": len(views)})
}
