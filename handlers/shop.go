package handlers

import (
	"errors"
	"net/http"

	"shopspotlight/models"
	shopService "shopspotlight/services/shop"
	"shopspotlight/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ShopHandler exposes shop profile and catalog endpoints.
type ShopHandler struct {
	Svc shopService.Service
}

// CreateShop registers the caller's shop. A second shop for the same owner
// is rejected.
func (h *ShopHandler) CreateShop(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Name        string   `json:"name"`
		Address     string   `json:"address"`
		Description string   `json:"description"`
		Phone       string   `json:"phone"`
		PhotoURL    string   `json:"photo_url"`
		Latitude    *float64 `json:"latitude"`
		Longitude   *float64 `json:"longitude"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	shop, err := h.Svc.Create(actorID(c), shopService.CreateRequest{
		Name:        req.Name,
		Address:     req.Address,
		Description: req.Description,
		Phone:       req.Phone,
		PhotoURL:    req.PhotoURL,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	})
	if err != nil {
		var verr *shopService.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusConflict, gin.H{"error": verr.Message})
			return
		}
		logger.Error("Shop creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create shop"})
		return
	}
	c.JSON(http.StatusCreated, shop)
}

// GetMyShop returns the caller's shop, or 404 when none exists yet.
func (h *ShopHandler) GetMyShop(c *gin.Context) {
	shop, err := h.Svc.GetByOwner(actorID(c))
	if err != nil {
		getLogger(c).Error("Failed to load owner's shop", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load shop"})
		return
	}
	if shop == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No shop registered yet"})
		return
	}
	c.JSON(http.StatusOK, withContactLinks(shop))
}

// GetShop returns one shop by ID, with contact shortcuts attached.
func (h *ShopHandler) GetShop(c *gin.Context) {
	shop, err := h.Svc.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shop not found"})
		return
	}
	c.JSON(http.StatusOK, withContactLinks(shop))
}

// UpdateStatus flips the caller's shop occupancy status.
func (h *ShopHandler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status models.ShopStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := h.Svc.UpdateStatus(actorID(c), req.Status); err != nil {
		respondShopError(c, err, "Failed to update status")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "status updated"})
}

// UpdateProfile patches the caller's shop profile fields.
func (h *ShopHandler) UpdateProfile(c *gin.Context) {
	var req struct {
		Name        *string `json:"name"`
		Address     *string `json:"address"`
		Description *string `json:"description"`
		Phone       *string `json:"phone"`
		PhotoURL    *string `json:"photo_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	err := h.Svc.UpdateProfile(actorID(c), shopService.ProfileUpdate{
		Name:        req.Name,
		Address:     req.Address,
		Description: req.Description,
		Phone:       req.Phone,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		respondShopError(c, err, "Failed to update profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile updated"})
}

// UpdateLocation sets or clears the caller's shop coordinates.
func (h *ShopHandler) UpdateLocation(c *gin.Context) {
	var req struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := h.Svc.UpdateLocation(actorID(c), req.Latitude, req.Longitude); err != nil {
		respondShopError(c, err, "Failed to update location")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "location updated"})
}

// AddService appends a catalog entry to the caller's shop.
func (h *ShopHandler) AddService(c *gin.Context) {
	var req struct {
		Name        string  `json:"name"`
		Price       float64 `json:"price"`
		Description string  `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	entry, err := h.Svc.AddService(actorID(c), shopService.ServiceInput{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
	})
	if err != nil {
		respondShopError(c, err, "Failed to add service")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// UpdateService edits one catalog entry of the caller's shop by its ID.
func (h *ShopHandler) UpdateService(c *gin.Context) {
	var req struct {
		Name        string  `json:"name"`
		Price       float64 `json:"price"`
		Description string  `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	err := h.Svc.UpdateService(actorID(c), c.Param("serviceId"), shopService.ServiceInput{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
	})
	if err != nil {
		respondShopError(c, err, "Failed to update service")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "service updated"})
}

// RemoveService deletes one catalog entry of the caller's shop by its ID.
func (h *ShopHandler) RemoveService(c *gin.Context) {
	if err := h.Svc.RemoveService(actorID(c), c.Param("serviceId")); err != nil {
		respondShopError(c, err, "Failed to remove service")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "service removed"})
}

func respondShopError(c *gin.Context, err error, fallback string) {
	var verr *shopService.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
		return
	}
	getLogger(c).Error(fallback, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
}

// withContactLinks decorates a shop with its WhatsApp and dialer shortcuts.
func withContactLinks(shop *models.Shop) gin.H {
	return gin.H{
		"shop":          shop,
		"whatsapp_link": utils.WhatsAppLink(shop.Phone),
		"tel_link":      utils.TelLink(shop.Phone),
	}
}
