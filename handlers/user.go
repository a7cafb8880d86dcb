package handlers

import (
	"errors"
	"net/http"

	"shopspotlight/models"
	userService "shopspotlight/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler exposes account and session endpoints.
type UserHandler struct {
	Svc userService.Service
}

// SignUp registers a new account. The role in the payload is fixed for the
// lifetime of the account.
func (h *UserHandler) SignUp(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Name     string      `json:"name"`
		Email    string      `json:"email"`
		Phone    string      `json:"phone"`
		Password string      `json:"password"`
		Role     models.Role `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	u, token, err := h.Svc.SignUp(userService.SignUpRequest{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		if errors.Is(err, userService.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Sign-up failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": u, "token": token})
}

// SignIn verifies credentials and returns a fresh session token.
func (h *UserHandler) SignIn(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	u, token, err := h.Svc.SignIn(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, userService.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Sign-in failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Sign-in failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u, "token": token})
}

// SignOut invalidates the caller's session.
func (h *UserHandler) SignOut(c *gin.Context) {
	if err := h.Svc.SignOut(actorID(c)); err != nil {
		getLogger(c).Error("Sign-out failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Sign-out failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}

// GetMe returns the caller's account.
func (h *UserHandler) GetMe(c *gin.Context) {
	u, err := h.Svc.GetByID(actorID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateMe patches the caller's editable profile fields.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req struct {
		Name     *string `json:"name"`
		Phone    *string `json:"phone"`
		PhotoURL *string `json:"photo_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	err := h.Svc.UpdateProfile(actorID(c), userService.ProfileUpdate{
		Name:     req.Name,
		Phone:    req.Phone,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile updated"})
}
