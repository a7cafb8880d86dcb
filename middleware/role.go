package middleware

import (
	"net/http"

	"shopspotlight/models"

	"github.com/gin-gonic/gin"
)

// RequireRole gates a route group to one role. It must run after
// JWTAuthMiddleware, which sets "userRole".
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get("userRole")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		if got, ok := v.(models.Role); !ok || got != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "This action requires the " + string(role) + " role"})
			return
		}
		c.Next()
	}
}
