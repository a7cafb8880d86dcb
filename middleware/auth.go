package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	userRepo "shopspotlight/database/repository/user"
	"shopspotlight/models"
	"shopspotlight/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// sessionCacheTTL is how long an auth-cache entry lives after a hit or a DB
// fallback repopulates it.
const sessionCacheTTL = time.Hour

// JWTAuthMiddleware authenticates requests with a Bearer token. The token
// hash is checked against the Redis auth cache first, falling back to the
// stored hash on the user row. On success the request carries "userID" and
// "userRole".
func JWTAuthMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := utils.GetLogger()
		ctx := context.Background()

		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenHash := utils.HashToken(tokenString)
		cacheKey := utils.AuthCachePrefix + tokenHash

		authCache := utils.GetAuthCacheClient()
		cached, err := authCache.Get(ctx, cacheKey).Result()
		if err == nil {
			if id, role, ok := parseSession(cached); ok && id == userID {
				_ = authCache.Expire(ctx, cacheKey, sessionCacheTTL).Err()
				c.Set("userID", id)
				c.Set("userRole", role)
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch"})
			return
		}
		if err != redis.Nil {
			logger.Warn("Auth cache lookup failed, falling back to DB", zap.Error(err))
		}

		u, err := users.GetByID(userID)
		if err != nil || u == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication error"})
			return
		}
		if u.TokenHash == "" || u.TokenHash != tokenHash {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch"})
			return
		}

		session := u.ID + "|" + string(u.Role)
		if err := authCache.Set(ctx, cacheKey, session, sessionCacheTTL).Err(); err != nil {
			logger.Warn("Failed to repopulate auth cache", zap.Error(err))
		}

		c.Set("userID", u.ID)
		c.Set("userRole", u.Role)
		c.Next()
	}
}

// parseSession splits the "userID|role" value stored in the auth cache.
func parseSession(v string) (string, models.Role, bool) {
	idx := strings.LastIndexByte(v, '|')
	if idx <= 0 {
		return "", "", false
	}
	role := models.Role(v[idx+1:])
	if !role.Valid() {
		return "", "", false
	}
	return v[:idx], role, true
}
