package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"verdant/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// JWTAuthMiddleware validates the bearer token, checks it against the redis
// auth cache (so revoked sessions die immediately), and puts the caller's
// userID into the request context.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := utils.GetLogger()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
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

		// Compare against the cached session hash. A missing cache entry means
		// the session was revoked or expired server-side. If redis itself is
		// down, fall back to trusting the signed token.
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		cacheKey := utils.AuthCachePrefix + userID

		cachedHash, err := utils.GetAuthCacheClient().Get(ctx, cacheKey).Result()
		switch {
		case err == nil:
			if cachedHash != utils.HashToken(tokenString) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch"})
				return
			}
			_ = utils.GetAuthCacheClient().Expire(ctx, cacheKey, utils.AuthCacheTTL).Err()
		case err == redis.Nil:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
			return
		default:
			logger.Warn("Auth cache unavailable, accepting signed token", zap.Error(err))
		}

		c.Set("userID", userID)
		c.Next()
	}
}

// UserIDFromContext returns the authenticated caller's ID set by
// JWTAuthMiddleware.
func UserIDFromContext(c *gin.Context) (string, bool) {
	val, ok := c.Get("userID")
	if !ok {
		return "", false
	}
	id, ok := val.(string)
	return id, ok && id != ""
}
