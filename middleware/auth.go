package middleware

import (
	"errors"
	"net/http"
	"strings"

	"asla/geolocation-api/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewAPIKeyMiddleware resolves the API key in the Authorization header
// to a user id and sets it as userID for the handler. The key is the
// sole credential, there is no expiry or rotation. Note that some of
// the response messages are part of the wire contract, typos included
func NewAPIKeyMiddleware(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		apiKey := c.GetHeader("Authorization")
		if apiKey == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":   true,
				"message": "Api key is misssing",
			})
			return
		}

		// Clients may send the key with or without the Bearer prefix
		apiKey = strings.TrimPrefix(apiKey, "Bearer ")

		userID, err := s.UserIDByAPIKey(apiKey)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error":   true,
					"message": "Access Denied. Invalid Api key",
				})
				return
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":   true,
				"message": "Internal server error",
			})

			zap.L().Error("Failed to look up API key", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
