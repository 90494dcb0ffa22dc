package api

import (
	"errors"
	"net/http"

	"asla/geolocation-api/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GeolocationFetch returns the stored position of the authenticated
// user, or 404 if they never reported one
func (a *API) GeolocationFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	geo, err := a.Store.Geolocation(userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   true,
				"message": "The requested resource doesn't exists",
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   true,
			"message": "An error occurred. Please try again",
		})

		zap.L().Error("Failed to fetch geolocation", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"error":     false,
		"latitude":  geo.Latitude,
		"longitude": geo.Longitude,
		"height":    geo.Height,
	})
}
