package api

import (
	"net/http"

	"asla/geolocation-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type geolocationBody struct {
	Latitude  *float64 `json:"latitude" form:"latitude"`
	Longitude *float64 `json:"longitude" form:"longitude"`
	Height    *float64 `json:"height" form:"height"`
}

// GeolocationSet stores the position of the authenticated user. A
// user has at most one position, writing again overwrites it
func (a *API) GeolocationSet(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	var data geolocationBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   true,
			"message": "Invalid request body",
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var missing []string
	if data.Latitude == nil {
		missing = append(missing, "latitude")
	}
	if data.Longitude == nil {
		missing = append(missing, "longitude")
	}
	if data.Height == nil {
		missing = append(missing, "height")
	}

	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   true,
			"message": validators.MissingFieldsError(missing).Error(),
		})
		return
	}

	err := a.Store.UpsertGeolocation(userID, *data.Latitude, *data.Longitude, *data.Height)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   true,
			"message": "Failed to set geolocation. Please try again!",
		})

		zap.L().Error("Failed to set geolocation", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"error":   false,
		"message": "Geolocation set successfully",
	})
}
