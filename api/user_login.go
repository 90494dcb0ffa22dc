package api

import (
	"errors"
	"net/http"

	"asla/geolocation-api/store"
	"asla/geolocation-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type loginBody struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// UserLogin verifies the credentials and returns the stored profile,
// including the API key the client needs for the geolocation
// endpoints. Unknown email and wrong password produce the exact same
// response so the endpoint can't be used to probe for accounts
func (a *API) UserLogin(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data loginBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   true,
			"message": "Invalid request body",
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	err := validators.RequiredFields(
		validators.RequiredField{Name: "email", Value: data.Email},
		validators.RequiredField{Name: "password", Value: data.Password},
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   true,
			"message": err.Error(),
		})
		return
	}

	user, err := a.Store.UserByEmail(data.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   true,
				"message": "Login failed. Incorrect credentials",
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   true,
			"message": "An error occurred. Please try again",
		})

		zap.L().Error("Failed to fetch user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	ok, err := a.Hasher.Verify(data.Password, user.PasswordHash)
	if err != nil {
		// A digest we can't parse means the row is damaged. The
		// caller still just gets a failed login
		zap.L().Error("Failed to verify password", zap.Error(err), zap.String("requestID", requestID))
	}

	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   true,
			"message": "Login failed. Incorrect credentials",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"error":      false,
		"name":       user.Name,
		"email":      user.Email,
		"gender":     user.Gender,
		"school":     user.School,
		"api_key":    user.APIKey,
		"created_at": user.CreatedAt,
	})
}
