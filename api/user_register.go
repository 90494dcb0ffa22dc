package api

import (
	"errors"
	"net/http"
	"strings"

	"asla/geolocation-api/store"
	"asla/geolocation-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type registerBody struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Gender   string `json:"gender" form:"gender"`
	School   string `json:"school" form:"school"`
}

// UserRegister creates a new user account. The API key issued here is
// the credential for the geolocation endpoints and never changes
func (a *API) UserRegister(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data registerBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   true,
			"message": "Invalid request body",
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	err := validators.RequiredFields(
		validators.RequiredField{Name: "name", Value: data.Name},
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

	if err := validators.EmailValidator(data.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   true,
			"message": err.Error(),
		})
		return
	}

	// Fast path for the common duplicate case. The unique index on
	// email is what actually closes the race between two concurrent
	// registrations
	exists, err := a.Store.EmailExists(data.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   true,
			"message": "Oops! An error occurred while registereing",
		})

		zap.L().Error("Failed to check if user is registered", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if exists {
		c.JSON(http.StatusConflict, gin.H{
			"error":   true,
			"message": "Sorry, this email already existed",
		})
		return
	}

	hash, err := a.Hasher.Hash(data.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   true,
			"message": "Oops! An error occurred while registereing",
		})

		zap.L().Error("Failed to hash password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	_, err = a.Store.CreateUser(data.Name, data.Email, hash, optional(data.Gender), optional(data.School))
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{
				"error":   true,
				"message": "Sorry, this email already existed",
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   true,
			"message": "Oops! An error occurred while registereing",
		})

		zap.L().Error("Failed to create user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"error":   false,
		"message": "You are successfully registered",
	})
}

// optional normalizes an empty form value to NULL
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	return &s
}
