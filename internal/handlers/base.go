package handlers

import (
	"errors"
	"log"
	"net/http"

	"luminate/internal/middleware"
	"luminate/internal/models"
	"luminate/internal/store"

	"github.com/gin-gonic/gin"
)

// CurrentUser returns the authenticated user attached by middleware.LoadUser,
// or nil on anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	v, exists := c.Get(middleware.CheckUserKey)
	if !exists {
		return nil
	}
	return v.(*models.User)
}

// MustUser is for routes behind AuthRequired where the user is guaranteed.
func MustUser(c *gin.Context) *models.User {
	return c.MustGet(middleware.CheckUserKey).(*models.User)
}

// StoreError maps a storage failure onto the wire. Absence is a 404,
// uniqueness conflicts a 409, anything else a logged 500 with a generic
// client message.
func StoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, store.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	default:
		log.Printf("storage error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func Forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
}
