package controllers

import (
	"errors"

	"claritycoach/models"

	"github.com/gin-gonic/gin"
)

// respondError maps the error taxonomy onto HTTP statuses. This is the
// single place workflow errors become user-facing JSON.
func respondError(c *gin.Context, err error) {
	var validationErr *models.ValidationError
	var stateErr *models.StateError
	var serviceErr *models.ServiceError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(400, gin.H{"error": validationErr.Error()})
	case errors.As(err, &stateErr):
		c.JSON(409, gin.H{"error": stateErr.Error()})
	case errors.As(err, &serviceErr):
		c.JSON(502, gin.H{"error": serviceErr.Error()})
	default:
		c.JSON(500, gin.H{"error": "Something went wrong. Please try again."})
	}
}
