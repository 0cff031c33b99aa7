package controllers

import (
	"errors"
	"net/http"

	"golang-physiobackend/services"

	"github.com/gin-gonic/gin"
)

// respondServiceError translates domain error kinds to HTTP responses.
// Everything unrecognized becomes a 500 with the given fallback message.
func respondServiceError(c *gin.Context, err error, fallback string) {
	var validation *services.ValidationError
	var incomplete *services.IncompleteSubmissionError
	var unknown *services.UnknownFieldError

	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": fallback + ": not found"})
	case errors.Is(err, services.ErrTemplateInactive):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Template is not active"})
	case errors.Is(err, services.ErrIllegalTransition):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Illegal status transition"})
	case errors.Is(err, services.ErrDuplicateKey):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Duplicate value for a unique field"})
	case errors.As(err, &incomplete):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":          "Cannot complete record with missing fields",
			"missing_fields": incomplete.MissingFields,
		})
	case errors.As(err, &unknown):
		c.JSON(http.StatusBadRequest, gin.H{"error": unknown.Error()})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
