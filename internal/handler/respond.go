package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/ServEase-Innovations/payments/internal/service"

	"github.com/gin-gonic/gin"
)

// respondError maps the service failure classes onto stable HTTP statuses.
// Unclassified errors are logged for operators and reported generically.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAvailabilityConflict),
		errors.Is(err, service.ErrAlreadyAssigned),
		errors.Is(err, service.ErrNoActiveLeave),
		errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrBadSignature):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment signature"})
	case errors.Is(err, service.ErrGateway):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("[http] internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
