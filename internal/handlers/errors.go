package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"printshop/internal/export"
	"printshop/internal/models"
)

// respondError maps service errors onto {"error": ...} responses.
func respondError(c *gin.Context, err error) {
	switch {
	case models.IsValidation(err), errors.Is(err, export.ErrInvalidBackup):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	default:
		log.Printf("Error handling %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
