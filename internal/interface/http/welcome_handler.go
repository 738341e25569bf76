package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Welcome handles GET / with the static welcome payload.
func Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to CarbonSaathi API"})
}
