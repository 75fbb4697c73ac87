package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetHome handles the health/landing endpoint.
func GetHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "sales-etl-report-api"})
}
