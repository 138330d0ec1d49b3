package handler

import (
	"net/http"
	"time"

	"form-intake/internal/transport/httpdto"
	"form-intake/internal/web"

	"github.com/gin-gonic/gin"
)

func FormPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", web.FormPage())
}

// Health reports liveness only; it does not touch any dependency.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, httpdto.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	})
}
