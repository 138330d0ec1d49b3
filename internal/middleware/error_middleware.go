package middleware

import (
	"net/http"

	"form-intake/internal/transport/httpdto"
	"form-intake/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler logs errors attached by handlers. A body is written only when
// the handler did not already write one.
func ErrorHandler(l *logger.Logger) gin.HandlerFunc {
	l = orGlobal(l)
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		for _, e := range c.Errors {
			l.Error(c.Request.Context(), "request error", zap.String("path", c.Request.URL.Path), zap.Error(e.Err))
		}
		if c.Writer.Written() {
			return
		}
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("Internal server error: "+c.Errors.Last().Err.Error()))
	}
}

// Recovery turns a panic into a 500 with the standard error body.
func Recovery(l *logger.Logger) gin.HandlerFunc {
	l = orGlobal(l)
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		l.Error(c.Request.Context(), "panic recovered", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
		c.AbortWithStatusJSON(http.StatusInternalServerError, httpdto.NewErrorResponse("Internal server error"))
	})
}
