package middleware

import (
	"time"

	"form-intake/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func LoggingMiddleware(l *logger.Logger) gin.HandlerFunc {
	l = orGlobal(l)
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		l.Info(c.Request.Context(), "request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// orGlobal falls back to the process logger, then to a no-op one.
func orGlobal(l *logger.Logger) *logger.Logger {
	if l != nil {
		return l
	}
	if g := logger.GetGlobalLogger(); g != nil {
		return g
	}
	return logger.NewNop()
}
