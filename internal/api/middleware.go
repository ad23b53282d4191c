package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"bgp-notifier/internal/logging"
)

// RequestLoggingMiddleware logs one line per handled request.
func RequestLoggingMiddleware(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()
		logger.Infof("Request: %s %s from %s, Status: %d, Latency: %v", method, path, c.ClientIP(), status, latency)
	}
}
