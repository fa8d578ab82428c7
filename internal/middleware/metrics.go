package middleware

import (
	"time"

	"mclauncher/services"

	"github.com/gin-gonic/gin"
)

/**
 * HTTP request metrics middleware
 * @description
 * - Counts requests and records their duration per route
 * - Status >= 400 counts as an error
 */
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := c.Writer.Status()

		// label by route template, not by concrete path
		serviceName := c.FullPath()
		if serviceName == "" {
			serviceName = "unknown"
		}

		services.IncrementRequestCount(serviceName)
		services.RecordRequestDuration(serviceName, duration)
		if statusCode >= 400 {
			services.IncrementErrorCount(serviceName)
		}
	}
}

// GetTotalRequests returns the request count reported by /healthz
func GetTotalRequests() int64 {
	return services.GetTotalRequestCount()
}

// GetErrorRequests returns the error count reported by /healthz
func GetErrorRequests() int64 {
	return services.GetTotalErrorCount()
}
