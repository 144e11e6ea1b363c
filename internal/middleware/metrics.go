package middleware

import (
	"strconv"
	"time"

	"github.com/Checkmartyr/Hyperlocal-Community-Barter/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records request count and duration per route.
func Metrics() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		path := ctx.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(ctx.Writer.Status())
		metrics.ObserveHTTPRequest(ctx.Request.Method, path, status, time.Since(start))
	}
}
