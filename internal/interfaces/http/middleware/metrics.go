package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RequestMetrics is the subset of the metrics recorder used here.
type RequestMetrics interface {
	RecordRequest(method, route string, status int, duration time.Duration)
}

// Metrics records one observation per request, labelled by route template
// so path parameters do not explode label cardinality.
func Metrics(recorder RequestMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		recorder.RecordRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
