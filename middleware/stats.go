package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/webcheck/backend/metrics"
	"github.com/webcheck/backend/stats"
)

// TargetURLKey is the context key under which the analyze handler stores the
// URL it audited.
const TargetURLKey = "webcheck.target_url"

// Stats records visitors, analysis outcomes and per-route HTTP metrics.
func Stats(s *stats.Statistics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		s.TrackVisitor(c.ClientIP())

		c.Next()

		elapsed := time.Since(start)
		route := c.FullPath()
		metrics.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), elapsed)

		if target, ok := c.Get(TargetURLKey); ok {
			s.TrackAnalysis(target.(string), elapsed, c.Writer.Status() >= 400)
		}
	}
}
