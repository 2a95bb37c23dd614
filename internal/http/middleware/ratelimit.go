package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bizdir.app/directory/internal/metrics"
	"bizdir.app/directory/internal/ratelimit"
)

// RateLimit limits requests per client IP and route. Limiter errors fail open.
func RateLimit(limiter ratelimit.Limiter, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		route := c.FullPath()

		res, err := limiter.Allow(ctx, route+":"+c.ClientIP())
		if err != nil {
			slog.WarnContext(ctx, "rate limiter unavailable", "error", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		if !res.Allowed {
			m.IncrementRateLimited(route)
			retry := int(math.Ceil(res.RetryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(retry))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too many submissions, try again later",
				"code":  "rate_limited",
			})
			return
		}

		c.Next()
	}
}
