package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"bizdir.app/directory/internal/metrics"
)

// Logger logs every request and records its latency in m. Requests are
// labelled by route template so slugs and IDs stay out of metric labels.
func Logger(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := routeOf(c)
		status := c.Writer.Status()
		m.ObserveHTTPRequest(c.Request.Method, route, status, start)

		attrs := append(requestAttrs(c, route),
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
			"user_agent", c.Request.UserAgent(),
		)
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}

		ctx := c.Request.Context()
		level := slog.LevelInfo
		msg := "request"
		switch {
		case status >= 500:
			level, msg = slog.LevelError, "request failed"
		case status >= 400:
			level, msg = slog.LevelWarn, "request rejected"
		case route == "/health" || route == "/metrics":
			level = slog.LevelDebug
		}
		slog.Log(ctx, level, msg, attrs...)
	}
}

func routeOf(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unmatched"
}

// requestAttrs are the fields shared by the request log and the panic log.
func requestAttrs(c *gin.Context, route string) []any {
	path := c.Request.URL.Path
	if c.Request.URL.RawQuery != "" {
		path += "?" + c.Request.URL.RawQuery
	}
	attrs := []any{
		"method", c.Request.Method,
		"path", path,
		"route", route,
	}
	if p := GetPrincipal(c.Request.Context()); p != nil && p.User != nil {
		attrs = append(attrs, "user_id", p.User.ID)
	}
	return attrs
}
