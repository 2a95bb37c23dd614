package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"bizdir.app/directory/internal/metrics"
)

// Recovery turns a handler panic into a JSON 500 and counts it per route.
// The response is left alone when the handler already started writing.
func Recovery(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			route := routeOf(c)
			m.IncrementPanic(route)

			attrs := append(requestAttrs(c, route),
				"panic", fmt.Sprint(rec),
				"stack", string(debug.Stack()),
			)
			slog.ErrorContext(c.Request.Context(), "handler panicked", attrs...)

			if c.Writer.Written() {
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "internal server error",
				"code":  "internal",
			})
		}()
		c.Next()
	}
}
