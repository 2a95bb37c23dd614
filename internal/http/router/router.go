package router

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bizdir.app/directory/internal/http/handler"
	"bizdir.app/directory/internal/http/middleware"
	"bizdir.app/directory/internal/metrics"
	"bizdir.app/directory/internal/ratelimit"
	"bizdir.app/directory/internal/service"
)

type RouterConfig struct {
	AdminAPIKey string
	// Limiter guards the public submission endpoints; nil disables limiting.
	Limiter ratelimit.Limiter
	Metrics *metrics.Metrics
	// Gatherer backs /metrics; nil hides the endpoint.
	Gatherer prometheus.Gatherer
	// Ready is checked by /health, typically a database ping.
	Ready func(ctx context.Context) error
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	router.GET("/health", health(cfg.Ready))
	if cfg.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	limiter := cfg.Limiter
	if limiter == nil {
		limiter = ratelimit.NewNoop()
	}
	requireAuth := middleware.RequireAuth(services.Auth())

	AuthRouter(router.Group("/auth"), handler.NewAuthHandler(services.Auth()), requireAuth)

	v1 := router.Group("/api/v1")
	{
		DirectoryRouter(v1, handler.NewDirectoryHandler(services.Directory()))
		SubmissionRouter(v1.Group("/companies/:slug"),
			handler.NewSubmissionHandler(services.Quotes(), services.Claims()),
			middleware.RateLimit(limiter, cfg.Metrics))

		portal := v1.Group("/portal")
		portal.Use(requireAuth)
		PortalRouter(portal, handler.NewPortalHandler(services.Portal()))

		admin := v1.Group("/admin")
		admin.Use(middleware.RequireAdminAPIKey(cfg.AdminAPIKey))
		AdminRouter(admin,
			handler.NewAdminClaimHandler(services.Claims()),
			handler.NewAdminCompanyHandler(services.Companies()))
	}
}

func health(ready func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ready != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := ready(ctx); err != nil {
				slog.WarnContext(ctx, "health check failed", "error", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
