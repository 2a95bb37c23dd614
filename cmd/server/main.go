package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"bizdir.app/directory/common/id"
	"bizdir.app/directory/common/logger"
	"bizdir.app/directory/common/otel"
	"bizdir.app/directory/common/typesense"
	"bizdir.app/directory/core/config"
	"bizdir.app/directory/core/db"
	"bizdir.app/directory/internal/http/middleware"
	httprouter "bizdir.app/directory/internal/http/router"
	"bizdir.app/directory/internal/identity"
	"bizdir.app/directory/internal/index"
	"bizdir.app/directory/internal/metrics"
	"bizdir.app/directory/internal/queue"
	"bizdir.app/directory/internal/ratelimit"
	"bizdir.app/directory/internal/service"
	"bizdir.app/directory/internal/store"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeServer)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel, cfg.Env)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "directory server starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	redisOpts, err := redis.ParseURL(cfg.Queue.RedisURL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	slog.InfoContext(ctx, "redis connected", "stream", cfg.Queue.Stream)

	producer := queue.NewRedisProducer(redisClient, cfg.Queue.Stream, nil)
	defer producer.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	stores := store.NewStores(database.Queries())

	var searchIndex index.CompanyIndex
	if cfg.Typesense.Enabled() {
		client, err := typesense.New(typesense.Config{
			URL:        cfg.Typesense.URL,
			APIKey:     cfg.Typesense.APIKey,
			Collection: cfg.Typesense.Collection,
			Timeout:    cfg.Typesense.Timeout,
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to create typesense client", "error", err)
			os.Exit(1)
		}
		searchIndex = index.NewTypesense(client, stores.Companies())
		slog.InfoContext(ctx, "typesense search enabled", "collection", cfg.Typesense.Collection)
	} else {
		slog.InfoContext(ctx, "typesense disabled, searching postgres only")
	}

	provider := identity.NewWorkOS(cfg.WorkOS)

	services := service.NewServices(service.Deps{
		Stores:      stores,
		TxRunner:    service.NewTxRunner(database),
		Producer:    producer,
		Provider:    provider,
		Provisioner: identity.NewProvisioner(provider, m, identity.WithInviteExpiryDays(cfg.WorkOS.InviteExpiryDays)),
		SearchIndex: searchIndex,
		Metrics:     m,
		Auth:        cfg.Auth,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	limiter := ratelimit.NewRedis(redisClient, "directory:ratelimit", cfg.RateLimit.SubmissionsPerWindow, cfg.RateLimit.Window)

	router := setupRouter(cfg, services, m, registry, limiter, database.Ping)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Claim approval waits on identity provider retries.
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupRouter(cfg config.Config, services *service.Services, m *metrics.Metrics, gatherer prometheus.Gatherer, limiter ratelimit.Limiter, ready func(context.Context) error) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery(m))
	router.Use(middleware.Logger(m))

	httprouter.SetupRoutes(router, services, httprouter.RouterConfig{
		AdminAPIKey: cfg.AdminAPIKey,
		Limiter:     limiter,
		Metrics:     m,
		Gatherer:    gatherer,
		Ready:       ready,
	})

	return router
}

const banner = `
 ___ ___ ___ ___ ___ _____ ___  _____   __
|   \_ _| _ \ __/ __|_   _/ _ \| _ \ \ / /
| |) | ||   / _| (__  | || (_) |   /\ V /
|___/___|_|_\___\___| |_| \___/|_|_\ |_|
`
