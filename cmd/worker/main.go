package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"bizdir.app/directory/common/id"
	"bizdir.app/directory/common/logger"
	"bizdir.app/directory/common/otel"
	"bizdir.app/directory/common/typesense"
	"bizdir.app/directory/core/config"
	"bizdir.app/directory/core/db"
	"bizdir.app/directory/internal/index"
	"bizdir.app/directory/internal/metrics"
	"bizdir.app/directory/internal/notify"
	"bizdir.app/directory/internal/queue"
	"bizdir.app/directory/internal/service"
	"bizdir.app/directory/internal/store"
	"bizdir.app/directory/internal/worker"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeWorker)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	fmt.Printf("%s\n", banner)

	telemetry, err := otel.Setup(ctx, cfg.OTel, cfg.Env)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	slog.InfoContext(ctx, "directory worker starting",
		"env", cfg.Env,
		"consumer_group", cfg.Queue.Group,
		"consumer_name", cfg.Queue.Consumer)

	// Different node ID than the server so Snowflake IDs never collide.
	if err := id.Init(2); err != nil {
		slog.ErrorContext(ctx, "failed to initialize id generator", "error", err)
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

	consumer, err := queue.NewRedisConsumer(ctx, redisClient, queue.ConsumerConfig{
		Stream:       cfg.Queue.Stream,
		Group:        cfg.Queue.Group,
		Consumer:     cfg.Queue.Consumer,
		DLQStream:    cfg.Queue.DLQStream,
		BatchSize:    10,
		Block:        5 * time.Second,
		RequeueDelay: time.Second,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create consumer", "error", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	stores := store.NewStores(database.Queries())

	indexer := index.NewNoopIndexer()
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
		indexer = index.NewTypesenseIndexer(client)
		if err := indexer.EnsureSchema(ctx); err != nil {
			slog.WarnContext(ctx, "failed to ensure typesense collection, index tasks will retry", "error", err)
		}
	}

	var notifier notify.Notifier
	if cfg.SMTP.Enabled() {
		notifier = notify.NewSMTPNotifier(cfg.SMTP)
		slog.InfoContext(ctx, "smtp notifications enabled", "host", cfg.SMTP.Host)
	} else {
		notifier = notify.NewLogNotifier(nil)
		slog.InfoContext(ctx, "smtp not configured, emails are logged")
	}

	processor := worker.NewProcessor(stores.Companies(), stores.Claims(), stores.Quotes(), indexer, notifier, worker.ProcessorConfig{
		AdminEmails: cfg.AdminEmails,
		BaseURL:     cfg.PublicURL,
	})

	w := worker.New(consumer, processor, m, worker.Config{
		MaxAttempts: cfg.Queue.MaxAttempts,
	})

	reclaimer := worker.NewRedisReclaimer(redisClient, worker.RedisReclaimerConfig{
		Stream:    cfg.Queue.Stream,
		Group:     cfg.Queue.Group,
		Consumer:  cfg.Queue.Consumer + "-reclaimer",
		MinIdle:   cfg.Queue.ReclaimMinIdle,
		Interval:  time.Minute,
		BatchSize: 10,
		Metrics:   m,
	}, consumer, w.HandleMessage)

	// Session purging only touches the session store.
	auth := service.NewServices(service.Deps{
		Stores:   stores,
		TxRunner: service.NewTxRunner(database),
		Auth:     cfg.Auth,
	}).Auth()

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	errCh := make(chan error, 2)
	go func() {
		errCh <- w.Run(runCtx)
	}()
	go func() {
		reclaimer.Run(runCtx)
		errCh <- nil
	}()
	go worker.RunSessionPurger(runCtx, auth, time.Hour)

	metricsServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "metrics server error", "error", err)
		}
	}()

	slog.InfoContext(ctx, "worker initialized and running", "metrics_port", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down worker...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// Stop reclaimer first (quick)
	reclaimer.Stop()
	w.Stop()
	cancelRun()

	select {
	case <-shutdownCtx.Done():
		slog.WarnContext(ctx, "shutdown timeout exceeded")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			slog.ErrorContext(ctx, "worker error during shutdown", "error", err)
		}
	}

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "metrics server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(ctx, "worker shutdown complete")
}

const banner = `
 ___ ___ ___ ___ ___ _____ ___  _____   __ __      _____  ___ _  _____ ___
|   \_ _| _ \ __/ __|_   _/ _ \| _ \ \ / / \ \    / / _ \| _ \ |/ / __| _ \
| |) | ||   / _| (__  | || (_) |   /\ V /   \ \/\/ / (_) |   / ' <| _||   /
|___/___|_|_\___\___| |_| \___/|_|_\ |_|     \_/\_/ \___/|_|_\_|\_\___|_|_\
`
