package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"bizdir.app/directory/common/logger"
	"bizdir.app/directory/internal/metrics"
	"bizdir.app/directory/internal/queue"
)

type RedisReclaimerConfig struct {
	Stream   string
	Group    string
	Consumer string
	// Entries pending longer than MinIdle are assumed to belong to a dead worker.
	MinIdle   time.Duration
	Interval  time.Duration
	BatchSize int64
	Metrics   *metrics.Metrics
}

// RedisReclaimer takes over tasks a crashed worker read but never acked and
// runs them through the same handler as fresh deliveries.
type RedisReclaimer struct {
	client  *redis.Client
	cfg     RedisReclaimerConfig
	acker   Consumer
	handler queue.MessageProcessor

	stop chan struct{}
	done chan struct{}
}

func NewRedisReclaimer(client *redis.Client, cfg RedisReclaimerConfig, acker Consumer, handler queue.MessageProcessor) *RedisReclaimer {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 10
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	return &RedisReclaimer{
		client:  client,
		cfg:     cfg,
		acker:   acker,
		handler: handler,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Run sweeps every Interval until Stop is called or ctx is done.
func (r *RedisReclaimer) Run(ctx context.Context) {
	defer close(r.done)
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "directory.worker.reclaimer"})

	slog.InfoContext(ctx, "reclaimer started",
		"stream", r.cfg.Stream, "interval", r.cfg.Interval, "min_idle", r.cfg.MinIdle)

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stop:
			return
		case <-ticker.C:
			n, err := r.ReclaimOnce(ctx)
			if err != nil {
				slog.ErrorContext(ctx, "reclaim sweep failed", "error", err)
			} else if n > 0 {
				slog.InfoContext(ctx, "reclaimed stale tasks", "count", n)
			}
		}
	}
}

// Stop ends Run and waits for an in-flight sweep to finish.
func (r *RedisReclaimer) Stop() {
	close(r.stop)
	<-r.done
}

// ReclaimOnce walks the pending list with XAUTOCLAIM and handles every entry
// idle for at least MinIdle. It returns how many entries it took over.
func (r *RedisReclaimer) ReclaimOnce(ctx context.Context) (int, error) {
	claimed := 0
	cursor := "0-0"
	for {
		msgs, next, err := r.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
			Stream:   r.cfg.Stream,
			Group:    r.cfg.Group,
			Consumer: r.cfg.Consumer,
			MinIdle:  r.cfg.MinIdle,
			Start:    cursor,
			Count:    r.cfg.BatchSize,
		}).Result()
		if err != nil {
			return claimed, fmt.Errorf("xautoclaim: %w", err)
		}

		for _, msg := range msgs {
			r.handle(ctx, msg)
		}
		claimed += len(msgs)
		r.cfg.Metrics.AddReclaimed(len(msgs))

		if next == "0-0" || ctx.Err() != nil {
			return claimed, nil
		}
		cursor = next
	}
}

func (r *RedisReclaimer) handle(ctx context.Context, raw redis.XMessage) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{MessageID: &raw.ID})

	msg, err := queue.ParseMessage(raw)
	if err != nil {
		// Unparseable entries would be reclaimed forever.
		slog.ErrorContext(ctx, "dropping unparseable reclaimed task", "error", err)
		if err := r.acker.Ack(ctx, queue.Message{ID: raw.ID, Raw: raw}); err != nil {
			slog.ErrorContext(ctx, "ack of unparseable task failed", "error", err)
		}
		return
	}

	slog.InfoContext(ctx, "handling reclaimed task", "task_type", msg.Task.TaskType, "attempt", msg.Attempt())
	// The handler settles the message and logs its own failures.
	_ = r.handler(ctx, msg)
}
