package queue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"bizdir.app/directory/common/logger"
)

type Producer interface {
	Enqueue(ctx context.Context, task Task) error
	Close() error
}

type redisProducer struct {
	client *redis.Client
	stream string
	logger *slog.Logger
}

func NewRedisProducer(client *redis.Client, stream string, logger *slog.Logger) Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &redisProducer{
		client: client,
		stream: stream,
		logger: logger,
	}
}

func (p *redisProducer) Enqueue(ctx context.Context, task Task) error {
	if task.Attempt <= 0 {
		task.Attempt = 1
	}
	if task.TaskID == "" {
		task.TaskID = uuid.NewString()
	}
	if task.TraceID == nil {
		if traceID := logger.TraceIDFromContext(ctx); traceID != "" {
			task.TraceID = &traceID
		}
	}

	if err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: taskValues(task),
	}).Err(); err != nil {
		return fmt.Errorf("enqueue %s task: %w", task.TaskType, err)
	}

	p.logger.InfoContext(ctx, "enqueued task",
		"task_type", task.TaskType,
		"task_id", task.TaskID,
		"kind", task.Kind,
		"attempt", task.Attempt)
	return nil
}

func (p *redisProducer) Close() error {
	return p.client.Close()
}

func taskValues(task Task) map[string]any {
	values := map[string]any{
		"task_type": string(task.TaskType),
		"task_id":   task.TaskID,
		"attempt":   task.Attempt,
	}
	if task.CompanyID != nil {
		values["company_id"] = *task.CompanyID
	}
	if task.QuoteID != nil {
		values["quote_id"] = *task.QuoteID
	}
	if task.ClaimID != nil {
		values["claim_id"] = *task.ClaimID
	}
	if task.Kind != "" {
		values["kind"] = string(task.Kind)
	}
	if task.TraceID != nil && *task.TraceID != "" {
		values["trace_id"] = *task.TraceID
	}
	return values
}
