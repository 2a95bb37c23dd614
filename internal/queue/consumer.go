package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"bizdir.app/directory/common/logger"
)

type ConsumerConfig struct {
	Stream       string        // Redis stream name
	Group        string        // Redis consumer group name
	Consumer     string        // Redis consumer name
	DLQStream    string        // Dead letter queue stream for failed messages
	BatchSize    int64         // Number of messages to process per batch
	Block        time.Duration // How long to block/poll for new messages
	RequeueDelay time.Duration // Delay before retrying failed messages
}

type Message struct {
	ID      string
	Task    Task
	TraceID string
	Raw     redis.XMessage
}

// Attempt is the delivery attempt of the message, starting at 1.
func (m Message) Attempt() int {
	return m.Task.Attempt
}

// MessageProcessor processes a queue message.
type MessageProcessor func(ctx context.Context, msg Message) error

type RedisConsumer struct {
	client *redis.Client
	cfg    ConsumerConfig
}

func NewRedisConsumer(ctx context.Context, client *redis.Client, cfg ConsumerConfig) (*RedisConsumer, error) {
	consumer := &RedisConsumer{
		client: client,
		cfg:    cfg,
	}

	if err := consumer.ensureGroup(ctx); err != nil {
		return nil, err
	}

	return consumer, nil
}

func (c *RedisConsumer) ensureGroup(ctx context.Context) error {
	// Start from "0" so a recreated group still sees messages already in the stream.
	if err := c.client.XGroupCreateMkStream(ctx, c.cfg.Stream, c.cfg.Group, "0").Err(); err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("creating consumer group: %w", err)
	}
	return nil
}

func (c *RedisConsumer) Read(ctx context.Context) ([]Message, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "directory.queue.consumer",
	})

	streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    c.cfg.Group,
		Consumer: c.cfg.Consumer,
		// ">" reads only messages never delivered to this group. Unacked
		// messages are picked up by the reclaimer.
		Streams: []string{c.cfg.Stream, ">"},
		Count:   c.cfg.BatchSize,
		Block:   c.cfg.Block,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []Message{}, nil
		}
		return nil, fmt.Errorf("reading from stream: %w", err)
	}

	var messages []Message
	for _, stream := range streams {
		for _, msg := range stream.Messages {
			parsed, parseErr := ParseMessage(msg)
			if parseErr != nil {
				slog.ErrorContext(ctx, "failed to parse message",
					"error", parseErr,
					"raw_message_id", msg.ID,
					"stream", c.cfg.Stream)
				_ = c.Ack(ctx, Message{ID: msg.ID, Raw: msg})
				continue
			}
			messages = append(messages, parsed)
		}
	}

	if len(messages) > 0 {
		slog.DebugContext(ctx, "read messages from stream",
			"count", len(messages),
			"stream", c.cfg.Stream,
			"consumer", c.cfg.Consumer)
	}

	return messages, nil
}

func (c *RedisConsumer) Ack(ctx context.Context, msg Message) error {
	if err := c.client.XAck(ctx, c.cfg.Stream, c.cfg.Group, msg.ID).Err(); err != nil {
		return fmt.Errorf("xack (stream=%s): %w", c.cfg.Stream, err)
	}

	slog.DebugContext(ctx, "message acknowledged", "stream", c.cfg.Stream)
	return nil
}

// Requeue waits RequeueDelay, then acks msg and appends a copy with the
// attempt incremented. Both happen in one MULTI so the task is never lost or
// duplicated.
func (c *RedisConsumer) Requeue(ctx context.Context, msg Message, errMsg string) error {
	if c.cfg.RequeueDelay > 0 {
		t := time.NewTimer(c.cfg.RequeueDelay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}

	task := msg.Task
	task.Attempt = msg.Attempt() + 1
	values := taskValues(task)
	if errMsg != "" {
		values["last_error"] = logger.Truncate(errMsg, 500)
	}

	if err := c.ackAndAdd(ctx, msg.ID, c.cfg.Stream, values); err != nil {
		return fmt.Errorf("requeue: %w", err)
	}

	slog.InfoContext(ctx, "task requeued", "next_attempt", task.Attempt, "reason", errMsg)
	return nil
}

// SendDLQ moves msg to the dead letter stream with the final error.
func (c *RedisConsumer) SendDLQ(ctx context.Context, msg Message, errMsg string) error {
	values := taskValues(msg.Task)
	values["error"] = logger.Truncate(errMsg, 500)
	values["original_id"] = msg.ID

	if err := c.ackAndAdd(ctx, msg.ID, c.cfg.DLQStream, values); err != nil {
		return fmt.Errorf("dead-letter (stream=%s): %w", c.cfg.DLQStream, err)
	}

	slog.ErrorContext(ctx, "task dead-lettered", "final_error", errMsg, "dlq_stream", c.cfg.DLQStream)
	return nil
}

func (c *RedisConsumer) ackAndAdd(ctx context.Context, id, stream string, values map[string]any) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.XAck(ctx, c.cfg.Stream, c.cfg.Group, id)
		pipe.XAdd(ctx, &redis.XAddArgs{Stream: stream, Values: values})
		return nil
	})
	return err
}

// ParseMessage decodes a stream entry and checks that the fields required by
// its task type are present.
func ParseMessage(msg redis.XMessage) (Message, error) {
	companyID, err := parseOptionalInt64(msg.Values, "company_id")
	if err != nil {
		return Message{}, err
	}
	quoteID, err := parseOptionalInt64(msg.Values, "quote_id")
	if err != nil {
		return Message{}, err
	}
	claimID, err := parseOptionalInt64(msg.Values, "claim_id")
	if err != nil {
		return Message{}, err
	}
	attempt, err := parseOptionalInt(msg.Values, "attempt")
	if err != nil {
		return Message{}, err
	}
	if attempt == 0 {
		attempt = 1
	}

	taskType := TaskType(parseOptionalString(msg.Values, "task_type"))
	kind := NotificationKind(parseOptionalString(msg.Values, "kind"))
	traceID := parseOptionalString(msg.Values, "trace_id")
	taskID := parseOptionalString(msg.Values, "task_id")
	if taskID == "" {
		taskID = msg.ID
	}

	switch taskType {
	case TaskTypeCompanyIndex:
		if companyID == nil {
			return Message{}, fmt.Errorf("missing company_id")
		}
	case TaskTypeReindexAll:
	case TaskTypeNotification:
		if !kind.Valid() {
			return Message{}, fmt.Errorf("unknown notification kind %q", kind)
		}
		if companyID == nil {
			return Message{}, fmt.Errorf("missing company_id")
		}
		if kind == NotificationQuoteSubmitted && quoteID == nil {
			return Message{}, fmt.Errorf("missing quote_id")
		}
		if kind != NotificationQuoteSubmitted && claimID == nil {
			return Message{}, fmt.Errorf("missing claim_id")
		}
	case "":
		return Message{}, fmt.Errorf("missing task_type")
	default:
		return Message{}, fmt.Errorf("unknown task_type %q", taskType)
	}

	task := Task{
		TaskType:  taskType,
		TaskID:    taskID,
		CompanyID: companyID,
		QuoteID:   quoteID,
		ClaimID:   claimID,
		Kind:      kind,
		Attempt:   attempt,
	}
	if traceID != "" {
		task.TraceID = &traceID
	}

	return Message{
		ID:      msg.ID,
		Task:    task,
		TraceID: traceID,
		Raw:     msg,
	}, nil
}

func parseOptionalInt64(values map[string]any, key string) (*int64, error) {
	raw, ok := values[key]
	if !ok {
		return nil, nil
	}
	num, err := strconv.ParseInt(fmt.Sprint(raw), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", key, err)
	}
	return &num, nil
}

func parseOptionalInt(values map[string]any, key string) (int, error) {
	raw, ok := values[key]
	if !ok {
		return 0, nil
	}
	num, err := strconv.Atoi(fmt.Sprint(raw))
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return num, nil
}

func parseOptionalString(values map[string]any, key string) string {
	raw, ok := values[key]
	if !ok {
		return ""
	}
	return fmt.Sprint(raw)
}
