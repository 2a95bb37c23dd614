package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"bizdir.app/directory/common/logger"
	"bizdir.app/directory/internal/metrics"
	"bizdir.app/directory/internal/queue"
)

type Config struct {
	MaxAttempts int
	// ErrorBackoff is the pause after a failed stream read.
	ErrorBackoff time.Duration
}

type Worker struct {
	consumer Consumer
	handler  TaskHandler
	metrics  *metrics.Metrics
	cfg      Config

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func New(consumer Consumer, handler TaskHandler, m *metrics.Metrics, cfg Config) *Worker {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.ErrorBackoff <= 0 {
		cfg.ErrorBackoff = time.Second
	}
	return &Worker{
		consumer:  consumer,
		handler:   handler,
		metrics:   m,
		cfg:       cfg,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

func (w *Worker) Run(ctx context.Context) error {
	defer close(w.stoppedCh)

	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "directory.worker"})
	slog.InfoContext(ctx, "worker started", "max_attempts", w.cfg.MaxAttempts)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopCh:
			slog.InfoContext(ctx, "worker stopping")
			return nil
		default:
			if err := w.processOneBatch(ctx); err != nil {
				slog.ErrorContext(ctx, "batch processing error", "error", err)
				select {
				case <-ctx.Done():
				case <-w.stopCh:
				case <-time.After(w.cfg.ErrorBackoff):
				}
			}
		}
	}
}

// Stop signals Run to return and waits for it.
func (w *Worker) Stop() {
	close(w.stopCh)
	<-w.stoppedCh
}

func (w *Worker) processOneBatch(ctx context.Context) error {
	messages, err := w.consumer.Read(ctx)
	if err != nil {
		return fmt.Errorf("reading from stream: %w", err)
	}

	for _, msg := range messages {
		_ = w.HandleMessage(ctx, msg)
	}
	return nil
}

// HandleMessage processes msg and settles it: ack on success, requeue on
// failure, dead-letter once the attempts are used up. It matches
// queue.MessageProcessor so the reclaimer can reuse it.
func (w *Worker) HandleMessage(ctx context.Context, msg queue.Message) error {
	taskType := string(msg.Task.TaskType)
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		MessageID: &msg.ID,
		TaskType:  &taskType,
		CompanyID: msg.Task.CompanyID,
	})

	span := logger.StartTaskSpan(ctx, msg.TraceID, "worker.process_task",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("task.type", taskType),
			attribute.String("task.id", msg.Task.TaskID),
			attribute.Int("task.attempt", msg.Attempt()),
		))
	ctx = span.Context()

	start := time.Now()
	err := w.processMessageSafe(ctx, msg)
	span.Finish(err)
	if err != nil {
		slog.ErrorContext(ctx, "message processing failed",
			"error", err,
			"attempt", msg.Attempt())
		w.metrics.ObserveWorkerTask(taskType, w.handleFailedMessage(ctx, msg, err), start)
		return err
	}

	if ackErr := w.consumer.Ack(ctx, msg); ackErr != nil {
		// The reclaimer redelivers unacked messages; handlers are idempotent.
		slog.WarnContext(ctx, "failed to ACK message", "error", ackErr)
	}
	w.metrics.ObserveWorkerTask(taskType, "ok", start)
	slog.InfoContext(ctx, "task processed", "duration_ms", time.Since(start).Milliseconds())
	return nil
}

func (w *Worker) processMessageSafe(ctx context.Context, msg queue.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "panic recovered in message processing", "panic", r)
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return w.handler.Handle(ctx, msg.Task)
}

// handleFailedMessage returns the outcome label recorded in metrics.
func (w *Worker) handleFailedMessage(ctx context.Context, msg queue.Message, err error) string {
	if msg.Attempt() >= w.cfg.MaxAttempts {
		slog.ErrorContext(ctx, "max attempts reached, sending to DLQ", "attempts", msg.Attempt())
		if dlqErr := w.consumer.SendDLQ(ctx, msg, err.Error()); dlqErr != nil {
			slog.ErrorContext(ctx, "failed to send to DLQ", "error", dlqErr)
		}
		return "dead_lettered"
	}

	slog.WarnContext(ctx, "requeuing failed message", "attempt", msg.Attempt())
	if requeueErr := w.consumer.Requeue(ctx, msg, err.Error()); requeueErr != nil {
		slog.ErrorContext(ctx, "failed to requeue message", "error", requeueErr)
	}
	return "retried"
}
