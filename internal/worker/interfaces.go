package worker

import (
	"context"

	"bizdir.app/directory/internal/queue"
)

// Consumer abstracts the message queue for testability.
type Consumer interface {
	Read(ctx context.Context) ([]queue.Message, error)
	Ack(ctx context.Context, msg queue.Message) error
	Requeue(ctx context.Context, msg queue.Message, errMsg string) error
	SendDLQ(ctx context.Context, msg queue.Message, errMsg string) error
}

// TaskHandler executes one queued task. A nil error acknowledges the message.
type TaskHandler interface {
	Handle(ctx context.Context, task queue.Task) error
}

// SessionPurger deletes expired portal sessions.
type SessionPurger interface {
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}
