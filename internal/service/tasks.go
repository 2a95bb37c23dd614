package service

import (
	"context"
	"log/slog"

	"bizdir.app/directory/internal/queue"
)

// enqueue schedules follow-up work after a committed change. Failures are
// logged, not returned.
func enqueue(ctx context.Context, producer queue.Producer, task queue.Task) {
	if producer == nil {
		return
	}
	if err := producer.Enqueue(ctx, task); err != nil {
		slog.ErrorContext(ctx, "failed to enqueue task",
			"error", err,
			"task_type", task.TaskType,
			"kind", task.Kind)
	}
}

func pageBounds(page, perPage int) (limit, offset int32, err error) {
	if page > MaxPage {
		return 0, 0, ErrPageOutOfRange
	}
	if page < 1 {
		page = 1
	}
	switch {
	case perPage <= 0:
		perPage = DefaultPerPage
	case perPage > MaxPerPage:
		perPage = MaxPerPage
	}
	return int32(perPage), int32((page - 1) * perPage), nil
}
