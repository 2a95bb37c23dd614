package worker

import (
	"context"
	"log/slog"
	"time"

	"bizdir.app/directory/common/logger"
)

// RunSessionPurger deletes expired sessions every interval until ctx is done.
func RunSessionPurger(ctx context.Context, purger SessionPurger, interval time.Duration) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "directory.worker.sessions"})
	if interval <= 0 {
		interval = time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := purger.PurgeExpiredSessions(ctx)
			if err != nil {
				slog.ErrorContext(ctx, "failed to purge expired sessions", "error", err)
				continue
			}
			if n > 0 {
				slog.InfoContext(ctx, "purged expired sessions", "count", n)
			}
		}
	}
}
