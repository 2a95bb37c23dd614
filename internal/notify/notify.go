// Package notify renders and delivers the directory's transactional emails.
package notify

import (
	"context"
	"log/slog"
)

type Email struct {
	To      []string
	Subject string
	Body    string
}

type Notifier interface {
	Send(ctx context.Context, email Email) error
}

type logNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier writes emails to the log instead of sending them. Used when
// SMTP is not configured.
func NewLogNotifier(logger *slog.Logger) Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &logNotifier{logger: logger}
}

func (n *logNotifier) Send(ctx context.Context, email Email) error {
	n.logger.InfoContext(ctx, "email notification",
		"to", email.To,
		"subject", email.Subject,
		"body", email.Body)
	return nil
}
