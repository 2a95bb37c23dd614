package logger

import (
	"context"
	"log/slog"
)

type logFieldsKey struct{}

// LogFields are attached to every record logged with the context.
type LogFields struct {
	CompanyID *int64
	ClaimID   *int64
	QuoteID   *int64
	UserID    *int64
	MessageID *string // Redis stream entry ID
	TaskType  *string
	Component string // e.g. "directory.worker.processor"
}

// WithLogFields returns a context carrying fields merged over any already set.
// Unset fields never clear earlier values.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	merged := GetLogFields(ctx)
	setIf(&merged.CompanyID, fields.CompanyID)
	setIf(&merged.ClaimID, fields.ClaimID)
	setIf(&merged.QuoteID, fields.QuoteID)
	setIf(&merged.UserID, fields.UserID)
	setIf(&merged.MessageID, fields.MessageID)
	setIf(&merged.TaskType, fields.TaskType)
	if fields.Component != "" {
		merged.Component = fields.Component
	}
	return context.WithValue(ctx, logFieldsKey{}, merged)
}

func GetLogFields(ctx context.Context) LogFields {
	fields, _ := ctx.Value(logFieldsKey{}).(LogFields)
	return fields
}

func setIf[T any](dst **T, v *T) {
	if v != nil {
		*dst = v
	}
}

func (f LogFields) attrs() []slog.Attr {
	var attrs []slog.Attr
	addInt := func(key string, v *int64) {
		if v != nil {
			attrs = append(attrs, slog.Int64(key, *v))
		}
	}
	addString := func(key string, v *string) {
		if v != nil {
			attrs = append(attrs, slog.String(key, *v))
		}
	}
	addInt("company_id", f.CompanyID)
	addInt("claim_id", f.ClaimID)
	addInt("quote_id", f.QuoteID)
	addInt("user_id", f.UserID)
	addString("message_id", f.MessageID)
	addString("task_type", f.TaskType)
	if f.Component != "" {
		attrs = append(attrs, slog.String("component", f.Component))
	}
	return attrs
}

// Truncate cuts s to maxLen bytes and marks the cut with "...".
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// Ptr returns a pointer to v, for inline LogFields values.
func Ptr[T any](v T) *T {
	return &v
}
