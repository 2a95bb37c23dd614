package logger

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "bizdir.app/directory"

// Span is an OTel span together with the context it was started in.
type Span struct {
	ctx  context.Context
	span trace.Span
}

// StartSpan starts a child of the span in ctx, if any.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) *Span {
	ctx, span := otel.Tracer(tracerName).Start(ctx, name, opts...)
	return &Span{ctx: ctx, span: span}
}

// StartTaskSpan continues the HTTP request trace a queue task was enqueued
// from. traceID is the hex ID stored on the task; when it is empty or
// malformed the span starts a new trace.
func StartTaskSpan(ctx context.Context, traceID string, name string, opts ...trace.SpanStartOption) *Span {
	if id, err := trace.TraceIDFromHex(traceID); err == nil {
		remote := trace.NewSpanContext(trace.SpanContextConfig{
			TraceID:    id,
			TraceFlags: trace.FlagsSampled,
			Remote:     true,
		})
		opts = append(opts, trace.WithLinks(trace.Link{SpanContext: remote}))
		ctx = trace.ContextWithRemoteSpanContext(ctx, remote)
	}
	return StartSpan(ctx, name, opts...)
}

// TraceIDFromContext returns the hex trace ID of the active span, or "".
func TraceIDFromContext(ctx context.Context) string {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.HasTraceID() {
		return ""
	}
	return sc.TraceID().String()
}

func (s *Span) Context() context.Context {
	return s.ctx
}

func (s *Span) SetAttributes(kv ...attribute.KeyValue) {
	s.span.SetAttributes(kv...)
}

// Finish marks the span failed when err is non-nil and ends it.
func (s *Span) Finish(err error) {
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	}
	s.span.End()
}
