package api

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// CallEvent records one request to the backend.
type CallEvent struct {
	Method    string
	Path      string
	Status    int
	Duration  time.Duration
	RequestID string
	Err       error
}

// Observer receives an event for every backend call.
type Observer interface {
	OnCall(ctx context.Context, event CallEvent)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCall(context.Context, CallEvent) {}

type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver writes call events to w with the given minimum level.
func NewLogObserver(w io.Writer, level slog.Level) Observer {
	if w == nil {
		return NoopObserver{}
	}
	return &logObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})),
	}
}

func (o *logObserver) OnCall(ctx context.Context, event CallEvent) {
	attrs := []any{
		"method", event.Method,
		"path", event.Path,
		"status", event.Status,
		"duration_ms", event.Duration.Milliseconds(),
		"request_id", event.RequestID,
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.WarnContext(ctx, "api_call", attrs...)
		return
	}
	o.logger.DebugContext(ctx, "api_call", attrs...)
}
