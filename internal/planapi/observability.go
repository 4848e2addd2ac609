package planapi

import (
	"io"
	"log/slog"
)

// CallEvent records metadata about a single plan request.
type CallEvent struct {
	RequestID  string
	StatusCode int
	LatencyMs  int64
	Success    bool
	ErrorCode  string
}

// Observer receives events about plan requests for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes call events as structured log lines.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	attrs := []any{
		"request_id", event.RequestID,
		"status", event.StatusCode,
		"latency_ms", event.LatencyMs,
	}
	if !event.Success {
		o.logger.Warn("plan_call", append(attrs, "error_code", event.ErrorCode)...)
		return
	}
	o.logger.Info("plan_call", attrs...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
