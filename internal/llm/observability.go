package llm

import (
	"go.uber.org/zap"
)

// CallEvent records metadata about a single model invocation.
type CallEvent struct {
	Task      TaskType
	Model     string
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about model calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// ZapObserver logs model call events through a structured logger.
type ZapObserver struct {
	log *zap.Logger
}

// NewZapObserver creates an Observer that logs events via zap.
func NewZapObserver(log *zap.Logger) *ZapObserver {
	return &ZapObserver{log: log}
}

func (o *ZapObserver) OnCallComplete(event CallEvent) {
	fields := []zap.Field{
		zap.String("task", string(event.Task)),
		zap.String("model", event.Model),
		zap.Int64("latency_ms", event.LatencyMs),
	}
	if event.Success {
		o.log.Info("model call completed", fields...)
		return
	}
	o.log.Warn("model call failed", append(fields, zap.String("error_code", event.ErrorCode))...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}

// MultiObserver fans one event out to several observers (e.g. logs + metrics).
type MultiObserver []Observer

func (m MultiObserver) OnCallComplete(event CallEvent) {
	for _, o := range m {
		o.OnCallComplete(event)
	}
}
