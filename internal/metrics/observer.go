package metrics

import (
	"strconv"

	"github.com/srujanr7/ticketday-1-sub000/internal/llm"
)

// PromObserver records model call events into Prometheus metrics. It is
// usually combined with the logging observer via llm.MultiObserver.
type PromObserver struct{}

func (PromObserver) OnCallComplete(event llm.CallEvent) {
	ModelCallLatency.
		WithLabelValues(string(event.Task), strconv.FormatBool(event.Success)).
		Observe(float64(event.LatencyMs))
}
