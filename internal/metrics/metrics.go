package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PipelineRuns counts insight/generation pipeline invocations.
	// kind: insight, task_generation, schedule_generation
	// outcome: ok, fetch_error, model_error, parse_fallback, parse_error
	PipelineRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskflow_pipeline_runs_total",
			Help: "Total insight/generation pipeline runs",
		},
		[]string{"kind", "outcome"},
	)

	// ModelCallLatency observes model call latency in milliseconds.
	ModelCallLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "taskflow_model_call_latency_ms",
			Help:    "Model call latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(100, 2, 10), // 100ms to ~100s
		},
		[]string{"task", "success"},
	)

	// GeneratedItemsApplied counts persisted generated tasks/events.
	GeneratedItemsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskflow_generated_items_applied_total",
			Help: "Generated items persisted by the applier",
		},
		[]string{"kind", "result"}, // result: applied, failed
	)
)
