package insight

import "time"

// DefaultProjectInsight returns the shape-complete fallback used whenever
// the model output cannot be obtained or parsed. Every list field is a
// non-nil empty slice so JSON encoding yields [] rather than null.
//
// The health score comes from the local heuristic when a snapshot is
// available, so a degraded pipeline still reflects real task state.
func DefaultProjectInsight(snap *ProjectSnapshot, now time.Time) *ProjectInsight {
	score := 50
	if snap != nil {
		score = ComputeHealth(SnapshotHealthInput(snap, now))
	}
	return &ProjectInsight{
		HealthScore:     score,
		RiskAreas:       []string{},
		Bottlenecks:     []Bottleneck{},
		Timeline:        TimelinePrediction{PredictedCompletion: "", Confidence: 0},
		TeamInsights:    []string{},
		Recommendations: []string{},
	}
}

// normalizeInsight clamps and fills a parsed insight so downstream consumers
// always see the complete shape regardless of what the model emitted.
func normalizeInsight(in *ProjectInsight) *ProjectInsight {
	in.HealthScore = clampScore(in.HealthScore)
	if in.RiskAreas == nil {
		in.RiskAreas = []string{}
	}
	if in.Bottlenecks == nil {
		in.Bottlenecks = []Bottleneck{}
	}
	if in.TeamInsights == nil {
		in.TeamInsights = []string{}
	}
	if in.Recommendations == nil {
		in.Recommendations = []string{}
	}
	if in.Timeline.Confidence < 0 {
		in.Timeline.Confidence = 0
	}
	if in.Timeline.Confidence > 1 {
		in.Timeline.Confidence = 1
	}
	for i := range in.Bottlenecks {
		switch in.Bottlenecks[i].Severity {
		case "high", "medium", "low":
		default:
			in.Bottlenecks[i].Severity = "medium"
		}
	}
	return in
}
