package insight

// ProjectInsight is the analysis result returned to dashboard clients.
// Every field is always populated: callers render the object directly and
// never branch on which stage of the pipeline produced it, so defaults must
// carry the same shape as real model output.
type ProjectInsight struct {
	HealthScore     int                `json:"healthScore"`
	RiskAreas       []string           `json:"riskAreas"`
	Bottlenecks     []Bottleneck       `json:"bottlenecks"`
	Timeline        TimelinePrediction `json:"timeline"`
	TeamInsights    []string           `json:"teamInsights"`
	Recommendations []string           `json:"recommendations"`
}

// Bottleneck describes one workflow constraint the analysis identified.
type Bottleneck struct {
	Area           string `json:"area"`
	Severity       string `json:"severity"` // high, medium, low
	Recommendation string `json:"recommendation"`
}

// TimelinePrediction is the model's completion estimate for a project.
type TimelinePrediction struct {
	PredictedCompletion string  `json:"predictedCompletion"` // YYYY-MM-DD, may be empty
	Confidence          float64 `json:"confidence"`          // 0..1
}

// GeneratedTask is one task proposed by the generation pipeline, before
// normalization and persistence.
type GeneratedTask struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Priority       string   `json:"priority"`
	Status         string   `json:"status"`
	EstimatedHours float64  `json:"estimatedHours"`
	DueInDays      int      `json:"dueInDays"`
	Assignee       string   `json:"assignee"` // email or display name, may be empty
	Tags           []string `json:"tags"`
}

// GeneratedEvent is one meeting proposed by the schedule generation pipeline.
type GeneratedEvent struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DaysFromNow int      `json:"daysFromNow"`
	StartTime   string   `json:"startTime"` // HH:MM
	DurationMin int      `json:"durationMin"`
	Type        string   `json:"type"`
	Attendees   []string `json:"attendees"` // emails, resolved against project members
}

// ApplyFailure records one item the applier could not persist.
type ApplyFailure struct {
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

// ApplyResult reports exactly which generated items were persisted and which
// failed. Callers must not assume Applied covers the full requested batch.
type ApplyResult struct {
	Applied []string       `json:"applied"` // ids of persisted records
	Failed  []ApplyFailure `json:"failed"`
}
