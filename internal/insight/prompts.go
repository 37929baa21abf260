package insight

import (
	"fmt"
	"strings"
	"time"
)

// insightSystemPrompt instructs the model to analyze a project aggregate.
// The schema is advisory text: the model is not mechanically constrained,
// so the parser downstream must tolerate deviations.
const insightSystemPrompt = `You are a project-health analyst for a project management tool called TaskFlow.
You will receive a JSON summary of one project: its metadata, tasks, and team members.

You must output ONLY a JSON object with these exact fields:
- healthScore: integer 0 to 100 (overall project health; 100 is perfectly on track)
- riskAreas: array of strings naming concrete risks (empty array if none)
- bottlenecks: array of objects, each with:
  - area: short name of the constrained area (e.g., "code review")
  - severity: one of "high", "medium", "low"
  - recommendation: 1 sentence on how to relieve it
- timeline: object with:
  - predictedCompletion: "YYYY-MM-DD" estimate, or "" if no estimate is possible
  - confidence: number 0 to 1
- teamInsights: array of strings about workload distribution and collaboration
- recommendations: array of strings with concrete next actions

CRITICAL RULES:
1. Base every claim on the provided data; never invent tasks or people
2. If the project has no tasks, return healthScore 50 and empty arrays
3. Use strict JSON numeric literals (e.g., 0.85, never .85)
4. Output ONLY the JSON object, no markdown, no explanation`

// taskGenSystemPrompt instructs the model to break a feature request into tasks.
const taskGenSystemPrompt = `You are a planning assistant for a project management tool called TaskFlow.
You will receive a feature request and a JSON summary of the target project and its team.
Break the request into between 1 and 10 concrete, actionable tasks.

You must output ONLY a JSON array. Each element is an object with these exact fields:
- title: short imperative task title (REQUIRED, non-empty)
- description: 1-3 sentences of detail
- priority: one of "high", "medium", "low"
- status: always "todo"
- estimatedHours: number > 0
- dueInDays: integer >= 1 (days from today)
- assignee: email of a listed team member best suited for the task, or "" if unclear
- tags: array of short lowercase labels

CRITICAL RULES:
1. Between 1 and 10 tasks, never more
2. Only use assignee emails that appear in the team list; otherwise use ""
3. Use strict JSON numeric literals (e.g., 0.85, never .85)
4. Output ONLY the JSON array, no markdown, no explanation`

// scheduleGenSystemPrompt instructs the model to propose meetings for a project.
const scheduleGenSystemPrompt = `You are a scheduling assistant for a project management tool called TaskFlow.
You will receive a JSON summary of one project: its metadata, tasks, team members, and upcoming meetings.
Propose a small set of meetings (1 to 5) that would help this project right now.

You must output ONLY a JSON array. Each element is an object with these exact fields:
- title: short meeting title (REQUIRED, non-empty)
- description: 1-2 sentences on purpose and agenda
- daysFromNow: integer >= 0 (0 means today)
- startTime: "HH:MM" in 24-hour time, between 09:00 and 17:00
- durationMin: integer, one of 15, 30, 45, 60, 90
- type: one of "planning", "review", "retrospective", "standup", "demo", "milestone", "other"
- attendees: array of team member emails (only emails from the team list)

CRITICAL RULES:
1. Between 1 and 5 meetings, never more
2. Do not duplicate meetings that already appear in the upcoming list
3. Output ONLY the JSON array, no markdown, no explanation`

// BuildSnapshotPrompt serializes a project snapshot into the user prompt body.
// Task titles and descriptions are interpolated verbatim; the schema contract
// with the model is advisory, so no escaping is attempted here.
func BuildSnapshotPrompt(snap *ProjectSnapshot, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "PROJECT:\n")
	fmt.Fprintf(&b, "  name: %s\n", snap.Project.Name)
	if snap.Project.Description != "" {
		fmt.Fprintf(&b, "  description: %s\n", snap.Project.Description)
	}
	fmt.Fprintf(&b, "  status: %s\n", snap.Project.Status)
	if snap.Project.StartDate != nil {
		fmt.Fprintf(&b, "  startDate: %s\n", snap.Project.StartDate.Format("2006-01-02"))
	}
	if snap.Project.DueDate != nil {
		fmt.Fprintf(&b, "  dueDate: %s\n", snap.Project.DueDate.Format("2006-01-02"))
	}
	fmt.Fprintf(&b, "  today: %s\n", now.Format("2006-01-02"))
	// Anchors the model's score against the deterministic heuristic.
	fmt.Fprintf(&b, "  heuristicHealthScore: %d\n", ComputeHealth(SnapshotHealthInput(snap, now)))

	fmt.Fprintf(&b, "\nTEAM (%d members):\n", len(snap.Members))
	for _, m := range snap.Members {
		fmt.Fprintf(&b, "  - %s <%s>\n", m.DisplayName, m.Email)
	}

	fmt.Fprintf(&b, "\nTASKS (%d):\n", len(snap.Tasks))
	for _, tw := range snap.Tasks {
		t := tw.Task
		fmt.Fprintf(&b, "  - title: %s\n    status: %s, priority: %s", t.Title, t.Status, t.Priority)
		if t.DueDate != nil {
			fmt.Fprintf(&b, ", due: %s", t.DueDate.Format("2006-01-02"))
			if t.Overdue(now) {
				b.WriteString(" (OVERDUE)")
			}
		}
		if t.EstimatedHours > 0 {
			fmt.Fprintf(&b, ", estimatedHours: %g", t.EstimatedHours)
		}
		b.WriteString("\n")
		if len(tw.Assignees) > 0 {
			names := make([]string, len(tw.Assignees))
			for i, a := range tw.Assignees {
				names[i] = a.Email
			}
			fmt.Fprintf(&b, "    assignees: %s\n", strings.Join(names, ", "))
		}
		if len(t.Tags) > 0 {
			fmt.Fprintf(&b, "    tags: %s\n", strings.Join(t.Tags, ", "))
		}
	}

	return b.String()
}

// BuildTaskGenPrompt combines the user's feature request with the snapshot.
func BuildTaskGenPrompt(snap *ProjectSnapshot, request string, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "FEATURE REQUEST:\n%s\n\n", request)
	b.WriteString(BuildSnapshotPrompt(snap, now))
	return b.String()
}

// BuildSchedulePrompt appends upcoming meetings to the snapshot so the model
// avoids proposing duplicates.
func BuildSchedulePrompt(snap *ProjectSnapshot, upcoming []upcomingEvent, now time.Time) string {
	var b strings.Builder
	b.WriteString(BuildSnapshotPrompt(snap, now))
	fmt.Fprintf(&b, "\nUPCOMING MEETINGS (%d):\n", len(upcoming))
	for _, e := range upcoming {
		fmt.Fprintf(&b, "  - %s on %s at %s (%s)\n", e.Title, e.Date, e.StartTime, e.Type)
	}
	return b.String()
}

// upcomingEvent is the minimal event view embedded in schedule prompts.
type upcomingEvent struct {
	Title     string
	Date      string
	StartTime string
	Type      string
}
