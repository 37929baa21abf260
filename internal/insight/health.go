package insight

import (
	"time"

	"github.com/srujanr7/ticketday-1-sub000/internal/domain"
)

// HealthInput carries the task-derived signals the heuristic scores.
type HealthInput struct {
	Now          time.Time
	DueDate      *time.Time
	TotalTasks   int
	DoneTasks    int
	OverdueTasks int
	HighOpen     int // open high-priority tasks
	Unassigned   int // open tasks with no assignee
}

// ComputeHealth scores a project 0..100 from its task signals. Used as the
// fallback when the model is disabled or unreachable, and as a sanity anchor
// logged next to model-produced scores.
//
// An empty project scores the neutral 50: there is no evidence either way.
func ComputeHealth(input HealthInput) int {
	if input.TotalTasks == 0 {
		return 50
	}

	completion := float64(input.DoneTasks) / float64(input.TotalTasks)
	score := 50.0 + completion*30.0

	open := input.TotalTasks - input.DoneTasks

	// Overdue work is the strongest negative signal.
	overdueRatio := float64(input.OverdueTasks) / float64(input.TotalTasks)
	score -= overdueRatio * 40.0

	if open > 0 {
		score -= float64(input.HighOpen) / float64(open) * 10.0
		score -= float64(input.Unassigned) / float64(open) * 10.0
	}

	// Past the project due date with open work => cap low.
	if input.DueDate != nil && input.Now.After(*input.DueDate) && open > 0 {
		if score > 35 {
			score = 35
		}
	}

	return clampScore(int(score + 0.5))
}

func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

// SnapshotHealthInput derives the heuristic's input from a project snapshot.
func SnapshotHealthInput(snap *ProjectSnapshot, now time.Time) HealthInput {
	input := HealthInput{
		Now:        now,
		DueDate:    snap.Project.DueDate,
		TotalTasks: len(snap.Tasks),
	}
	for _, tw := range snap.Tasks {
		t := tw.Task
		if t.Status == domain.TaskDone {
			input.DoneTasks++
			continue
		}
		if t.Overdue(now) {
			input.OverdueTasks++
		}
		if t.Priority == domain.PriorityHigh {
			input.HighOpen++
		}
		if len(tw.Assignees) == 0 {
			input.Unassigned++
		}
	}
	return input
}
