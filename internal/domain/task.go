package domain

import (
	"fmt"
	"time"
)

type Task struct {
	ID             string       `json:"id"`
	ProjectID      string       `json:"projectId"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Status         TaskStatus   `json:"status"`
	Priority       TaskPriority `json:"priority"`
	DueDate        *time.Time   `json:"dueDate"`
	EstimatedHours float64      `json:"estimatedHours"`
	CreatedBy      string       `json:"createdBy"`
	Tags           []string     `json:"tags"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// Validate checks the fields required before persisting a task.
func (t *Task) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("task title is required")
	}
	if t.ProjectID == "" {
		return fmt.Errorf("task must belong to a project")
	}
	return nil
}

// Overdue reports whether the task is past its due date and not done.
func (t *Task) Overdue(now time.Time) bool {
	if t.DueDate == nil || t.Status == TaskDone {
		return false
	}
	return now.After(*t.DueDate)
}

// TaskAssignment links a task to an assigned user. One row per
// (task, user) pair; AssignedBy records who made the assignment.
type TaskAssignment struct {
	TaskID     string    `json:"taskId"`
	UserID     string    `json:"userId"`
	AssignedBy string    `json:"assignedBy"`
	AssignedAt time.Time `json:"assignedAt"`
}
