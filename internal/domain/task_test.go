package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTaskStatus(t *testing.T) {
	cases := map[string]TaskStatus{
		"To Do":       TaskTodo,
		"todo":        TaskTodo,
		"In Progress": TaskInProgress,
		"in_progress": TaskInProgress,
		"Review":      TaskReview,
		"Done":        TaskDone,
		"completed":   TaskDone,
		"garbage":     TaskTodo,
		"":            TaskTodo,
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeTaskStatus(in), "input %q", in)
	}
}

func TestNormalizeTaskPriority(t *testing.T) {
	assert.Equal(t, PriorityHigh, NormalizeTaskPriority("High"))
	assert.Equal(t, PriorityLow, NormalizeTaskPriority(" low "))
	assert.Equal(t, PriorityMedium, NormalizeTaskPriority("Medium"))
	assert.Equal(t, PriorityMedium, NormalizeTaskPriority("???"))
}

func TestNormalizeEventType(t *testing.T) {
	assert.Equal(t, EventStandup, NormalizeEventType("Standup"))
	assert.Equal(t, EventRetrospective, NormalizeEventType("retrospective"))
	assert.Equal(t, EventOther, NormalizeEventType("coffee chat"))
}

func TestTaskOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	due := now.AddDate(0, 0, -1)

	task := Task{DueDate: &due, Status: TaskInProgress}
	assert.True(t, task.Overdue(now))

	task.Status = TaskDone
	assert.False(t, task.Overdue(now), "done tasks are never overdue")

	task = Task{Status: TaskTodo}
	assert.False(t, task.Overdue(now), "no due date means never overdue")
}

func TestProjectValidate(t *testing.T) {
	p := Project{Name: "Website Redesign", OwnerID: "u1"}
	assert.NoError(t, p.Validate())

	p.OwnerID = ""
	assert.Error(t, p.Validate())

	p = Project{OwnerID: "u1"}
	assert.Error(t, p.Validate())
}
