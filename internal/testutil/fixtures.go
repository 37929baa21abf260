package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/srujanr7/ticketday-1-sub000/internal/domain"
)

var testEmailCounter atomic.Int64

// User options
type UserOption func(*domain.User)

func WithEmail(email string) UserOption {
	return func(u *domain.User) {
		u.Email = email
	}
}

func NewTestUser(displayName string, opts ...UserOption) *domain.User {
	n := testEmailCounter.Add(1)
	u := &domain.User{
		ID:          uuid.NewString(),
		Email:       fmt.Sprintf("user%d@example.com", n),
		DisplayName: displayName,
		CreatedAt:   time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Project options
type ProjectOption func(*domain.Project)

func WithDueDate(d time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.DueDate = &d
	}
}

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func NewTestProject(name, ownerID string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	start := now.AddDate(0, -1, 0)
	p := &domain.Project{
		ID:        uuid.NewString(),
		Name:      name,
		OwnerID:   ownerID,
		StartDate: &start,
		Status:    domain.ProjectActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Task options
type TaskOption func(*domain.Task)

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithTaskPriority(p domain.TaskPriority) TaskOption {
	return func(t *domain.Task) {
		t.Priority = p
	}
}

func WithTaskDueDate(d time.Time) TaskOption {
	return func(t *domain.Task) {
		t.DueDate = &d
	}
}

func WithTags(tags ...string) TaskOption {
	return func(t *domain.Task) {
		t.Tags = tags
	}
}

func NewTestTask(projectID, title, creatorID string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	t := &domain.Task{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Title:     title,
		Status:    domain.TaskTodo,
		Priority:  domain.PriorityMedium,
		CreatedBy: creatorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Event options
type EventOption func(*domain.Event)

func WithEventType(et domain.EventType) EventOption {
	return func(e *domain.Event) {
		e.Type = et
	}
}

func WithEventDate(d time.Time) EventOption {
	return func(e *domain.Event) {
		e.Date = d
	}
}

func NewTestEvent(projectID, title, creatorID string, opts ...EventOption) *domain.Event {
	now := time.Now().UTC()
	e := &domain.Event{
		ID:          uuid.NewString(),
		ProjectID:   projectID,
		Title:       title,
		Date:        now.AddDate(0, 0, 1),
		StartTime:   "10:00",
		DurationMin: 30,
		Type:        domain.EventStandup,
		CreatedBy:   creatorID,
		CreatedAt:   now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
