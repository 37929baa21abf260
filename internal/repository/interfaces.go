package repository

import (
	"context"

	"github.com/srujanr7/ticketday-1-sub000/internal/domain"
)

// TaskWithAssignees is a joined view of a task and its assigned users,
// used by the insight pipeline when shaping project aggregates.
type TaskWithAssignees struct {
	Task      domain.Task   `json:"task"`
	Assignees []domain.User `json:"assignees"`
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	ListByMember(ctx context.Context, userID string) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	ListByProjectWithAssignees(ctx context.Context, projectID string) ([]TaskWithAssignees, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
}

type AssignmentRepo interface {
	Create(ctx context.Context, a *domain.TaskAssignment) error
	Exists(ctx context.Context, taskID, userID string) (bool, error)
	ListByTask(ctx context.Context, taskID string) ([]domain.TaskAssignment, error)
	Delete(ctx context.Context, taskID, userID string) error
}

type EventRepo interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Event, error)
	ListUpcoming(ctx context.Context, projectID string, days int) ([]*domain.Event, error)
	Delete(ctx context.Context, id string) error
}

type MemberRepo interface {
	UpsertUser(ctx context.Context, u *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	AddMember(ctx context.Context, m *domain.ProjectMember) error
	RemoveMember(ctx context.Context, projectID, userID string) error
	// ListProjectUsers returns the project owner plus explicit members,
	// deduplicated by user id.
	ListProjectUsers(ctx context.Context, projectID string) ([]domain.User, error)
}
