package service

import (
	"context"

	"github.com/srujanr7/ticketday-1-sub000/internal/domain"
	"github.com/srujanr7/ticketday-1-sub000/internal/repository"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	ListForUser(ctx context.Context, userID string) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id, userID string) error
}

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]repository.TaskWithAssignees, error)
	Update(ctx context.Context, t *domain.Task) error
	Assign(ctx context.Context, taskID, userID, assignerID string) error
	Unassign(ctx context.Context, taskID, userID string) error
	Delete(ctx context.Context, id, userID string) error
}

type EventService interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Event, error)
	ListUpcoming(ctx context.Context, projectID string, days int) ([]*domain.Event, error)
	Delete(ctx context.Context, id, userID string) error
}

type MemberService interface {
	UpsertUser(ctx context.Context, u *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	AddMember(ctx context.Context, projectID, email string, role domain.MemberRole, addedBy string) (*domain.User, error)
	RemoveMember(ctx context.Context, projectID, userID string) error
	ListProjectUsers(ctx context.Context, projectID string) ([]domain.User, error)
}
