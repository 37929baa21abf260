package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/srujanr7/ticketday-1-sub000/internal/domain"
	"github.com/srujanr7/ticketday-1-sub000/internal/repository"
)

type taskService struct {
	tasks       repository.TaskRepo
	assignments repository.AssignmentRepo
	members     repository.MemberRepo
}

func NewTaskService(tasks repository.TaskRepo, assignments repository.AssignmentRepo, members repository.MemberRepo) TaskService {
	return &taskService{tasks: tasks, assignments: assignments, members: members}
}

func (s *taskService) Create(ctx context.Context, t *domain.Task) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Status == "" {
		t.Status = domain.TaskTodo
	}
	if t.Priority == "" {
		t.Priority = domain.PriorityMedium
	}
	if err := t.Validate(); err != nil {
		return err
	}
	return s.tasks.Create(ctx, t)
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) ListByProject(ctx context.Context, projectID string) ([]repository.TaskWithAssignees, error) {
	return s.tasks.ListByProjectWithAssignees(ctx, projectID)
}

func (s *taskService) Update(ctx context.Context, t *domain.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	t.UpdatedAt = time.Now().UTC()
	return s.tasks.Update(ctx, t)
}

// Assign adds a user to a task. Assigning an already-assigned user is a
// distinct no-op outcome rather than a duplicate row.
func (s *taskService) Assign(ctx context.Context, taskID, userID, assignerID string) error {
	if _, err := s.tasks.GetByID(ctx, taskID); err != nil {
		return err
	}
	if _, err := s.members.GetUser(ctx, userID); err != nil {
		return fmt.Errorf("assignee: %w", err)
	}

	exists, err := s.assignments.Exists(ctx, taskID, userID)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyAssigned
	}

	return s.assignments.Create(ctx, &domain.TaskAssignment{
		TaskID:     taskID,
		UserID:     userID,
		AssignedBy: assignerID,
		AssignedAt: time.Now().UTC(),
	})
}

func (s *taskService) Unassign(ctx context.Context, taskID, userID string) error {
	return s.assignments.Delete(ctx, taskID, userID)
}

// Delete removes a task. Only its creator may delete it.
func (s *taskService) Delete(ctx context.Context, id, userID string) error {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t.CreatedBy != userID {
		return ErrNotCreator
	}
	return s.tasks.Delete(ctx, id)
}
