package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/srujanr7/ticketday-1-sub000/internal/domain"
	"github.com/srujanr7/ticketday-1-sub000/internal/repository"
)

type projectService struct {
	projects repository.ProjectRepo
	members  repository.MemberRepo
}

func NewProjectService(projects repository.ProjectRepo, members repository.MemberRepo) ProjectService {
	return &projectService{projects: projects, members: members}
}

func (s *projectService) Create(ctx context.Context, p *domain.Project) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = domain.ProjectPlanning
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.projects.Create(ctx, p); err != nil {
		return err
	}
	// Owner membership row keeps role queries uniform.
	return s.members.AddMember(ctx, &domain.ProjectMember{
		ProjectID: p.ID,
		UserID:    p.OwnerID,
		Role:      domain.RoleOwner,
		AddedAt:   now,
	})
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) ListForUser(ctx context.Context, userID string) ([]*domain.Project, error) {
	return s.projects.ListByMember(ctx, userID)
}

func (s *projectService) Update(ctx context.Context, p *domain.Project) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()
	return s.projects.Update(ctx, p)
}

func (s *projectService) Delete(ctx context.Context, id, userID string) error {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.OwnerID != userID {
		return ErrNotCreator
	}
	return s.projects.Delete(ctx, id)
}
