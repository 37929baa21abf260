package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/srujanr7/ticketday-1-sub000/internal/domain"
	"github.com/srujanr7/ticketday-1-sub000/internal/repository"
)

type memberService struct {
	members  repository.MemberRepo
	projects repository.ProjectRepo
}

func NewMemberService(members repository.MemberRepo, projects repository.ProjectRepo) MemberService {
	return &memberService{members: members, projects: projects}
}

func (s *memberService) UpsertUser(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Email == "" {
		return fmt.Errorf("user email is required")
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	return s.members.UpsertUser(ctx, u)
}

func (s *memberService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.members.GetUser(ctx, id)
}

// AddMember adds an existing user, looked up by email, to a project.
func (s *memberService) AddMember(ctx context.Context, projectID, email string, role domain.MemberRole, addedBy string) (*domain.User, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	u, err := s.members.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if role == "" {
		role = domain.RoleEditor
	}
	err = s.members.AddMember(ctx, &domain.ProjectMember{
		ProjectID: projectID,
		UserID:    u.ID,
		Role:      role,
		AddedAt:   time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *memberService) RemoveMember(ctx context.Context, projectID, userID string) error {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if p.OwnerID == userID {
		return fmt.Errorf("cannot remove the project owner")
	}
	return s.members.RemoveMember(ctx, projectID, userID)
}

func (s *memberService) ListProjectUsers(ctx context.Context, projectID string) ([]domain.User, error) {
	return s.members.ListProjectUsers(ctx, projectID)
}
