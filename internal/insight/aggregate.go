package insight

import (
	"context"
	"fmt"
	"strings"

	"github.com/srujanr7/ticketday-1-sub000/internal/domain"
	"github.com/srujanr7/ticketday-1-sub000/internal/repository"
)

// ProjectSnapshot is the read-only aggregate assembled before prompting:
// the project record, its tasks with assignee identities, and the member
// list (owner plus explicit members, deduplicated).
type ProjectSnapshot struct {
	Project domain.Project
	Tasks   []repository.TaskWithAssignees
	Members []domain.User
}

// Fetcher assembles project snapshots for the analysis and generation
// pipelines. It never mutates; any read failure aborts the whole fetch.
type Fetcher struct {
	projects repository.ProjectRepo
	tasks    repository.TaskRepo
	members  repository.MemberRepo
}

func NewFetcher(projects repository.ProjectRepo, tasks repository.TaskRepo, members repository.MemberRepo) *Fetcher {
	return &Fetcher{projects: projects, tasks: tasks, members: members}
}

// FetchProject builds the aggregate for a single project. A project with no
// tasks or no members still yields a valid snapshot with empty slices.
func (f *Fetcher) FetchProject(ctx context.Context, projectID string) (*ProjectSnapshot, error) {
	project, err := f.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data: %w", err)
	}

	tasks, err := f.tasks.ListByProjectWithAssignees(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data: %w", err)
	}

	members, err := f.members.ListProjectUsers(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data: %w", err)
	}

	return &ProjectSnapshot{
		Project: *project,
		Tasks:   tasks,
		Members: members,
	}, nil
}

// FetchUserProjects builds snapshots for every project the user owns or is a
// member of, used by cross-project dashboard views.
func (f *Fetcher) FetchUserProjects(ctx context.Context, userID string) ([]*ProjectSnapshot, error) {
	projects, err := f.projects.ListByMember(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data: %w", err)
	}

	snapshots := make([]*ProjectSnapshot, 0, len(projects))
	for _, p := range projects {
		snap, err := f.FetchProject(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, nil
}

// FindMemberByNameOrEmail resolves a model-suggested assignee string against
// the snapshot's member list. Matching is case-insensitive on email first,
// then display name. Returns nil if no member matches.
func (s *ProjectSnapshot) FindMemberByNameOrEmail(ref string) *domain.User {
	if ref == "" {
		return nil
	}
	for i := range s.Members {
		if strings.EqualFold(s.Members[i].Email, ref) {
			return &s.Members[i]
		}
	}
	for i := range s.Members {
		if strings.EqualFold(s.Members[i].DisplayName, ref) {
			return &s.Members[i]
		}
	}
	return nil
}
