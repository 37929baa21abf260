package insight

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/srujanr7/ticketday-1-sub000/internal/domain"
	"github.com/srujanr7/ticketday-1-sub000/internal/llm"
)

// maxGeneratedTasks bounds one generation batch. The prompt asks for at most
// ten; a model that ignores the instruction is clamped here.
const maxGeneratedTasks = 10

// TaskGenService runs the task generation pipeline: it turns a free-form
// feature request into persisted tasks with best-effort assignment.
type TaskGenService struct {
	fetcher *Fetcher
	client  llm.Client
	applier *Applier
	cache   *Cache
	log     *zap.Logger
	now     func() time.Time
}

func NewTaskGenService(fetcher *Fetcher, client llm.Client, applier *Applier, cache *Cache, log *zap.Logger) *TaskGenService {
	return &TaskGenService{
		fetcher: fetcher,
		client:  client,
		applier: applier,
		cache:   cache,
		log:     log,
		now:     time.Now,
	}
}

// GenerateTasks creates 1-10 tasks for a project from a feature request.
// Unlike the insight flow, a parse failure here is surfaced to the caller:
// persisting nothing silently would look identical to the model proposing
// nothing.
func (s *TaskGenService) GenerateTasks(ctx context.Context, projectID, userID, request string) (*ApplyResult, error) {
	if strings.TrimSpace(request) == "" {
		return nil, fmt.Errorf("%w: empty generation request", llm.ErrInvalidOutput)
	}
	if s.client == nil {
		return nil, llm.ErrEndpointUnavailable
	}

	now := s.now()

	snap, err := s.fetcher.FetchProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskTaskGen,
		SystemPrompt: taskGenSystemPrompt,
		UserPrompt:   BuildTaskGenPrompt(snap, request, now),
	})
	if err != nil {
		s.log.Error("task generation failed",
			zap.String("project_id", projectID),
			zap.String("user_id", userID),
			zap.Error(err))
		return nil, err
	}

	generated, err := llm.ExtractJSON[[]GeneratedTask](resp.Text, nil)
	if err != nil {
		s.log.Warn("task generation output unparseable",
			zap.String("project_id", projectID),
			zap.Error(err))
		return nil, err
	}

	items := s.normalizeTasks(snap, generated, projectID, userID, now)
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: model produced no usable tasks", llm.ErrInvalidOutput)
	}

	result := s.applier.ApplyTasks(ctx, items)
	s.cache.Invalidate(projectID)

	s.log.Info("task generation applied",
		zap.String("project_id", projectID),
		zap.String("user_id", userID),
		zap.Int("applied", len(result.Applied)),
		zap.Int("failed", len(result.Failed)))
	return &result, nil
}

// normalizeTasks drops unusable items, clamps the batch size, maps model
// spellings onto canonical enums, and resolves assignees against the team.
func (s *TaskGenService) normalizeTasks(snap *ProjectSnapshot, generated []GeneratedTask, projectID, userID string, now time.Time) []TaskToApply {
	if len(generated) > maxGeneratedTasks {
		generated = generated[:maxGeneratedTasks]
	}

	items := make([]TaskToApply, 0, len(generated))
	for _, g := range generated {
		title := strings.TrimSpace(g.Title)
		if title == "" {
			continue
		}

		task := domain.Task{
			ID:          uuid.NewString(),
			ProjectID:   projectID,
			Title:       title,
			Description: strings.TrimSpace(g.Description),
			Status:      domain.NormalizeTaskStatus(g.Status),
			Priority:    domain.NormalizeTaskPriority(g.Priority),
			CreatedBy:   userID,
			Tags:        g.Tags,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if g.EstimatedHours > 0 {
			task.EstimatedHours = g.EstimatedHours
		}
		if g.DueInDays >= 1 {
			due := now.AddDate(0, 0, g.DueInDays)
			task.DueDate = &due
		}

		item := TaskToApply{Task: task, AssignedBy: userID}
		if member := snap.FindMemberByNameOrEmail(g.Assignee); member != nil {
			item.AssigneeID = member.ID
		}
		items = append(items, item)
	}
	return items
}
