package insight

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/srujanr7/ticketday-1-sub000/internal/llm"
)

// Service runs the insight analysis pipeline: fetch the project aggregate,
// build the prompt, invoke the model, parse the response, and shape the
// result. The acting user id is passed explicitly on every call; the service
// holds no ambient identity state.
//
// Every call returns a non-nil, shape-complete insight. A fetch or model
// failure is reported through the error return alongside the heuristic
// fallback insight; a parse failure is not an error at all.
type Service struct {
	fetcher *Fetcher
	client  llm.Client
	cache   *Cache
	log     *zap.Logger
	now     func() time.Time
}

func NewService(fetcher *Fetcher, client llm.Client, cache *Cache, log *zap.Logger) *Service {
	return &Service{
		fetcher: fetcher,
		client:  client,
		cache:   cache,
		log:     log,
		now:     time.Now,
	}
}

// GenerateProjectInsight produces the insight object for one project.
func (s *Service) GenerateProjectInsight(ctx context.Context, projectID, userID string) (*ProjectInsight, error) {
	if cached, ok := s.cache.Get(projectID); ok {
		s.log.Debug("insight cache hit",
			zap.String("project_id", projectID),
			zap.String("user_id", userID))
		return cached, nil
	}

	now := s.now()

	snap, err := s.fetcher.FetchProject(ctx, projectID)
	if err != nil {
		s.log.Error("insight fetch failed",
			zap.String("project_id", projectID),
			zap.String("user_id", userID),
			zap.Error(err))
		return DefaultProjectInsight(nil, now), err
	}

	if s.client == nil {
		// Model disabled: the heuristic insight is the real answer, not a
		// degraded one, so it is cacheable and error-free.
		result := DefaultProjectInsight(snap, now)
		s.cache.Put(projectID, result)
		return result, nil
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskInsight,
		SystemPrompt: insightSystemPrompt,
		UserPrompt:   BuildSnapshotPrompt(snap, now),
	})
	if err != nil {
		s.log.Error("insight generation failed",
			zap.String("project_id", projectID),
			zap.String("user_id", userID),
			zap.Error(err))
		return DefaultProjectInsight(snap, now), err
	}

	parsed, err := llm.ExtractJSON[ProjectInsight](resp.Text, nil)
	if err != nil {
		// Deliberate: the dashboard renders whatever it gets, so malformed
		// model output degrades to the heuristic default without surfacing
		// an error to the caller.
		s.log.Warn("insight response unparseable, using defaults",
			zap.String("project_id", projectID),
			zap.Error(err))
		return DefaultProjectInsight(snap, now), nil
	}

	result := normalizeInsight(&parsed)
	s.cache.Put(projectID, result)
	return result, nil
}

// ProjectHealth is one row of the cross-project overview: heuristic health
// for a single project, computed without a model call.
type ProjectHealth struct {
	ProjectID    string `json:"projectId"`
	Name         string `json:"name"`
	HealthScore  int    `json:"healthScore"`
	TotalTasks   int    `json:"totalTasks"`
	DoneTasks    int    `json:"doneTasks"`
	OverdueTasks int    `json:"overdueTasks"`
}

// WorkspaceOverview returns heuristic health for every project the user owns
// or is a member of. It never invokes the model; the dashboard uses it for
// the landing view where one model call per project would be too slow.
func (s *Service) WorkspaceOverview(ctx context.Context, userID string) ([]ProjectHealth, error) {
	snaps, err := s.fetcher.FetchUserProjects(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	overview := make([]ProjectHealth, 0, len(snaps))
	for _, snap := range snaps {
		in := SnapshotHealthInput(snap, now)
		overview = append(overview, ProjectHealth{
			ProjectID:    snap.Project.ID,
			Name:         snap.Project.Name,
			HealthScore:  ComputeHealth(in),
			TotalTasks:   in.TotalTasks,
			DoneTasks:    in.DoneTasks,
			OverdueTasks: in.OverdueTasks,
		})
	}
	return overview, nil
}

// InvalidateProject drops any cached insight for the project. Called by
// write paths that change the underlying task data.
func (s *Service) InvalidateProject(projectID string) {
	s.cache.Invalidate(projectID)
}

// IsParseError reports whether an error from the generation services means
// the model replied but its output could not be parsed.
func IsParseError(err error) bool {
	return errors.Is(err, llm.ErrInvalidOutput)
}
