package insight

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/srujanr7/ticketday-1-sub000/internal/domain"
	"github.com/srujanr7/ticketday-1-sub000/internal/llm"
	"github.com/srujanr7/ticketday-1-sub000/internal/repository"
)

// maxGeneratedEvents bounds one schedule generation batch.
const maxGeneratedEvents = 5

// upcomingWindowDays is how far ahead existing meetings are surfaced in the
// prompt so the model avoids proposing duplicates.
const upcomingWindowDays = 14

var startTimePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ScheduleService runs the meeting synthesis pipeline: it proposes and
// persists a small set of meetings for a project.
type ScheduleService struct {
	fetcher *Fetcher
	events  repository.EventRepo
	client  llm.Client
	applier *Applier
	log     *zap.Logger
	now     func() time.Time
}

func NewScheduleService(fetcher *Fetcher, events repository.EventRepo, client llm.Client, applier *Applier, log *zap.Logger) *ScheduleService {
	return &ScheduleService{
		fetcher: fetcher,
		events:  events,
		client:  client,
		applier: applier,
		log:     log,
		now:     time.Now,
	}
}

// GenerateSchedule proposes 1-5 meetings for a project and persists them
// best-effort. Parse failures are surfaced like in task generation.
func (s *ScheduleService) GenerateSchedule(ctx context.Context, projectID, userID string) (*ApplyResult, error) {
	if s.client == nil {
		return nil, llm.ErrEndpointUnavailable
	}

	now := s.now()

	snap, err := s.fetcher.FetchProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	existing, err := s.events.ListUpcoming(ctx, projectID, upcomingWindowDays)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data: %w", err)
	}
	upcoming := make([]upcomingEvent, 0, len(existing))
	for _, e := range existing {
		upcoming = append(upcoming, upcomingEvent{
			Title:     e.Title,
			Date:      e.Date.Format("2006-01-02"),
			StartTime: e.StartTime,
			Type:      string(e.Type),
		})
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskScheduleGen,
		SystemPrompt: scheduleGenSystemPrompt,
		UserPrompt:   BuildSchedulePrompt(snap, upcoming, now),
	})
	if err != nil {
		s.log.Error("schedule generation failed",
			zap.String("project_id", projectID),
			zap.String("user_id", userID),
			zap.Error(err))
		return nil, err
	}

	generated, err := llm.ExtractJSON[[]GeneratedEvent](resp.Text, nil)
	if err != nil {
		s.log.Warn("schedule generation output unparseable",
			zap.String("project_id", projectID),
			zap.Error(err))
		return nil, err
	}

	events := s.normalizeEvents(snap, generated, projectID, userID, now)
	if len(events) == 0 {
		return nil, fmt.Errorf("%w: model produced no usable meetings", llm.ErrInvalidOutput)
	}

	result := s.applier.ApplyEvents(ctx, events)

	s.log.Info("schedule generation applied",
		zap.String("project_id", projectID),
		zap.String("user_id", userID),
		zap.Int("applied", len(result.Applied)),
		zap.Int("failed", len(result.Failed)))
	return &result, nil
}

func (s *ScheduleService) normalizeEvents(snap *ProjectSnapshot, generated []GeneratedEvent, projectID, userID string, now time.Time) []domain.Event {
	if len(generated) > maxGeneratedEvents {
		generated = generated[:maxGeneratedEvents]
	}

	events := make([]domain.Event, 0, len(generated))
	for _, g := range generated {
		title := strings.TrimSpace(g.Title)
		if title == "" {
			continue
		}

		daysFromNow := g.DaysFromNow
		if daysFromNow < 0 {
			daysFromNow = 0
		}
		startTime := g.StartTime
		if !startTimePattern.MatchString(startTime) {
			startTime = "10:00"
		}
		duration := g.DurationMin
		if duration <= 0 || duration > 240 {
			duration = 30
		}

		var attendees []string
		for _, ref := range g.Attendees {
			if member := snap.FindMemberByNameOrEmail(ref); member != nil {
				attendees = append(attendees, member.ID)
			}
		}

		events = append(events, domain.Event{
			ID:          uuid.NewString(),
			ProjectID:   projectID,
			Title:       title,
			Description: strings.TrimSpace(g.Description),
			Date:        now.AddDate(0, 0, daysFromNow),
			StartTime:   startTime,
			DurationMin: duration,
			Type:        domain.NormalizeEventType(g.Type),
			CreatedBy:   userID,
			Attendees:   attendees,
			CreatedAt:   now,
		})
	}
	return events
}
