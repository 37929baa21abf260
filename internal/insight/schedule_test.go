package insight

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/srujanr7/ticketday-1-sub000/internal/domain"
	"github.com/srujanr7/ticketday-1-sub000/internal/llm"
	"github.com/srujanr7/ticketday-1-sub000/internal/repository"
	"github.com/srujanr7/ticketday-1-sub000/internal/testutil"
)

func newScheduleService(t *testing.T, env *insightEnv, model llm.Client) *ScheduleService {
	t.Helper()
	applier := NewApplier(testutil.NewTestUoW(env.db), zap.NewNop())
	events := repository.NewSQLiteEventRepo(env.db)
	return NewScheduleService(env.fetcher, events, model, applier, zap.NewNop())
}

func TestSchedule_GenerateSchedule_Success(t *testing.T) {
	env := newInsightEnv(t)
	ctx := context.Background()

	members := repository.NewSQLiteMemberRepo(env.db)
	env.owner.Email = "ada@example.com"
	require.NoError(t, members.UpsertUser(ctx, env.owner))

	svc := newScheduleService(t, env, &fakeModel{response: `Here you go:
[
  {"title": "Sprint planning", "description": "Plan the next sprint.", "daysFromNow": 1, "startTime": "10:00", "durationMin": 60, "type": "planning", "attendees": ["ada@example.com"]},
  {"title": "Mid-sprint check", "description": "", "daysFromNow": 4, "startTime": "25:99", "durationMin": -5, "type": "sync", "attendees": ["nobody@example.com"]}
]`})

	result, err := svc.GenerateSchedule(ctx, env.project.ID, env.owner.ID)
	require.NoError(t, err)
	assert.Len(t, result.Applied, 2)
	assert.Empty(t, result.Failed)

	persisted, err := repository.NewSQLiteEventRepo(env.db).ListByProject(ctx, env.project.ID)
	require.NoError(t, err)
	require.Len(t, persisted, 2)

	byTitle := map[string]*domain.Event{}
	for _, e := range persisted {
		byTitle[e.Title] = e
	}

	planning := byTitle["Sprint planning"]
	require.NotNil(t, planning)
	assert.Equal(t, domain.EventPlanning, planning.Type)
	assert.Equal(t, []string{env.owner.ID}, planning.Attendees)

	// Malformed time, duration, type, and unknown attendee all normalized.
	check := byTitle["Mid-sprint check"]
	require.NotNil(t, check)
	assert.Equal(t, "10:00", check.StartTime)
	assert.Equal(t, 30, check.DurationMin)
	assert.Equal(t, domain.EventOther, check.Type)
	assert.Empty(t, check.Attendees)
}

func TestSchedule_GenerateSchedule_ClampsBatchSize(t *testing.T) {
	env := newInsightEnv(t)

	big := "["
	for i := 0; i < 8; i++ {
		if i > 0 {
			big += ","
		}
		big += `{"title": "Meeting ` + string(rune('A'+i)) + `", "daysFromNow": 1, "startTime": "10:00", "durationMin": 30, "type": "other", "attendees": []}`
	}
	big += "]"

	svc := newScheduleService(t, env, &fakeModel{response: big})
	result, err := svc.GenerateSchedule(context.Background(), env.project.ID, env.owner.ID)
	require.NoError(t, err)
	assert.Len(t, result.Applied, maxGeneratedEvents)
}

func TestSchedule_GenerateSchedule_ParseFailure(t *testing.T) {
	env := newInsightEnv(t)
	svc := newScheduleService(t, env, &fakeModel{response: "No meetings needed."})

	_, err := svc.GenerateSchedule(context.Background(), env.project.ID, env.owner.ID)
	assert.ErrorIs(t, err, llm.ErrInvalidOutput)
}

func TestSchedule_GenerateSchedule_ModelDisabled(t *testing.T) {
	env := newInsightEnv(t)
	svc := newScheduleService(t, env, nil)

	_, err := svc.GenerateSchedule(context.Background(), env.project.ID, env.owner.ID)
	assert.ErrorIs(t, err, llm.ErrEndpointUnavailable)
}
