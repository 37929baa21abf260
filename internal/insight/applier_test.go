package insight

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/srujanr7/ticketday-1-sub000/internal/domain"
	"github.com/srujanr7/ticketday-1-sub000/internal/repository"
	"github.com/srujanr7/ticketday-1-sub000/internal/testutil"
)

func TestApplier_TaskAndAssignmentAreAtomicPerItem(t *testing.T) {
	env := newInsightEnv(t)
	ctx := context.Background()

	// First item writes twice (task + assignment); failing the assignment
	// must roll back the task too. Second item has no assignee and lands.
	uow := &testutil.FailOnNthExecUoW{
		DB:     env.db,
		FailOn: 2,
		Err:    errors.New("constraint violation"),
	}
	applier := NewApplier(uow, zap.NewNop())

	now := time.Now().UTC()
	first := testutil.NewTestTask(env.project.ID, "With assignee", env.owner.ID)
	first.CreatedAt = now
	second := testutil.NewTestTask(env.project.ID, "Without assignee", env.owner.ID)

	result := applier.ApplyTasks(ctx, []TaskToApply{
		{Task: *first, AssigneeID: env.owner.ID, AssignedBy: env.owner.ID},
		{Task: *second, AssignedBy: env.owner.ID},
	})

	require.Len(t, result.Failed, 1)
	assert.Equal(t, "With assignee", result.Failed[0].Title)
	assert.Equal(t, []string{second.ID}, result.Applied)

	persisted, err := repository.NewSQLiteTaskRepo(env.db).ListByProject(ctx, env.project.ID)
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, "Without assignee", persisted[0].Title)
}

func TestApplier_EmptyBatch(t *testing.T) {
	env := newInsightEnv(t)
	applier := NewApplier(testutil.NewTestUoW(env.db), zap.NewNop())

	result := applier.ApplyTasks(context.Background(), nil)
	assert.NotNil(t, result.Applied)
	assert.NotNil(t, result.Failed)
	assert.Empty(t, result.Applied)
	assert.Empty(t, result.Failed)
}

func TestApplier_ApplyEvents(t *testing.T) {
	env := newInsightEnv(t)
	ctx := context.Background()
	applier := NewApplier(testutil.NewTestUoW(env.db), zap.NewNop())

	ev := testutil.NewTestEvent(env.project.ID, "Sprint planning", env.owner.ID,
		testutil.WithEventType(domain.EventPlanning))
	ev.Attendees = []string{env.owner.ID}

	result := applier.ApplyEvents(ctx, []domain.Event{*ev})
	require.Empty(t, result.Failed)
	require.Len(t, result.Applied, 1)

	persisted, err := repository.NewSQLiteEventRepo(env.db).GetByID(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sprint planning", persisted.Title)
	assert.Equal(t, []string{env.owner.ID}, persisted.Attendees)
}

func TestApplier_ApplyEvents_PartialFailure(t *testing.T) {
	env := newInsightEnv(t)
	ctx := context.Background()

	// Each event writes the event row then one attendee row.
	uow := &testutil.FailOnNthExecUoW{
		DB:     env.db,
		FailOn: 1,
		Err:    errors.New("database is locked"),
	}
	applier := NewApplier(uow, zap.NewNop())

	first := testutil.NewTestEvent(env.project.ID, "Standup", env.owner.ID)
	second := testutil.NewTestEvent(env.project.ID, "Retro", env.owner.ID)

	result := applier.ApplyEvents(ctx, []domain.Event{*first, *second})
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "Standup", result.Failed[0].Title)
	assert.Equal(t, []string{second.ID}, result.Applied)
}
