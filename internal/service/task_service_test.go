package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srujanr7/ticketday-1-sub000/internal/domain"
	"github.com/srujanr7/ticketday-1-sub000/internal/repository"
	"github.com/srujanr7/ticketday-1-sub000/internal/testutil"
)

type serviceEnv struct {
	db       *sql.DB
	projects ProjectService
	tasks    TaskService
	events   EventService
	members  MemberService
	owner    *domain.User
	project  *domain.Project
}

func newServiceEnv(t *testing.T) *serviceEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	projectRepo := repository.NewSQLiteProjectRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	assignmentRepo := repository.NewSQLiteAssignmentRepo(database)
	eventRepo := repository.NewSQLiteEventRepo(database)
	memberRepo := repository.NewSQLiteMemberRepo(database)

	env := &serviceEnv{
		db:       database,
		projects: NewProjectService(projectRepo, memberRepo),
		tasks:    NewTaskService(taskRepo, assignmentRepo, memberRepo),
		events:   NewEventService(eventRepo),
		members:  NewMemberService(memberRepo, projectRepo),
	}

	env.owner = testutil.NewTestUser("Ada")
	require.NoError(t, env.members.UpsertUser(ctx, env.owner))

	env.project = testutil.NewTestProject("Checkout Revamp", env.owner.ID)
	require.NoError(t, env.projects.Create(ctx, env.project))
	return env
}

func TestTaskService_CreateDefaults(t *testing.T) {
	env := newServiceEnv(t)
	ctx := context.Background()

	task := &domain.Task{
		ProjectID: env.project.ID,
		Title:     "Write migration",
		CreatedBy: env.owner.ID,
	}
	require.NoError(t, env.tasks.Create(ctx, task))
	assert.NotEmpty(t, task.ID)

	got, err := env.tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskTodo, got.Status)
	assert.Equal(t, domain.PriorityMedium, got.Priority)
}

func TestTaskService_CreateRequiresTitle(t *testing.T) {
	env := newServiceEnv(t)

	err := env.tasks.Create(context.Background(), &domain.Task{
		ProjectID: env.project.ID,
		CreatedBy: env.owner.ID,
	})
	require.Error(t, err)
}

func TestTaskService_DuplicateAssignmentIsNoOp(t *testing.T) {
	env := newServiceEnv(t)
	ctx := context.Background()

	task := testutil.NewTestTask(env.project.ID, "Review PR", env.owner.ID)
	require.NoError(t, env.tasks.Create(ctx, task))

	require.NoError(t, env.tasks.Assign(ctx, task.ID, env.owner.ID, env.owner.ID))

	err := env.tasks.Assign(ctx, task.ID, env.owner.ID, env.owner.ID)
	assert.ErrorIs(t, err, ErrAlreadyAssigned)

	assignments, err := repository.NewSQLiteAssignmentRepo(env.db).ListByTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Len(t, assignments, 1)
}

func TestTaskService_AssignUnknownUser(t *testing.T) {
	env := newServiceEnv(t)
	ctx := context.Background()

	task := testutil.NewTestTask(env.project.ID, "Review PR", env.owner.ID)
	require.NoError(t, env.tasks.Create(ctx, task))

	err := env.tasks.Assign(ctx, task.ID, "no-such-user", env.owner.ID)
	require.Error(t, err)
}

func TestTaskService_Unassign(t *testing.T) {
	env := newServiceEnv(t)
	ctx := context.Background()

	task := testutil.NewTestTask(env.project.ID, "Review PR", env.owner.ID)
	require.NoError(t, env.tasks.Create(ctx, task))
	require.NoError(t, env.tasks.Assign(ctx, task.ID, env.owner.ID, env.owner.ID))
	require.NoError(t, env.tasks.Unassign(ctx, task.ID, env.owner.ID))

	// Re-assignment works after unassign.
	require.NoError(t, env.tasks.Assign(ctx, task.ID, env.owner.ID, env.owner.ID))
}

func TestTaskService_DeleteCreatorOnly(t *testing.T) {
	env := newServiceEnv(t)
	ctx := context.Background()

	other := testutil.NewTestUser("Bob")
	require.NoError(t, env.members.UpsertUser(ctx, other))

	task := testutil.NewTestTask(env.project.ID, "Review PR", env.owner.ID)
	require.NoError(t, env.tasks.Create(ctx, task))

	err := env.tasks.Delete(ctx, task.ID, other.ID)
	assert.ErrorIs(t, err, ErrNotCreator)

	require.NoError(t, env.tasks.Delete(ctx, task.ID, env.owner.ID))
	_, err = env.tasks.GetByID(ctx, task.ID)
	require.Error(t, err)
}
