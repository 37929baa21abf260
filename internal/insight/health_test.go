package insight

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srujanr7/ticketday-1-sub000/internal/domain"
	"github.com/srujanr7/ticketday-1-sub000/internal/repository"
)

func TestComputeHealth_EmptyProject(t *testing.T) {
	score := ComputeHealth(HealthInput{Now: time.Now()})
	assert.Equal(t, 50, score)
}

func TestComputeHealth_AllDone(t *testing.T) {
	score := ComputeHealth(HealthInput{
		Now:        time.Now(),
		TotalTasks: 10,
		DoneTasks:  10,
	})
	assert.Equal(t, 80, score)
}

func TestComputeHealth_OverdueDragsScoreDown(t *testing.T) {
	base := ComputeHealth(HealthInput{Now: time.Now(), TotalTasks: 10, DoneTasks: 5})
	worse := ComputeHealth(HealthInput{Now: time.Now(), TotalTasks: 10, DoneTasks: 5, OverdueTasks: 4})
	assert.Less(t, worse, base)
}

func TestComputeHealth_PastDueDateCapsScore(t *testing.T) {
	due := time.Now().AddDate(0, 0, -3)
	score := ComputeHealth(HealthInput{
		Now:        time.Now(),
		DueDate:    &due,
		TotalTasks: 10,
		DoneTasks:  9,
	})
	assert.LessOrEqual(t, score, 35)
}

func TestComputeHealth_NeverOutOfRange(t *testing.T) {
	score := ComputeHealth(HealthInput{
		Now:          time.Now(),
		TotalTasks:   10,
		OverdueTasks: 10,
		HighOpen:     10,
		Unassigned:   10,
	})
	require.GreaterOrEqual(t, score, 0)
	require.LessOrEqual(t, score, 100)
}

func TestSnapshotHealthInput(t *testing.T) {
	now := time.Now().UTC()
	past := now.AddDate(0, 0, -2)
	future := now.AddDate(0, 0, 5)

	snap := &ProjectSnapshot{
		Project: domain.Project{DueDate: &future},
		Tasks: []repository.TaskWithAssignees{
			{Task: domain.Task{Status: domain.TaskDone}},
			{Task: domain.Task{Status: domain.TaskTodo, Priority: domain.PriorityHigh, DueDate: &past}},
			{Task: domain.Task{Status: domain.TaskInProgress, Priority: domain.PriorityMedium},
				Assignees: []domain.User{{ID: "u1"}}},
		},
	}

	input := SnapshotHealthInput(snap, now)
	assert.Equal(t, 3, input.TotalTasks)
	assert.Equal(t, 1, input.DoneTasks)
	assert.Equal(t, 1, input.OverdueTasks)
	assert.Equal(t, 1, input.HighOpen)
	assert.Equal(t, 1, input.Unassigned)
	assert.Equal(t, &future, input.DueDate)
}
