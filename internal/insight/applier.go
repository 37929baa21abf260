package insight

import (
	"context"

	"go.uber.org/zap"

	"github.com/srujanr7/ticketday-1-sub000/internal/db"
	"github.com/srujanr7/ticketday-1-sub000/internal/domain"
	"github.com/srujanr7/ticketday-1-sub000/internal/repository"
)

// TaskToApply pairs a normalized generated task with its resolved assignee.
// AssigneeID is empty when the model suggested nobody or the suggestion did
// not match a project member.
type TaskToApply struct {
	Task       domain.Task
	AssigneeID string
	AssignedBy string
}

// Applier persists generated content. Each item runs in its own transaction:
// a task and its assignment commit or roll back together, while a failure on
// one item never blocks the rest of the batch. The result lists exactly which
// items landed and which did not.
type Applier struct {
	uow db.UnitOfWork
	log *zap.Logger
}

func NewApplier(uow db.UnitOfWork, log *zap.Logger) *Applier {
	return &Applier{uow: uow, log: log}
}

// ApplyTasks persists a batch of generated tasks best-effort.
func (a *Applier) ApplyTasks(ctx context.Context, items []TaskToApply) ApplyResult {
	result := ApplyResult{Applied: []string{}, Failed: []ApplyFailure{}}

	for _, item := range items {
		item := item
		err := a.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			tasks := repository.NewSQLiteTaskRepo(tx)
			if err := tasks.Create(ctx, &item.Task); err != nil {
				return err
			}
			if item.AssigneeID == "" {
				return nil
			}
			assignments := repository.NewSQLiteAssignmentRepo(tx)
			return assignments.Create(ctx, &domain.TaskAssignment{
				TaskID:     item.Task.ID,
				UserID:     item.AssigneeID,
				AssignedBy: item.AssignedBy,
				AssignedAt: item.Task.CreatedAt,
			})
		})
		if err != nil {
			a.log.Warn("skipping generated task",
				zap.String("title", item.Task.Title),
				zap.Error(err))
			result.Failed = append(result.Failed, ApplyFailure{
				Title:  item.Task.Title,
				Reason: err.Error(),
			})
			continue
		}
		result.Applied = append(result.Applied, item.Task.ID)
	}

	return result
}

// ApplyEvents persists a batch of generated events best-effort, one
// transaction per event (the event row and its attendee rows together).
func (a *Applier) ApplyEvents(ctx context.Context, events []domain.Event) ApplyResult {
	result := ApplyResult{Applied: []string{}, Failed: []ApplyFailure{}}

	for _, ev := range events {
		ev := ev
		err := a.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			return repository.NewSQLiteEventRepo(tx).Create(ctx, &ev)
		})
		if err != nil {
			a.log.Warn("skipping generated event",
				zap.String("title", ev.Title),
				zap.Error(err))
			result.Failed = append(result.Failed, ApplyFailure{
				Title:  ev.Title,
				Reason: err.Error(),
			})
			continue
		}
		result.Applied = append(result.Applied, ev.ID)
	}

	return result
}
