package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/srujanr7/ticketday-1-sub000/internal/db"
	"github.com/srujanr7/ticketday-1-sub000/internal/domain"
)

// SQLiteAssignmentRepo implements AssignmentRepo using a SQLite database.
type SQLiteAssignmentRepo struct {
	conn db.DBTX
}

func NewSQLiteAssignmentRepo(conn db.DBTX) *SQLiteAssignmentRepo {
	return &SQLiteAssignmentRepo{conn: conn}
}

func (r *SQLiteAssignmentRepo) Create(ctx context.Context, a *domain.TaskAssignment) error {
	query := `INSERT INTO task_assignments (task_id, user_id, assigned_by, assigned_at)
		VALUES (?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		a.TaskID,
		a.UserID,
		a.AssignedBy,
		a.AssignedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task assignment: %w", err)
	}
	return nil
}

func (r *SQLiteAssignmentRepo) Exists(ctx context.Context, taskID, userID string) (bool, error) {
	var count int
	err := r.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM task_assignments WHERE task_id = ? AND user_id = ?`,
		taskID, userID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking assignment existence: %w", err)
	}
	return count > 0, nil
}

func (r *SQLiteAssignmentRepo) ListByTask(ctx context.Context, taskID string) ([]domain.TaskAssignment, error) {
	query := `SELECT task_id, user_id, assigned_by, assigned_at
		FROM task_assignments WHERE task_id = ? ORDER BY assigned_at`
	rows, err := r.conn.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("listing assignments: %w", err)
	}
	defer rows.Close()

	var assignments []domain.TaskAssignment
	for rows.Next() {
		var a domain.TaskAssignment
		var assignedAtStr string
		if err := rows.Scan(&a.TaskID, &a.UserID, &a.AssignedBy, &assignedAtStr); err != nil {
			return nil, fmt.Errorf("scanning assignment row: %w", err)
		}
		a.AssignedAt, _ = time.Parse(time.RFC3339, assignedAtStr)
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assignments: %w", err)
	}
	return assignments, nil
}

func (r *SQLiteAssignmentRepo) Delete(ctx context.Context, taskID, userID string) error {
	_, err := r.conn.ExecContext(ctx,
		`DELETE FROM task_assignments WHERE task_id = ? AND user_id = ?`, taskID, userID)
	if err != nil {
		return fmt.Errorf("deleting assignment: %w", err)
	}
	return nil
}
