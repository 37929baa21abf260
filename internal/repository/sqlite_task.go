package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/srujanr7/ticketday-1-sub000/internal/db"
	"github.com/srujanr7/ticketday-1-sub000/internal/domain"
)

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	conn db.DBTX
}

func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{conn: conn}
}

const taskColumns = `id, project_id, title, description, status, priority, due_date, estimated_hours, created_by, tags, created_at, updated_at`

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		t.ID,
		t.ProjectID,
		t.Title,
		t.Description,
		string(t.Status),
		string(t.Priority),
		nullableTimeToString(t.DueDate, dateLayout),
		t.EstimatedHours,
		t.CreatedBy,
		tagsToJSON(t.Tags),
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	t, err := scanTaskFields(r.conn.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("task %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	return t, nil
}

func (r *SQLiteTaskRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE project_id = ? ORDER BY created_at`
	rows, err := r.conn.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTaskFields(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

// ListByProjectWithAssignees loads a project's tasks together with their
// assigned users in two queries rather than N+1 per-task lookups.
func (r *SQLiteTaskRepo) ListByProjectWithAssignees(ctx context.Context, projectID string) ([]TaskWithAssignees, error) {
	tasks, err := r.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	query := `SELECT a.task_id, u.id, u.email, u.display_name, u.created_at
		FROM task_assignments a
		JOIN users u ON u.id = a.user_id
		JOIN tasks t ON t.id = a.task_id
		WHERE t.project_id = ?
		ORDER BY a.assigned_at`
	rows, err := r.conn.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing task assignees: %w", err)
	}
	defer rows.Close()

	assignees := make(map[string][]domain.User)
	for rows.Next() {
		var taskID, createdAtStr string
		var u domain.User
		if err := rows.Scan(&taskID, &u.ID, &u.Email, &u.DisplayName, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning assignee row: %w", err)
		}
		u.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
		assignees[taskID] = append(assignees[taskID], u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assignees: %w", err)
	}

	result := make([]TaskWithAssignees, 0, len(tasks))
	for _, t := range tasks {
		result = append(result, TaskWithAssignees{Task: *t, Assignees: assignees[t.ID]})
	}
	return result, nil
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET title = ?, description = ?, status = ?, priority = ?, due_date = ?, estimated_hours = ?, tags = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query,
		t.Title,
		t.Description,
		string(t.Status),
		string(t.Priority),
		nullableTimeToString(t.DueDate, dateLayout),
		t.EstimatedHours,
		tagsToJSON(t.Tags),
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.conn.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return nil
}

func scanTaskFields(sc rowScanner) (*domain.Task, error) {
	var t domain.Task
	var dueDate sql.NullString
	var statusStr, priorityStr, tagsStr, createdAtStr, updatedAtStr string

	err := sc.Scan(
		&t.ID, &t.ProjectID, &t.Title, &t.Description,
		&statusStr, &priorityStr, &dueDate, &t.EstimatedHours,
		&t.CreatedBy, &tagsStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, err
	}

	t.Status = domain.TaskStatus(statusStr)
	t.Priority = domain.TaskPriority(priorityStr)
	t.DueDate = parseNullableTime(dueDate, dateLayout)
	t.Tags = tagsFromJSON(tagsStr)

	var parseErr error
	t.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	t.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	return &t, nil
}
