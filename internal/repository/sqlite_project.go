package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/srujanr7/ticketday-1-sub000/internal/db"
	"github.com/srujanr7/ticketday-1-sub000/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	conn db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo. The conn may be a
// *sql.DB or a transaction from a unit of work.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{conn: conn}
}

const projectColumns = `id, name, description, owner_id, start_date, due_date, status, created_at, updated_at`

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.Description,
		p.OwnerID,
		nullableTimeToString(p.StartDate, dateLayout),
		nullableTimeToString(p.DueDate, dateLayout),
		string(p.Status),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	row := r.conn.QueryRowContext(ctx, query, id)
	return scanProject(row)
}

func (r *SQLiteProjectRepo) ListByMember(ctx context.Context, userID string) ([]*domain.Project, error) {
	query := `SELECT DISTINCT p.id, p.name, p.description, p.owner_id, p.start_date, p.due_date, p.status, p.created_at, p.updated_at
		FROM projects p
		LEFT JOIN project_members m ON m.project_id = p.id
		WHERE p.owner_id = ? OR m.user_id = ?
		ORDER BY p.created_at`
	return r.queryProjects(ctx, query, userID, userID)
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET name = ?, description = ?, start_date = ?, due_date = ?, status = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query,
		p.Name,
		p.Description,
		nullableTimeToString(p.StartDate, dateLayout),
		nullableTimeToString(p.DueDate, dateLayout),
		string(p.Status),
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.conn.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) queryProjects(ctx context.Context, query string, args ...any) ([]*domain.Project, error) {
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProjectRow(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProjectFields(sc rowScanner) (*domain.Project, error) {
	var p domain.Project
	var startDate, dueDate sql.NullString
	var statusStr, createdAtStr, updatedAtStr string

	err := sc.Scan(
		&p.ID, &p.Name, &p.Description, &p.OwnerID,
		&startDate, &dueDate,
		&statusStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, err
	}

	p.Status = domain.ProjectStatus(statusStr)
	p.StartDate = parseNullableTime(startDate, dateLayout)
	p.DueDate = parseNullableTime(dueDate, dateLayout)

	var parseErr error
	p.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	p.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	return &p, nil
}

func scanProject(row *sql.Row) (*domain.Project, error) {
	p, err := scanProjectFields(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("project %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	return p, nil
}

func scanProjectRow(rows *sql.Rows) (*domain.Project, error) {
	p, err := scanProjectFields(rows)
	if err != nil {
		return nil, fmt.Errorf("scanning project row: %w", err)
	}
	return p, nil
}
