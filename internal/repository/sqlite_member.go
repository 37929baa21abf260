package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/srujanr7/ticketday-1-sub000/internal/db"
	"github.com/srujanr7/ticketday-1-sub000/internal/domain"
)

// SQLiteMemberRepo implements MemberRepo using a SQLite database.
// It covers both the users table and project membership rows.
type SQLiteMemberRepo struct {
	conn db.DBTX
}

func NewSQLiteMemberRepo(conn db.DBTX) *SQLiteMemberRepo {
	return &SQLiteMemberRepo{conn: conn}
}

func (r *SQLiteMemberRepo) UpsertUser(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (id, email, display_name, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET email = excluded.email, display_name = excluded.display_name`
	_, err := r.conn.ExecContext(ctx, query,
		u.ID, u.Email, u.DisplayName, u.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upserting user: %w", err)
	}
	return nil
}

func (r *SQLiteMemberRepo) GetUser(ctx context.Context, id string) (*domain.User, error) {
	row := r.conn.QueryRowContext(ctx,
		`SELECT id, email, display_name, created_at FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *SQLiteMemberRepo) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.conn.QueryRowContext(ctx,
		`SELECT id, email, display_name, created_at FROM users WHERE email = ? COLLATE NOCASE`, email)
	return scanUser(row)
}

func (r *SQLiteMemberRepo) AddMember(ctx context.Context, m *domain.ProjectMember) error {
	query := `INSERT OR IGNORE INTO project_members (project_id, user_id, role, added_at)
		VALUES (?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		m.ProjectID, m.UserID, string(m.Role), m.AddedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("adding project member: %w", err)
	}
	return nil
}

func (r *SQLiteMemberRepo) RemoveMember(ctx context.Context, projectID, userID string) error {
	_, err := r.conn.ExecContext(ctx,
		`DELETE FROM project_members WHERE project_id = ? AND user_id = ?`, projectID, userID)
	if err != nil {
		return fmt.Errorf("removing project member: %w", err)
	}
	return nil
}

// ListProjectUsers returns the owner plus explicit members, deduplicated by id.
func (r *SQLiteMemberRepo) ListProjectUsers(ctx context.Context, projectID string) ([]domain.User, error) {
	query := `SELECT DISTINCT u.id, u.email, u.display_name, u.created_at
		FROM users u
		WHERE u.id IN (SELECT owner_id FROM projects WHERE id = ?)
		   OR u.id IN (SELECT user_id FROM project_members WHERE project_id = ?)
		ORDER BY u.email`
	rows, err := r.conn.QueryContext(ctx, query, projectID, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing project users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		var createdAtStr string
		if err := rows.Scan(&u.ID, &u.Email, &u.DisplayName, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		u.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return users, nil
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	var createdAtStr string
	if err := row.Scan(&u.ID, &u.Email, &u.DisplayName, &createdAtStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
	return &u, nil
}
