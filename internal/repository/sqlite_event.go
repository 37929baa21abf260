package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/srujanr7/ticketday-1-sub000/internal/db"
	"github.com/srujanr7/ticketday-1-sub000/internal/domain"
)

// SQLiteEventRepo implements EventRepo using a SQLite database.
type SQLiteEventRepo struct {
	conn db.DBTX
}

func NewSQLiteEventRepo(conn db.DBTX) *SQLiteEventRepo {
	return &SQLiteEventRepo{conn: conn}
}

const eventColumns = `id, project_id, title, description, date, start_time, duration_min, type, created_by, created_at`

func (r *SQLiteEventRepo) Create(ctx context.Context, e *domain.Event) error {
	query := `INSERT INTO events (` + eventColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		e.ID,
		e.ProjectID,
		e.Title,
		e.Description,
		e.Date.Format(dateLayout),
		e.StartTime,
		e.DurationMin,
		string(e.Type),
		e.CreatedBy,
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}

	for _, userID := range e.Attendees {
		_, err := r.conn.ExecContext(ctx,
			`INSERT OR IGNORE INTO event_attendees (event_id, user_id) VALUES (?, ?)`,
			e.ID, userID)
		if err != nil {
			return fmt.Errorf("inserting event attendee: %w", err)
		}
	}
	return nil
}

func (r *SQLiteEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = ?`
	e, err := scanEventFields(r.conn.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("event %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning event: %w", err)
	}
	if err := r.loadAttendees(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *SQLiteEventRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE project_id = ? ORDER BY date, start_time`
	return r.queryEvents(ctx, query, projectID)
}

// ListUpcoming returns events for the project dated within [today, today+days].
func (r *SQLiteEventRepo) ListUpcoming(ctx context.Context, projectID string, days int) ([]*domain.Event, error) {
	today := time.Now().UTC().Format(dateLayout)
	until := time.Now().UTC().AddDate(0, 0, days).Format(dateLayout)
	query := `SELECT ` + eventColumns + ` FROM events
		WHERE project_id = ? AND date >= ? AND date <= ?
		ORDER BY date, start_time`
	return r.queryEvents(ctx, query, projectID, today, until)
}

func (r *SQLiteEventRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.conn.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	return nil
}

func (r *SQLiteEventRepo) queryEvents(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		e, err := scanEventFields(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning event row: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}

	for _, e := range events {
		if err := r.loadAttendees(ctx, e); err != nil {
			return nil, err
		}
	}
	return events, nil
}

func (r *SQLiteEventRepo) loadAttendees(ctx context.Context, e *domain.Event) error {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT user_id FROM event_attendees WHERE event_id = ? ORDER BY user_id`, e.ID)
	if err != nil {
		return fmt.Errorf("listing event attendees: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return fmt.Errorf("scanning attendee row: %w", err)
		}
		e.Attendees = append(e.Attendees, userID)
	}
	return rows.Err()
}

func scanEventFields(sc rowScanner) (*domain.Event, error) {
	var e domain.Event
	var dateStr, typeStr, createdAtStr string

	err := sc.Scan(
		&e.ID, &e.ProjectID, &e.Title, &e.Description,
		&dateStr, &e.StartTime, &e.DurationMin,
		&typeStr, &e.CreatedBy, &createdAtStr,
	)
	if err != nil {
		return nil, err
	}

	e.Type = domain.EventType(typeStr)

	var parseErr error
	e.Date, parseErr = time.Parse(dateLayout, dateStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing event date: %w", parseErr)
	}
	e.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}

	return &e, nil
}
