package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; ALTER TABLE
// "duplicate column name" errors are tolerated since the whole list re-runs
// on every startup.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id           TEXT PRIMARY KEY,
		email        TEXT NOT NULL UNIQUE,
		display_name TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		owner_id    TEXT NOT NULL REFERENCES users(id),
		start_date  TEXT,
		due_date    TEXT,
		status      TEXT NOT NULL DEFAULT 'planning'
		            CHECK(status IN ('planning','active','on_hold','completed')),
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_projects_owner ON projects(owner_id)`,

	`CREATE TABLE IF NOT EXISTS project_members (
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		role       TEXT NOT NULL DEFAULT 'editor'
		           CHECK(role IN ('owner','editor','viewer')),
		added_at   TEXT NOT NULL,
		PRIMARY KEY (project_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id              TEXT PRIMARY KEY,
		project_id      TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		title           TEXT NOT NULL,
		description     TEXT NOT NULL DEFAULT '',
		status          TEXT NOT NULL DEFAULT 'todo'
		                CHECK(status IN ('todo','in_progress','review','done')),
		priority        TEXT NOT NULL DEFAULT 'medium'
		                CHECK(priority IN ('high','medium','low')),
		due_date        TEXT,
		estimated_hours REAL NOT NULL DEFAULT 0,
		created_by      TEXT NOT NULL REFERENCES users(id),
		tags            TEXT NOT NULL DEFAULT '[]',
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status)`,

	`CREATE TABLE IF NOT EXISTS task_assignments (
		task_id     TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		user_id     TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		assigned_by TEXT NOT NULL REFERENCES users(id),
		assigned_at TEXT NOT NULL,
		PRIMARY KEY (task_id, user_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_assignments_user ON task_assignments(user_id)`,

	`CREATE TABLE IF NOT EXISTS events (
		id           TEXT PRIMARY KEY,
		project_id   TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		title        TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		date         TEXT NOT NULL,
		start_time   TEXT NOT NULL DEFAULT '09:00',
		duration_min INTEGER NOT NULL DEFAULT 30,
		type         TEXT NOT NULL DEFAULT 'other'
		             CHECK(type IN ('planning','review','retrospective','standup','demo','milestone','other')),
		created_by   TEXT NOT NULL REFERENCES users(id),
		created_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_events_project ON events(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_events_date ON events(date)`,

	`CREATE TABLE IF NOT EXISTS event_attendees (
		event_id TEXT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
		user_id  TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		PRIMARY KEY (event_id, user_id)
	)`,
}
