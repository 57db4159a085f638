package storage

import (
	"database/sql"
	"fmt"
)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables, indexes and views are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Table and column names follow the office's existing data model:
	// cases own case_sessions, both are referenced by append-only
	// activity_logs, and the calendar reads a joined view.
	schema := `
	CREATE TABLE IF NOT EXISTS account (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL,
		created_at TEXT NOT NULL,
		failed_logins INTEGER NOT NULL DEFAULT 0,
		locked_until TEXT
	);

	CREATE TABLE IF NOT EXISTS cases (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		court_name TEXT NOT NULL DEFAULT '',
		lawyers TEXT NOT NULL DEFAULT '[]',
		reviewer TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		long_description TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'active',
		created_at TEXT NOT NULL,
		created_by TEXT,
		deleted_at TEXT
	);

	CREATE TABLE IF NOT EXISTS case_sessions (
		id TEXT PRIMARY KEY,
		case_id TEXT NOT NULL,
		session_date TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'scheduled',
		postponed_to TEXT,
		postpone_reason TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		FOREIGN KEY (case_id) REFERENCES cases(id),
		UNIQUE (case_id, session_date)
	);

	CREATE INDEX IF NOT EXISTS idx_case_sessions_date ON case_sessions(session_date);

	CREATE TABLE IF NOT EXISTS activity_logs (
		id TEXT PRIMARY KEY,
		case_id TEXT NOT NULL,
		session_id TEXT,
		action_type TEXT NOT NULL,
		description TEXT NOT NULL,
		details TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		created_by TEXT,
		FOREIGN KEY (case_id) REFERENCES cases(id)
	);

	CREATE INDEX IF NOT EXISTS idx_activity_logs_case ON activity_logs(case_id, created_at);

	CREATE TABLE IF NOT EXISTS suggest_mru (
		field TEXT PRIMARY KEY,
		list TEXT NOT NULL DEFAULT '[]',
		updated_at TEXT NOT NULL
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Calendar rows are read through a view that joins sessions to their
	// case and hides soft-deleted cases.
	view := `
	CREATE VIEW IF NOT EXISTS v_calendar_sessions AS
	SELECT
		s.id AS session_id,
		s.case_id,
		s.session_date,
		s.status AS session_status,
		s.postponed_to,
		s.postpone_reason,
		s.notes,
		s.created_at AS session_created_at,
		c.title,
		c.court_name,
		c.lawyers,
		c.reviewer,
		c.status AS case_status
	FROM case_sessions s
	JOIN cases c ON c.id = s.case_id
	WHERE c.deleted_at IS NULL;
	`

	if _, err := db.Exec(view); err != nil {
		return fmt.Errorf("failed to create calendar view: %w", err)
	}

	return nil
}
