package session

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"lawcal/internal/adapters/storage"
	activityStore "lawcal/internal/adapters/storage/activity"
	casefileStore "lawcal/internal/adapters/storage/casefile"
	"lawcal/internal/domain/activity"
	domain "lawcal/internal/domain/session"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
// PRE: db is a valid, open database connection with the schema applied
// POST: store is ready for use
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const sessionColumns = `id, case_id, session_date, status, postponed_to, postpone_reason, notes, created_at`

// GetByID retrieves a session by ID.
// PRE: id is non-empty
// POST: returns the session or ErrNotFound
func (st *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Session, error) {
	row := st.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM case_sessions WHERE id = ?`, id)
	s, err := scanSession(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, ErrNotFound
	}
	return s, err
}

// ListByCase returns a case's sessions ordered by date.
// PRE: caseID is non-empty
// POST: sessions sorted by session_date ascending
func (st *SQLiteStore) ListByCase(ctx context.Context, caseID string) ([]domain.Session, error) {
	rows, err := st.db.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM case_sessions WHERE case_id = ? ORDER BY session_date ASC, created_at ASC`, caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.Session
	for rows.Next() {
		s, err := scanSession(rows.Scan)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// ListCalendarRange returns calendar rows in [from, to] through the
// v_calendar_sessions view, which already hides soft-deleted cases.
// PRE: from and to are YYYY-MM-DD date strings, from <= to
// POST: rows sorted by session_date then session creation time
func (st *SQLiteStore) ListCalendarRange(ctx context.Context, from, to string) ([]domain.CalendarRow, error) {
	rows, err := st.db.QueryContext(ctx,
		`SELECT session_id, case_id, session_date, session_status, postponed_to, postpone_reason, notes, session_created_at,
		        title, court_name, lawyers, reviewer, case_status
		 FROM v_calendar_sessions
		 WHERE session_date >= ? AND session_date <= ?
		 ORDER BY session_date ASC, session_created_at ASC`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CalendarRow
	for rows.Next() {
		var r domain.CalendarRow
		var dateStr string
		var postponedTo sql.NullString
		var lawyers string
		if err := rows.Scan(&r.ID, &r.CaseID, &dateStr, &r.Status, &postponedTo, &r.PostponeReason, &r.Notes, &r.CreatedAt,
			&r.CaseTitle, &r.CourtName, &lawyers, &r.Reviewer, &r.CaseStatus); err != nil {
			return nil, err
		}
		r.Date = parseDay(dateStr)
		r.PostponedTo = parseDay(postponedTo.String)
		r.Lawyers = casefileStore.DecodeLawyers(lawyers)
		result = append(result, r)
	}
	return result, rows.Err()
}

// Update writes a session's status fields together with an activity entry
// in one transaction.
// PRE: s is valid
// POST: session row and entry committed, or neither
func (st *SQLiteStore) Update(ctx context.Context, s domain.Session, entry activity.Entry) error {
	tx, err := st.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := updateTx(ctx, tx, s); err != nil {
		return err
	}
	if err := activityStore.AppendTx(ctx, tx, entry); err != nil {
		return err
	}
	return tx.Commit()
}

// Postpone marks old as postponed and upserts the replacement scheduled
// session at the target date, all in one transaction. The replacement
// insert is conflict-ignored on (case_id, session_date): repeating the
// postpone to the same date must not create a duplicate.
// PRE: old.Status is postponed with PostponedTo set; replacement is a
// valid scheduled session at old.PostponedTo for the same case
// POST: both session rows and the entry committed, or none
func (st *SQLiteStore) Postpone(ctx context.Context, old domain.Session, replacement domain.Session, entry activity.Entry) error {
	tx, err := st.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := updateTx(ctx, tx, old); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO case_sessions (id, case_id, session_date, status, postpone_reason, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(case_id, session_date) DO NOTHING`,
		replacement.ID, replacement.CaseID, replacement.DateString(), replacement.Status,
		replacement.PostponeReason, replacement.Notes, replacement.CreatedAt,
	); err != nil {
		return err
	}

	if err := activityStore.AppendTx(ctx, tx, entry); err != nil {
		return err
	}
	return tx.Commit()
}

func updateTx(ctx context.Context, tx *sql.Tx, s domain.Session) error {
	var postponedTo any
	if !s.PostponedTo.IsZero() {
		postponedTo = s.PostponedTo.Format(domain.DateLayout)
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE case_sessions SET status = ?, postponed_to = ?, postpone_reason = ?, notes = ? WHERE id = ?`,
		s.Status, postponedTo, s.PostponeReason, s.Notes, s.ID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanSession(scan func(dest ...any) error) (domain.Session, error) {
	var s domain.Session
	var dateStr string
	var postponedTo sql.NullString
	if err := scan(&s.ID, &s.CaseID, &dateStr, &s.Status, &postponedTo, &s.PostponeReason, &s.Notes, &s.CreatedAt); err != nil {
		return domain.Session{}, err
	}
	s.Date = parseDay(dateStr)
	s.PostponedTo = parseDay(postponedTo.String)
	return s, nil
}

func parseDay(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, _ := time.Parse(domain.DateLayout, s)
	return t
}
