package casefile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"lawcal/internal/adapters/storage"
	activityStore "lawcal/internal/adapters/storage/activity"
	"lawcal/internal/domain/activity"
	domain "lawcal/internal/domain/casefile"
	sessionDomain "lawcal/internal/domain/session"
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

// CreateWithSession inserts the case, its first scheduled session and the
// opening activity entries in one transaction. A partial create can never
// be observed.
// PRE: c and s are valid; s.CaseID == c.ID
// POST: all rows committed, or none on error
func (st *SQLiteStore) CreateWithSession(ctx context.Context, c domain.Case, s sessionDomain.Session, entries []activity.Entry) error {
	tx, err := st.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO cases (id, title, court_name, lawyers, reviewer, description, long_description, status, created_at, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Title, c.CourtName, EncodeLawyers(c.Lawyers), c.Reviewer,
		c.Description, c.LongDescription, c.Status, c.CreatedAt, nullable(c.CreatedBy),
	); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO case_sessions (id, case_id, session_date, status, postpone_reason, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.CaseID, s.DateString(), s.Status, s.PostponeReason, s.Notes, s.CreatedAt,
	); err != nil {
		return err
	}

	for _, e := range entries {
		if err := activityStore.AppendTx(ctx, tx, e); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetByID retrieves a case by ID. Soft-deleted cases are not visible.
// PRE: id is non-empty
// POST: returns the case or ErrNotFound
func (st *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Case, error) {
	var c domain.Case
	var lawyers string
	var createdBy sql.NullString
	err := st.db.QueryRowContext(ctx,
		`SELECT id, title, court_name, lawyers, reviewer, description, long_description, status, created_at, created_by
		 FROM cases WHERE id = ? AND deleted_at IS NULL`, id,
	).Scan(&c.ID, &c.Title, &c.CourtName, &lawyers, &c.Reviewer,
		&c.Description, &c.LongDescription, &c.Status, &c.CreatedAt, &createdBy)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Case{}, ErrNotFound
	}
	if err != nil {
		return domain.Case{}, err
	}
	c.Lawyers = DecodeLawyers(lawyers)
	c.CreatedBy = createdBy.String
	return c, nil
}

// Update writes the mutable fields and status of a case together with an
// activity entry in one transaction.
// PRE: c is valid and not deleted
// POST: case row and entry committed, or neither
func (st *SQLiteStore) Update(ctx context.Context, c domain.Case, entry activity.Entry) error {
	tx, err := st.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE cases
		 SET title = ?, court_name = ?, lawyers = ?, reviewer = ?, description = ?, long_description = ?, status = ?
		 WHERE id = ? AND deleted_at IS NULL`,
		c.Title, c.CourtName, EncodeLawyers(c.Lawyers), c.Reviewer,
		c.Description, c.LongDescription, c.Status, c.ID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	if err := activityStore.AppendTx(ctx, tx, entry); err != nil {
		return err
	}

	return tx.Commit()
}

// SoftDelete stamps deleted_at and appends the activity entry in one
// transaction. The case disappears from all subsequent reads.
// PRE: id is non-empty; at is the deletion time
// POST: deleted_at set and entry committed, or neither
func (st *SQLiteStore) SoftDelete(ctx context.Context, id string, at time.Time, entry activity.Entry) error {
	tx, err := st.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE cases SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		at.Format(time.RFC3339), id,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	if err := activityStore.AppendTx(ctx, tx, entry); err != nil {
		return err
	}

	return tx.Commit()
}

// EncodeLawyers serializes the lawyer list as JSON for storage.
func EncodeLawyers(lawyers []string) string {
	if len(lawyers) == 0 {
		return "[]"
	}
	b, err := json.Marshal(lawyers)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// DecodeLawyers deserializes a stored lawyer list.
func DecodeLawyers(s string) []string {
	if s == "" || s == "[]" {
		return nil
	}
	var lawyers []string
	if err := json.Unmarshal([]byte(s), &lawyers); err != nil {
		return nil
	}
	return lawyers
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
