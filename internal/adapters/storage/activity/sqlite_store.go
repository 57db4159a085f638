package activity

import (
	"context"
	"database/sql"

	"lawcal/internal/adapters/storage"
	domain "lawcal/internal/domain/activity"
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

const insertSQL = `INSERT INTO activity_logs (id, case_id, session_id, action_type, description, details, created_at, created_by)
	 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

// Append inserts an activity entry. Entries are never updated or deleted.
// PRE: e has a non-empty ID and CaseID
// POST: entry is persisted
func (s *SQLiteStore) Append(ctx context.Context, e domain.Entry) error {
	_, err := s.db.ExecContext(ctx, insertSQL, insertArgs(e)...)
	return err
}

// AppendTx inserts an activity entry inside an existing transaction. Other
// stores use it to make a lifecycle transition and its audit trail commit
// together.
// PRE: tx is an open transaction
// POST: entry is staged in tx
func AppendTx(ctx context.Context, tx *sql.Tx, e domain.Entry) error {
	_, err := tx.ExecContext(ctx, insertSQL, insertArgs(e)...)
	return err
}

func insertArgs(e domain.Entry) []any {
	var sessionID any
	if e.SessionID != "" {
		sessionID = e.SessionID
	}
	var createdBy any
	if e.CreatedBy != "" {
		createdBy = e.CreatedBy
	}
	return []any{e.ID, e.CaseID, sessionID, string(e.ActionType), e.Description, e.Details, e.CreatedAt, createdBy}
}

// ListByCase returns a case's entries in chronological order.
// PRE: caseID is non-empty
// POST: entries sorted by created_at ascending
func (s *SQLiteStore) ListByCase(ctx context.Context, caseID string) ([]domain.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, case_id, session_id, action_type, description, details, created_at, created_by
		 FROM activity_logs
		 WHERE case_id = ?
		 ORDER BY created_at ASC, id ASC`, caseID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		var e domain.Entry
		var sessionID, createdBy sql.NullString
		var action string
		if err := rows.Scan(&e.ID, &e.CaseID, &sessionID, &action, &e.Description, &e.Details, &e.CreatedAt, &createdBy); err != nil {
			return nil, err
		}
		e.ActionType = domain.ActionType(action)
		e.SessionID = sessionID.String
		e.CreatedBy = createdBy.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
