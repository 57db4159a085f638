package suggest

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lawcal/internal/adapters/storage"
	casefileStore "lawcal/internal/adapters/storage/casefile"
	domain "lawcal/internal/domain/suggest"
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

// FieldValues returns the field's values from the most recent HistoryLimit
// non-deleted cases. The field name is validated against the known set
// before being interpolated into the query.
// PRE: field is one of the suggest.Field* constants
// POST: values newest-case-first; lawyers lists flattened in order
func (s *SQLiteStore) FieldValues(ctx context.Context, field string) ([]string, error) {
	if !domain.ValidField(field) {
		return nil, fmt.Errorf("unknown suggest field %q", field)
	}
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT %s FROM cases WHERE deleted_at IS NULL ORDER BY created_at DESC LIMIT %d`,
			field, HistoryLimit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		if field == domain.FieldLawyers {
			values = append(values, casefileStore.DecodeLawyers(v)...)
			continue
		}
		if v != "" {
			values = append(values, v)
		}
	}
	return values, rows.Err()
}

// GetMRU returns the stored MRU list for a field, most recent first.
// PRE: field is non-empty
// POST: returns nil when no list has been saved yet
func (s *SQLiteStore) GetMRU(ctx context.Context, field string) ([]string, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT list FROM suggest_mru WHERE field = ?`, field).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, nil
	}
	return list, nil
}

// SaveMRU replaces the MRU list for a field.
// PRE: list is MRU-first and already capped by the domain
// POST: list is persisted
func (s *SQLiteStore) SaveMRU(ctx context.Context, field string, list []string, at time.Time) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO suggest_mru (field, list, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(field) DO UPDATE SET list=excluded.list, updated_at=excluded.updated_at`,
		field, string(b), at.Format(time.RFC3339),
	)
	return err
}
