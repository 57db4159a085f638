package account

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"lawcal/internal/adapters/storage"
	domain "lawcal/internal/domain/account"
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

// Save inserts or updates an account.
// PRE: a is valid (Validate() returns nil)
// POST: account is persisted
func (s *SQLiteStore) Save(ctx context.Context, a domain.Account) error {
	var lockedUntil any
	if !a.LockedUntil.IsZero() {
		lockedUntil = a.LockedUntil.Format(time.RFC3339)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO account (id, email, password_hash, role, created_at, failed_logins, locked_until)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   email=excluded.email, password_hash=excluded.password_hash,
		   failed_logins=excluded.failed_logins, locked_until=excluded.locked_until`,
		a.ID, a.Email, a.PasswordHash, a.Role, a.CreatedAt, a.FailedLogins, lockedUntil,
	)
	return err
}

// GetAdmin returns the seeded admin account.
// PRE: none
// POST: returns the admin account or ErrNotFound
func (s *SQLiteStore) GetAdmin(ctx context.Context) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, role, created_at, failed_logins, locked_until
		 FROM account WHERE role = ? ORDER BY created_at ASC LIMIT 1`, domain.RoleAdmin)
	return scanAccount(row)
}

// GetByEmail returns the account with the given email.
// PRE: email is non-empty
// POST: returns the account or ErrNotFound
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, role, created_at, failed_logins, locked_until
		 FROM account WHERE email = ?`, email)
	return scanAccount(row)
}

func scanAccount(row *sql.Row) (domain.Account, error) {
	var a domain.Account
	var lockedUntil sql.NullString
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Role, &a.CreatedAt, &a.FailedLogins, &lockedUntil)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Account{}, ErrNotFound
	}
	if err != nil {
		return domain.Account{}, err
	}
	if lockedUntil.Valid && lockedUntil.String != "" {
		if t, perr := time.Parse(time.RFC3339, lockedUntil.String); perr == nil {
			a.LockedUntil = t
		}
	}
	return a, nil
}
