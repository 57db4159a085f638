package account

import (
	"context"
	"errors"

	domain "lawcal/internal/domain/account"
)

// ErrNotFound is returned when no matching account exists.
var ErrNotFound = errors.New("account not found")

// Store persists Account state.
type Store interface {
	// Save inserts or updates an account.
	Save(ctx context.Context, a domain.Account) error
	// GetAdmin returns the seeded admin account.
	GetAdmin(ctx context.Context) (domain.Account, error)
	// GetByEmail returns the account with the given email.
	GetByEmail(ctx context.Context, email string) (domain.Account, error)
}
