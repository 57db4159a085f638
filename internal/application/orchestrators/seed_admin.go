package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	accountStore "lawcal/internal/adapters/storage/account"
	"lawcal/internal/domain/account"

	"github.com/google/uuid"
)

// SeedAdminDeps holds dependencies for ExecuteSeedAdmin.
type SeedAdminDeps struct {
	AccountStore accountStore.Store
}

// ExecuteSeedAdmin creates the office admin account on first start. The
// seed is idempotent: an existing admin is left untouched, including a
// password changed since the seed.
// PRE: email and password come from configuration
// POST: exactly one admin account exists
func ExecuteSeedAdmin(ctx context.Context, deps SeedAdminDeps, email, password string) error {
	_, err := deps.AccountStore.GetAdmin(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, accountStore.ErrNotFound) {
		return fmt.Errorf("failed to check for admin account: %w", err)
	}

	acct := account.Account{
		ID:        uuid.New().String(),
		Email:     email,
		Role:      account.RoleAdmin,
		CreatedAt: time.Now(),
	}
	if err := acct.SetPassword(password); err != nil {
		return fmt.Errorf("invalid admin password: %w", err)
	}
	if err := acct.Validate(); err != nil {
		return fmt.Errorf("invalid admin account: %w", err)
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	slog.Info("seed_event", "event", "admin_seeded", "email", email)
	return nil
}
