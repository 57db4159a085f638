package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	accountStore "lawcal/internal/adapters/storage/account"
)

// LoginInput carries input for the login orchestrator. The office uses a
// single admin credential, so the form submits only a password.
type LoginInput struct {
	Password string
}

// LoginResult carries the result of a successful login.
type LoginResult struct {
	AccountID string
	Email     string
	Role      string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	AccountStore accountStore.Store
}

var (
	ErrInvalidCredentials = errors.New("incorrect password")
	ErrAccountLocked      = errors.New("login is locked after too many failed attempts")
)

// ExecuteLogin verifies the admin password and returns account info for
// session creation. Failed attempts are counted and lock the credential;
// a success resets the counter.
// PRE: the admin account has been seeded
// POST: returns account info on success, records failed login on failure
// INVARIANT: the account must not be locked
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	if input.Password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	acct, err := deps.AccountStore.GetAdmin(ctx)
	if err != nil {
		slog.Error("auth_event", "event", "login_failed", "reason", "no_admin_account", "error", err)
		return LoginResult{}, ErrInvalidCredentials
	}

	if acct.IsLocked() {
		slog.Info("auth_event", "event", "login_blocked", "reason", "locked")
		return LoginResult{}, ErrAccountLocked
	}

	if err := acct.CheckPassword(input.Password); err != nil {
		acct.RecordFailedLogin()
		_ = deps.AccountStore.Save(ctx, acct)
		slog.Info("auth_event", "event", "login_failed", "reason", "wrong_password", "failed_logins", acct.FailedLogins)
		return LoginResult{}, ErrInvalidCredentials
	}

	acct.ResetFailedLogins()
	_ = deps.AccountStore.Save(ctx, acct)

	slog.Info("auth_event", "event", "login_success", "role", acct.Role)

	return LoginResult{
		AccountID: acct.ID,
		Email:     acct.Email,
		Role:      acct.Role,
	}, nil
}
