package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	"lawcal/internal/domain/account"
)

func seedAdmin(t *testing.T, store *mockAccountStore, password string) account.Account {
	t.Helper()
	a := account.Account{
		ID:        "admin-001",
		Email:     "office@example.com",
		Role:      account.RoleAdmin,
		CreatedAt: fixedTime,
	}
	if err := a.SetPassword(password); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	store.accounts[a.ID] = a
	return a
}

// TestExecuteLogin_Success tests the happy path.
func TestExecuteLogin_Success(t *testing.T) {
	store := newMockAccountStore()
	seedAdmin(t, store, "correct horse battery")

	result, err := ExecuteLogin(context.Background(), LoginInput{Password: "correct horse battery"}, LoginDeps{AccountStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.AccountID != "admin-001" {
		t.Errorf("AccountID = %s", result.AccountID)
	}
	if result.Email != "office@example.com" {
		t.Errorf("Email = %s", result.Email)
	}
	if result.Role != account.RoleAdmin {
		t.Errorf("Role = %s", result.Role)
	}
}

// TestExecuteLogin_WrongPassword tests that failures are counted.
func TestExecuteLogin_WrongPassword(t *testing.T) {
	store := newMockAccountStore()
	seedAdmin(t, store, "correct horse battery")

	_, err := ExecuteLogin(context.Background(), LoginInput{Password: "wrong"}, LoginDeps{AccountStore: store})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if store.accounts["admin-001"].FailedLogins != 1 {
		t.Errorf("FailedLogins = %d, want 1", store.accounts["admin-001"].FailedLogins)
	}
}

// TestExecuteLogin_EmptyPassword tests the short-circuit for a blank form.
func TestExecuteLogin_EmptyPassword(t *testing.T) {
	store := newMockAccountStore()
	seedAdmin(t, store, "correct horse battery")

	_, err := ExecuteLogin(context.Background(), LoginInput{}, LoginDeps{AccountStore: store})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	// A blank submit does not count as a failed attempt
	if store.accounts["admin-001"].FailedLogins != 0 {
		t.Errorf("FailedLogins = %d, want 0", store.accounts["admin-001"].FailedLogins)
	}
}

// TestExecuteLogin_LockoutAfterFailures tests the five-strike lockout.
func TestExecuteLogin_LockoutAfterFailures(t *testing.T) {
	store := newMockAccountStore()
	seedAdmin(t, store, "correct horse battery")
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := ExecuteLogin(ctx, LoginInput{Password: "wrong"}, LoginDeps{AccountStore: store})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i+1, err)
		}
	}

	// The correct password is rejected while locked
	_, err := ExecuteLogin(ctx, LoginInput{Password: "correct horse battery"}, LoginDeps{AccountStore: store})
	if !errors.Is(err, ErrAccountLocked) {
		t.Errorf("expected ErrAccountLocked, got %v", err)
	}
}

// TestExecuteLogin_SuccessResetsFailures tests counter reset on success.
func TestExecuteLogin_SuccessResetsFailures(t *testing.T) {
	store := newMockAccountStore()
	a := seedAdmin(t, store, "correct horse battery")
	a.FailedLogins = 4
	store.accounts[a.ID] = a

	_, err := ExecuteLogin(context.Background(), LoginInput{Password: "correct horse battery"}, LoginDeps{AccountStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.accounts[a.ID].FailedLogins != 0 {
		t.Errorf("FailedLogins = %d, want 0", store.accounts[a.ID].FailedLogins)
	}
}

// TestExecuteLogin_ExpiredLock tests that a lapsed lock admits the admin.
func TestExecuteLogin_ExpiredLock(t *testing.T) {
	store := newMockAccountStore()
	a := seedAdmin(t, store, "correct horse battery")
	a.FailedLogins = 5
	a.LockedUntil = time.Now().Add(-time.Minute)
	store.accounts[a.ID] = a

	result, err := ExecuteLogin(context.Background(), LoginInput{Password: "correct horse battery"}, LoginDeps{AccountStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.AccountID != a.ID {
		t.Errorf("AccountID = %s", result.AccountID)
	}
	if !store.accounts[a.ID].LockedUntil.IsZero() {
		t.Error("lock should be cleared after successful login")
	}
}

// TestExecuteLogin_NoAdmin tests the unseeded-database path.
func TestExecuteLogin_NoAdmin(t *testing.T) {
	store := newMockAccountStore()
	_, err := ExecuteLogin(context.Background(), LoginInput{Password: "anything"}, LoginDeps{AccountStore: store})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}
