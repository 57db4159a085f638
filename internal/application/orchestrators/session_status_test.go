package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	sessionStore "lawcal/internal/adapters/storage/session"
	"lawcal/internal/domain/activity"
	"lawcal/internal/domain/session"
)

func sessionFixture() *mockSessionStore {
	store := newMockSessionStore()
	store.sessions["sess-1"] = session.Session{
		ID:        "sess-1",
		CaseID:    "case-1",
		Date:      time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Status:    session.StatusScheduled,
		CreatedAt: fixedTime,
	}
	return store
}

func sessionDeps(store *mockSessionStore) SessionStatusDeps {
	return SessionStatusDeps{SessionStore: store, GenerateID: seqIDs(), Now: fixedNow}
}

// TestExecuteCompleteSession tests marking a session held.
func TestExecuteCompleteSession(t *testing.T) {
	store := sessionFixture()

	s, err := ExecuteCompleteSession(context.Background(), "sess-1", "admin-001", sessionDeps(store))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Status != session.StatusCompleted {
		t.Errorf("status = %s, want completed", s.Status)
	}
	if store.sessions["sess-1"].Status != session.StatusCompleted {
		t.Error("transition not persisted")
	}
	if len(store.entries) != 1 || store.entries[0].ActionType != activity.ActionSessionCompleted {
		t.Errorf("entries = %+v", store.entries)
	}
	if store.entries[0].SessionID != "sess-1" {
		t.Errorf("SessionID = %s", store.entries[0].SessionID)
	}

	// Completing again fails
	if _, err := ExecuteCompleteSession(context.Background(), "sess-1", "admin-001", sessionDeps(store)); !errors.Is(err, session.ErrNotScheduled) {
		t.Errorf("expected ErrNotScheduled, got %v", err)
	}
}

// TestExecuteCancelSession tests cancelling a scheduled session.
func TestExecuteCancelSession(t *testing.T) {
	store := sessionFixture()

	s, err := ExecuteCancelSession(context.Background(), "sess-1", "admin-001", sessionDeps(store))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Status != session.StatusCancelled {
		t.Errorf("status = %s, want cancelled", s.Status)
	}
	if store.entries[0].ActionType != activity.ActionSessionCancelled {
		t.Errorf("ActionType = %s", store.entries[0].ActionType)
	}
}

// TestSessionTransitions_MissingSession covers the not-found path.
func TestSessionTransitions_MissingSession(t *testing.T) {
	store := sessionFixture()
	ctx := context.Background()

	if _, err := ExecuteCompleteSession(ctx, "nope", "admin-001", sessionDeps(store)); !errors.Is(err, sessionStore.ErrNotFound) {
		t.Errorf("complete: expected ErrNotFound, got %v", err)
	}
	if _, err := ExecuteCancelSession(ctx, "nope", "admin-001", sessionDeps(store)); !errors.Is(err, sessionStore.ErrNotFound) {
		t.Errorf("cancel: expected ErrNotFound, got %v", err)
	}
}
