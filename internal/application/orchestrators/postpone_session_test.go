package orchestrators

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	casefileStore "lawcal/internal/adapters/storage/casefile"
	sessionStore "lawcal/internal/adapters/storage/session"
	"lawcal/internal/domain/activity"
	"lawcal/internal/domain/session"
)

func postponeFixture() (*mockCaseStore, *mockSessionStore) {
	cases := newMockCaseStore()
	seedCase(cases)
	sessions := newMockSessionStore()
	sessions.sessions["sess-1"] = session.Session{
		ID:        "sess-1",
		CaseID:    "case-1",
		Date:      time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Status:    session.StatusScheduled,
		CreatedAt: fixedTime,
	}
	return cases, sessions
}

func postponeDeps(cases *mockCaseStore, sessions *mockSessionStore) PostponeSessionDeps {
	return PostponeSessionDeps{
		SessionStore: sessions,
		CaseStore:    cases,
		GenerateID:   seqIDs(),
		Now:          fixedNow,
	}
}

// TestExecutePostponeSession_Valid tests the reschedule happy path.
func TestExecutePostponeSession_Valid(t *testing.T) {
	cases, sessions := postponeFixture()

	got, err := ExecutePostponeSession(context.Background(), PostponeSessionInput{
		SessionID: "sess-1",
		ToDate:    "2026-03-17",
		Reason:    "judge unavailable",
		Actor:     "admin-001",
	}, postponeDeps(cases, sessions))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Status != session.StatusPostponed {
		t.Errorf("status = %s, want postponed", got.Status)
	}
	if got.PostponedTo.Format(session.DateLayout) != "2026-03-17" {
		t.Errorf("PostponedTo = %v", got.PostponedTo)
	}
	if got.PostponeReason != "judge unavailable" {
		t.Errorf("PostponeReason = %q", got.PostponeReason)
	}

	// A replacement scheduled session exists at the target date
	var replacement *session.Session
	for _, s := range sessions.sessions {
		if s.ID != "sess-1" && s.CaseID == "case-1" {
			r := s
			replacement = &r
		}
	}
	if replacement == nil {
		t.Fatal("expected a replacement session")
	}
	if replacement.DateString() != "2026-03-17" || replacement.Status != session.StatusScheduled {
		t.Errorf("replacement = %+v", replacement)
	}

	if len(sessions.entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(sessions.entries))
	}
	entry := sessions.entries[0]
	if entry.ActionType != activity.ActionSessionPostponed {
		t.Errorf("ActionType = %s", entry.ActionType)
	}
	if entry.SessionID != "sess-1" {
		t.Errorf("SessionID = %s", entry.SessionID)
	}
	var dates map[string]string
	if err := json.Unmarshal([]byte(entry.Details), &dates); err != nil {
		t.Fatalf("details not JSON: %v", err)
	}
	if dates["from_date"] != "2026-03-10" || dates["to_date"] != "2026-03-17" {
		t.Errorf("details = %v", dates)
	}
}

// TestExecutePostponeSession_BadDates tests date validation.
func TestExecutePostponeSession_BadDates(t *testing.T) {
	tests := []struct {
		name   string
		toDate string
		want   error
	}{
		{"malformed", "17/03/2026", nil},
		{"empty", "", nil},
		{"same day", "2026-03-10", session.ErrPostponeInPast},
		{"earlier day", "2026-03-03", session.ErrPostponeInPast},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cases, sessions := postponeFixture()
			_, err := ExecutePostponeSession(context.Background(), PostponeSessionInput{
				SessionID: "sess-1",
				ToDate:    tt.toDate,
			}, postponeDeps(cases, sessions))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
			if len(sessions.sessions) != 1 {
				t.Error("nothing should be written")
			}
		})
	}
}

// TestExecutePostponeSession_NotScheduled tests that only scheduled
// sessions can move.
func TestExecutePostponeSession_NotScheduled(t *testing.T) {
	cases, sessions := postponeFixture()
	s := sessions.sessions["sess-1"]
	s.Status = session.StatusCompleted
	sessions.sessions["sess-1"] = s

	_, err := ExecutePostponeSession(context.Background(), PostponeSessionInput{
		SessionID: "sess-1",
		ToDate:    "2026-03-17",
	}, postponeDeps(cases, sessions))
	if !errors.Is(err, session.ErrNotScheduled) {
		t.Errorf("expected ErrNotScheduled, got %v", err)
	}
}

// TestExecutePostponeSession_MissingSession covers the not-found path.
func TestExecutePostponeSession_MissingSession(t *testing.T) {
	cases, sessions := postponeFixture()
	_, err := ExecutePostponeSession(context.Background(), PostponeSessionInput{
		SessionID: "nope",
		ToDate:    "2026-03-17",
	}, postponeDeps(cases, sessions))
	if !errors.Is(err, sessionStore.ErrNotFound) {
		t.Errorf("expected session ErrNotFound, got %v", err)
	}
}

// TestExecutePostponeSession_DeletedCase tests that sessions of deleted
// cases cannot be touched.
func TestExecutePostponeSession_DeletedCase(t *testing.T) {
	cases, sessions := postponeFixture()
	c := cases.cases["case-1"]
	c.DeletedAt = fixedTime
	cases.cases["case-1"] = c

	_, err := ExecutePostponeSession(context.Background(), PostponeSessionInput{
		SessionID: "sess-1",
		ToDate:    "2026-03-17",
	}, postponeDeps(cases, sessions))
	if !errors.Is(err, casefileStore.ErrNotFound) {
		t.Errorf("expected case ErrNotFound, got %v", err)
	}
}
