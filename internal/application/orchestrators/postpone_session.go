package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	casefileStore "lawcal/internal/adapters/storage/casefile"
	sessionStore "lawcal/internal/adapters/storage/session"
	"lawcal/internal/domain/activity"
	"lawcal/internal/domain/session"
)

// PostponeSessionInput carries input for the postpone orchestrator.
type PostponeSessionInput struct {
	SessionID string
	ToDate    string // YYYY-MM-DD
	Reason    string
	Actor     string // account ID
}

// PostponeSessionDeps holds dependencies for ExecutePostponeSession.
type PostponeSessionDeps struct {
	SessionStore sessionStore.Store
	CaseStore    casefileStore.Store
	GenerateID   func() string
	Now          func() time.Time
}

// ExecutePostponeSession reschedules a session: the current row becomes
// postponed with its target date recorded, and a replacement scheduled
// session is upserted at the target date for the same case. Both writes
// and the session_postponed entry are one store transaction, and the
// upsert is conflict-ignored on (case_id, session_date) so repeating the
// postpone to the same date is idempotent.
// PRE: session exists and is scheduled; to date is after the session date
// POST: original postponed + replacement scheduled committed together
func ExecutePostponeSession(ctx context.Context, input PostponeSessionInput, deps PostponeSessionDeps) (session.Session, error) {
	to, err := session.ParseDate(input.ToDate)
	if err != nil {
		return session.Session{}, fmt.Errorf("invalid postpone date: %w", err)
	}

	s, err := deps.SessionStore.GetByID(ctx, input.SessionID)
	if err != nil {
		return session.Session{}, err
	}

	// The owning case must still be visible and active.
	c, err := deps.CaseStore.GetByID(ctx, s.CaseID)
	if err != nil {
		return session.Session{}, err
	}

	fromDate := s.DateString()
	if err := s.Postpone(to, input.Reason); err != nil {
		return session.Session{}, err
	}

	now := deps.Now()
	replacement := session.Session{
		ID:        deps.GenerateID(),
		CaseID:    s.CaseID,
		Date:      to,
		Status:    session.StatusScheduled,
		CreatedAt: now,
	}

	entry := activity.NewEntry(deps.GenerateID(), s.CaseID, activity.ActionSessionPostponed,
		fmt.Sprintf("Session for %q postponed from %s to %s", c.Title, fromDate, replacement.DateString()), now).
		WithSession(s.ID).
		WithActor(input.Actor).
		WithDates(fromDate, replacement.DateString())

	if err := deps.SessionStore.Postpone(ctx, s, replacement, entry); err != nil {
		return session.Session{}, fmt.Errorf("failed to postpone session: %w", err)
	}

	slog.Info("session_event", "event", "session_postponed",
		"session_id", s.ID, "case_id", s.CaseID, "from", fromDate, "to", replacement.DateString())
	return s, nil
}
