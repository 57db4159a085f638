package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	sessionStore "lawcal/internal/adapters/storage/session"
	"lawcal/internal/domain/activity"
	"lawcal/internal/domain/session"
)

// SessionStatusDeps holds dependencies for the session lifecycle
// orchestrators.
type SessionStatusDeps struct {
	SessionStore sessionStore.Store
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteCompleteSession marks a scheduled session as held.
// PRE: session exists and is scheduled
// POST: status and session_completed entry committed together
func ExecuteCompleteSession(ctx context.Context, sessionID, actor string, deps SessionStatusDeps) (session.Session, error) {
	return transitionSession(ctx, sessionID, actor, deps, activity.ActionSessionCompleted, "completed",
		func(s *session.Session) error { return s.Complete() })
}

// ExecuteCancelSession marks a scheduled session cancelled.
// PRE: session exists and is scheduled
// POST: status and session_cancelled entry committed together
func ExecuteCancelSession(ctx context.Context, sessionID, actor string, deps SessionStatusDeps) (session.Session, error) {
	return transitionSession(ctx, sessionID, actor, deps, activity.ActionSessionCancelled, "cancelled",
		func(s *session.Session) error { return s.Cancel() })
}

func transitionSession(ctx context.Context, sessionID, actor string, deps SessionStatusDeps,
	action activity.ActionType, verb string, apply func(*session.Session) error) (session.Session, error) {

	s, err := deps.SessionStore.GetByID(ctx, sessionID)
	if err != nil {
		return session.Session{}, err
	}
	if err := apply(&s); err != nil {
		return session.Session{}, err
	}

	entry := activity.NewEntry(deps.GenerateID(), s.CaseID, action,
		fmt.Sprintf("Session on %s %s", s.DateString(), verb), deps.Now()).
		WithSession(s.ID).WithActor(actor)

	if err := deps.SessionStore.Update(ctx, s, entry); err != nil {
		return session.Session{}, fmt.Errorf("failed to update session status: %w", err)
	}

	slog.Info("session_event", "event", "session_"+verb, "session_id", s.ID, "case_id", s.CaseID)
	return s, nil
}
