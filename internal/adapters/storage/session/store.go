package session

import (
	"context"
	"errors"

	"lawcal/internal/domain/activity"
	domain "lawcal/internal/domain/session"
)

// ErrNotFound is returned when a session does not exist.
var ErrNotFound = errors.New("session not found")

// Store persists Session state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Session, error)
	ListByCase(ctx context.Context, caseID string) ([]domain.Session, error)
	// ListCalendarRange returns calendar rows whose session_date falls in
	// [from, to] (YYYY-MM-DD, inclusive), ordered by date then creation
	// time. Sessions of soft-deleted cases are excluded.
	ListCalendarRange(ctx context.Context, from, to string) ([]domain.CalendarRow, error)
	// Update writes a session's status fields together with an activity
	// entry in one transaction.
	Update(ctx context.Context, s domain.Session, entry activity.Entry) error
	// Postpone marks old postponed and upserts the replacement scheduled
	// session in one transaction. The replacement insert is conflict-
	// ignored on (case_id, session_date), so repeating a postpone to the
	// same date never duplicates the target session.
	Postpone(ctx context.Context, old domain.Session, replacement domain.Session, entry activity.Entry) error
}
