package session

import (
	"errors"
	"time"
)

// Session status constants.
const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusPostponed = "postponed"
	StatusCancelled = "cancelled"
)

// DateLayout is the timezone-naive calendar-day format used for all
// session dates. Day equality is string equality on this format.
const DateLayout = "2006-01-02"

const MaxPostponeReasonLength = 500

// Domain errors
var (
	ErrEmptyCaseID    = errors.New("session must reference a case")
	ErrEmptyDate      = errors.New("session date is required")
	ErrInvalidStatus  = errors.New("session status must be one of: scheduled, completed, postponed, cancelled")
	ErrNotScheduled   = errors.New("session is not scheduled")
	ErrPostponeNotSet = errors.New("postpone target date is required")
	ErrPostponeInPast = errors.New("postpone target date must be after the session date")
	ErrReasonTooLong  = errors.New("postpone reason cannot exceed 500 characters")
)

// Session is one scheduled court date belonging to a case.
// INVARIANT: (CaseID, Date) is unique across all sessions of a case;
// enforced by the store.
// INVARIANT: PostponedTo is set iff Status is postponed.
type Session struct {
	ID             string
	CaseID         string
	Date           time.Time // calendar day, midnight UTC
	Status         string
	PostponedTo    time.Time // zero unless postponed
	PostponeReason string
	Notes          string
	CreatedAt      time.Time
}

// Validate checks the session's invariants.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (s *Session) Validate() error {
	if s.CaseID == "" {
		return ErrEmptyCaseID
	}
	if s.Date.IsZero() {
		return ErrEmptyDate
	}
	switch s.Status {
	case StatusScheduled, StatusCompleted, StatusPostponed, StatusCancelled:
	default:
		return ErrInvalidStatus
	}
	if s.Status == StatusPostponed && s.PostponedTo.IsZero() {
		return ErrPostponeNotSet
	}
	if len(s.PostponeReason) > MaxPostponeReasonLength {
		return ErrReasonTooLong
	}
	return nil
}

// DateString returns the session's calendar day as YYYY-MM-DD.
func (s *Session) DateString() string {
	return s.Date.Format(DateLayout)
}

// Postpone reschedules the session to a later calendar day. The caller is
// responsible for creating the replacement scheduled session at the target
// date; this only transitions the current row.
// PRE: session is scheduled; to is a later day than Date
// POST: Status is postponed, PostponedTo and PostponeReason are set
func (s *Session) Postpone(to time.Time, reason string) error {
	if s.Status != StatusScheduled {
		return ErrNotScheduled
	}
	if to.IsZero() {
		return ErrPostponeNotSet
	}
	if !to.After(s.Date) {
		return ErrPostponeInPast
	}
	if len(reason) > MaxPostponeReasonLength {
		return ErrReasonTooLong
	}
	s.Status = StatusPostponed
	s.PostponedTo = to
	s.PostponeReason = reason
	return nil
}

// Complete marks a scheduled session as held.
// PRE: session is scheduled
// POST: Status is completed
func (s *Session) Complete() error {
	if s.Status != StatusScheduled {
		return ErrNotScheduled
	}
	s.Status = StatusCompleted
	return nil
}

// Cancel marks a scheduled session as cancelled.
// PRE: session is scheduled
// POST: Status is cancelled
func (s *Session) Cancel() error {
	if s.Status != StatusScheduled {
		return ErrNotScheduled
	}
	s.Status = StatusCancelled
	return nil
}

// ParseDate parses a YYYY-MM-DD calendar day.
// PRE: s is non-empty
// POST: returns the day at midnight UTC, or an error for malformed input
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
