package session_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"lawcal/internal/domain/session"
)

func day(s string) time.Time {
	t, err := session.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func scheduledSession() session.Session {
	return session.Session{
		ID:     "s1",
		CaseID: "c1",
		Date:   day("2026-03-10"),
		Status: session.StatusScheduled,
	}
}

// TestSession_Validate tests validation of Session.
func TestSession_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*session.Session)
		wantErr bool
		want    error
	}{
		{
			name:   "valid scheduled session",
			mutate: func(s *session.Session) {},
		},
		{
			name:    "missing case",
			mutate:  func(s *session.Session) { s.CaseID = "" },
			wantErr: true,
			want:    session.ErrEmptyCaseID,
		},
		{
			name:    "missing date",
			mutate:  func(s *session.Session) { s.Date = time.Time{} },
			wantErr: true,
			want:    session.ErrEmptyDate,
		},
		{
			name:    "bad status",
			mutate:  func(s *session.Session) { s.Status = "pending" },
			wantErr: true,
			want:    session.ErrInvalidStatus,
		},
		{
			name:    "postponed without target",
			mutate:  func(s *session.Session) { s.Status = session.StatusPostponed },
			wantErr: true,
			want:    session.ErrPostponeNotSet,
		},
		{
			name: "postponed with target",
			mutate: func(s *session.Session) {
				s.Status = session.StatusPostponed
				s.PostponedTo = day("2026-03-17")
			},
		},
		{
			name:    "reason too long",
			mutate:  func(s *session.Session) { s.PostponeReason = strings.Repeat("x", 501) },
			wantErr: true,
			want:    session.ErrReasonTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := scheduledSession()
			tt.mutate(&s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

// TestSession_Postpone tests the postpone transition.
func TestSession_Postpone(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		s := scheduledSession()
		if err := s.Postpone(day("2026-03-17"), "judge unavailable"); err != nil {
			t.Fatalf("Postpone() error = %v", err)
		}
		if s.Status != session.StatusPostponed {
			t.Errorf("Status = %q, want %q", s.Status, session.StatusPostponed)
		}
		if got := s.PostponedTo.Format(session.DateLayout); got != "2026-03-17" {
			t.Errorf("PostponedTo = %s, want 2026-03-17", got)
		}
		if s.PostponeReason != "judge unavailable" {
			t.Errorf("PostponeReason = %q", s.PostponeReason)
		}
	})

	t.Run("same day rejected", func(t *testing.T) {
		s := scheduledSession()
		if err := s.Postpone(s.Date, ""); !errors.Is(err, session.ErrPostponeInPast) {
			t.Errorf("Postpone() to same day error = %v, want ErrPostponeInPast", err)
		}
	})

	t.Run("earlier day rejected", func(t *testing.T) {
		s := scheduledSession()
		if err := s.Postpone(day("2026-03-01"), ""); !errors.Is(err, session.ErrPostponeInPast) {
			t.Errorf("Postpone() to earlier day error = %v, want ErrPostponeInPast", err)
		}
	})

	t.Run("not scheduled rejected", func(t *testing.T) {
		s := scheduledSession()
		s.Status = session.StatusCompleted
		if err := s.Postpone(day("2026-03-17"), ""); !errors.Is(err, session.ErrNotScheduled) {
			t.Errorf("Postpone() on completed session error = %v, want ErrNotScheduled", err)
		}
	})

	t.Run("reason too long rejected", func(t *testing.T) {
		s := scheduledSession()
		if err := s.Postpone(day("2026-03-17"), strings.Repeat("x", 501)); !errors.Is(err, session.ErrReasonTooLong) {
			t.Errorf("Postpone() error = %v, want ErrReasonTooLong", err)
		}
	})
}

// TestSession_CompleteAndCancel tests terminal transitions from scheduled.
func TestSession_CompleteAndCancel(t *testing.T) {
	s := scheduledSession()
	if err := s.Complete(); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if s.Status != session.StatusCompleted {
		t.Errorf("Status = %q, want completed", s.Status)
	}
	if err := s.Cancel(); !errors.Is(err, session.ErrNotScheduled) {
		t.Errorf("Cancel() after Complete() error = %v, want ErrNotScheduled", err)
	}

	s = scheduledSession()
	if err := s.Cancel(); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if s.Status != session.StatusCancelled {
		t.Errorf("Status = %q, want cancelled", s.Status)
	}
	if err := s.Complete(); !errors.Is(err, session.ErrNotScheduled) {
		t.Errorf("Complete() after Cancel() error = %v, want ErrNotScheduled", err)
	}
}

// TestParseDate tests the calendar-day parser.
func TestParseDate(t *testing.T) {
	got, err := session.ParseDate("2026-02-28")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if got.Hour() != 0 || got.Location() != time.UTC {
		t.Errorf("ParseDate() = %v, want midnight UTC", got)
	}

	for _, bad := range []string{"", "28/02/2026", "2026-13-01", "2026-02-30"} {
		if _, err := session.ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) should fail", bad)
		}
	}
}

// TestSession_DateString verifies day equality is string equality.
func TestSession_DateString(t *testing.T) {
	s := scheduledSession()
	if got := s.DateString(); got != "2026-03-10" {
		t.Errorf("DateString() = %q, want 2026-03-10", got)
	}
}
