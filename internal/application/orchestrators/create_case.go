package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	casefileStore "lawcal/internal/adapters/storage/casefile"
	"lawcal/internal/domain/activity"
	"lawcal/internal/domain/casefile"
	"lawcal/internal/domain/session"
)

// CreateCaseInput carries input for the create-case orchestrator.
type CreateCaseInput struct {
	Title           string
	CourtName       string
	Lawyers         []string
	Reviewer        string
	Description     string
	LongDescription string
	SessionDate     string // YYYY-MM-DD
	CreatedBy       string // account ID
}

// CreateCaseDeps holds dependencies for ExecuteCreateCase.
type CreateCaseDeps struct {
	CaseStore  casefileStore.Store
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteCreateCase creates a case with its first scheduled session and
// the opening activity entries. The whole transition is one store
// transaction: a case without its session can never be observed.
// PRE: input has a title and a session date
// POST: case, session and entries committed together, or nothing on error
func ExecuteCreateCase(ctx context.Context, input CreateCaseInput, deps CreateCaseDeps) (casefile.Case, session.Session, error) {
	date, err := session.ParseDate(input.SessionDate)
	if err != nil {
		return casefile.Case{}, session.Session{}, fmt.Errorf("invalid session date: %w", err)
	}

	now := deps.Now()
	c := casefile.Case{
		ID:              deps.GenerateID(),
		Title:           strings.TrimSpace(input.Title),
		CourtName:       strings.TrimSpace(input.CourtName),
		Lawyers:         trimAll(input.Lawyers),
		Reviewer:        strings.TrimSpace(input.Reviewer),
		Description:     input.Description,
		LongDescription: input.LongDescription,
		Status:          casefile.StatusActive,
		CreatedAt:       now,
		CreatedBy:       input.CreatedBy,
	}
	if err := c.Validate(); err != nil {
		return casefile.Case{}, session.Session{}, err
	}

	s := session.Session{
		ID:        deps.GenerateID(),
		CaseID:    c.ID,
		Date:      date,
		Status:    session.StatusScheduled,
		CreatedAt: now,
	}
	if err := s.Validate(); err != nil {
		return casefile.Case{}, session.Session{}, err
	}

	entries := []activity.Entry{
		activity.NewEntry(deps.GenerateID(), c.ID, activity.ActionCaseCreated,
			fmt.Sprintf("Case %q created", c.Title), now).WithActor(input.CreatedBy),
		activity.NewEntry(deps.GenerateID(), c.ID, activity.ActionSessionScheduled,
			fmt.Sprintf("Session scheduled for %s", s.DateString()), now).
			WithSession(s.ID).WithActor(input.CreatedBy),
	}

	if err := deps.CaseStore.CreateWithSession(ctx, c, s, entries); err != nil {
		return casefile.Case{}, session.Session{}, fmt.Errorf("failed to create case: %w", err)
	}

	slog.Info("case_event", "event", "case_created", "case_id", c.ID, "session_date", s.DateString())
	return c, s, nil
}

func trimAll(values []string) []string {
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
