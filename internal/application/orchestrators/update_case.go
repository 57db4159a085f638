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
)

// UpdateCaseInput carries the editable fields. Nil pointers mean "leave
// unchanged" so a partial patch does not clobber other fields.
type UpdateCaseInput struct {
	CaseID          string
	Title           *string
	CourtName       *string
	Lawyers         *[]string
	Reviewer        *string
	Description     *string
	LongDescription *string
	UpdatedBy       string // account ID
}

// UpdateCaseDeps holds dependencies for ExecuteUpdateCase.
type UpdateCaseDeps struct {
	CaseStore  casefileStore.Store
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteUpdateCase applies a partial edit to a case and records a
// case_updated entry carrying the field → {old,new} change map. The row
// update and the entry commit together.
// PRE: the case exists and is not deleted
// POST: returns the updated case; no-op edits write nothing
func ExecuteUpdateCase(ctx context.Context, input UpdateCaseInput, deps UpdateCaseDeps) (casefile.Case, error) {
	c, err := deps.CaseStore.GetByID(ctx, input.CaseID)
	if err != nil {
		return casefile.Case{}, err
	}

	changes := make(map[string]activity.FieldChange)
	applyString := func(field string, target *string, v *string) {
		if v == nil {
			return
		}
		next := strings.TrimSpace(*v)
		if next == *target {
			return
		}
		changes[field] = activity.FieldChange{Old: *target, New: next}
		*target = next
	}

	applyString("title", &c.Title, input.Title)
	applyString("court_name", &c.CourtName, input.CourtName)
	applyString("reviewer", &c.Reviewer, input.Reviewer)
	applyString("description", &c.Description, input.Description)
	applyString("long_description", &c.LongDescription, input.LongDescription)

	if input.Lawyers != nil {
		next := trimAll(*input.Lawyers)
		before, after := strings.Join(c.Lawyers, ", "), strings.Join(next, ", ")
		if before != after {
			changes["lawyers"] = activity.FieldChange{Old: before, New: after}
			c.Lawyers = next
		}
	}

	if len(changes) == 0 {
		return c, nil
	}

	if err := c.Validate(); err != nil {
		return casefile.Case{}, err
	}

	entry := activity.NewEntry(deps.GenerateID(), c.ID, activity.ActionCaseUpdated,
		fmt.Sprintf("Case %q updated", c.Title), deps.Now()).
		WithActor(input.UpdatedBy).
		WithChanges(changes)

	if err := deps.CaseStore.Update(ctx, c, entry); err != nil {
		return casefile.Case{}, fmt.Errorf("failed to update case: %w", err)
	}

	slog.Info("case_event", "event", "case_updated", "case_id", c.ID, "fields", len(changes))
	return c, nil
}
