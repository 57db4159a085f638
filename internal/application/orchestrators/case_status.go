package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	casefileStore "lawcal/internal/adapters/storage/casefile"
	"lawcal/internal/domain/activity"
	"lawcal/internal/domain/casefile"
)

// CaseStatusDeps holds dependencies for the case lifecycle orchestrators.
type CaseStatusDeps struct {
	CaseStore  casefileStore.Store
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteCompleteCase marks an active case completed.
// PRE: case exists, is active and not deleted
// POST: status and case_completed entry committed together
func ExecuteCompleteCase(ctx context.Context, caseID, actor string, deps CaseStatusDeps) (casefile.Case, error) {
	return transitionCase(ctx, caseID, actor, deps, activity.ActionCaseCompleted, "completed",
		func(c *casefile.Case) error { return c.Complete() })
}

// ExecuteCancelCase marks an active case cancelled.
// PRE: case exists, is active and not deleted
// POST: status and case_cancelled entry committed together
func ExecuteCancelCase(ctx context.Context, caseID, actor string, deps CaseStatusDeps) (casefile.Case, error) {
	return transitionCase(ctx, caseID, actor, deps, activity.ActionCaseCancelled, "cancelled",
		func(c *casefile.Case) error { return c.Cancel() })
}

// ExecuteReopenCase returns a completed or cancelled case to active.
// PRE: case exists, is completed or cancelled
// POST: status and case_reopened entry committed together
func ExecuteReopenCase(ctx context.Context, caseID, actor string, deps CaseStatusDeps) (casefile.Case, error) {
	return transitionCase(ctx, caseID, actor, deps, activity.ActionCaseReopened, "reopened",
		func(c *casefile.Case) error { return c.Reopen() })
}

func transitionCase(ctx context.Context, caseID, actor string, deps CaseStatusDeps,
	action activity.ActionType, verb string, apply func(*casefile.Case) error) (casefile.Case, error) {

	c, err := deps.CaseStore.GetByID(ctx, caseID)
	if err != nil {
		return casefile.Case{}, err
	}
	if err := apply(&c); err != nil {
		return casefile.Case{}, err
	}

	entry := activity.NewEntry(deps.GenerateID(), c.ID, action,
		fmt.Sprintf("Case %q %s", c.Title, verb), deps.Now()).WithActor(actor)

	if err := deps.CaseStore.Update(ctx, c, entry); err != nil {
		return casefile.Case{}, fmt.Errorf("failed to update case status: %w", err)
	}

	slog.Info("case_event", "event", "case_"+verb, "case_id", c.ID)
	return c, nil
}

// ExecuteDeleteCase soft-deletes a case. The row keeps its data but is
// excluded from every subsequent read; there is no hard-delete path.
// PRE: case exists and is not already deleted
// POST: deleted_at and case_deleted entry committed together
func ExecuteDeleteCase(ctx context.Context, caseID, actor string, deps CaseStatusDeps) error {
	c, err := deps.CaseStore.GetByID(ctx, caseID)
	if err != nil {
		return err
	}

	now := deps.Now()
	if err := c.SoftDelete(now); err != nil {
		return err
	}

	entry := activity.NewEntry(deps.GenerateID(), c.ID, activity.ActionCaseDeleted,
		fmt.Sprintf("Case %q deleted", c.Title), now).WithActor(actor)

	if err := deps.CaseStore.SoftDelete(ctx, c.ID, now, entry); err != nil {
		return fmt.Errorf("failed to delete case: %w", err)
	}

	slog.Info("case_event", "event", "case_deleted", "case_id", c.ID)
	return nil
}
