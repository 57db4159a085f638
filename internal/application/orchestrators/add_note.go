package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	activityStore "lawcal/internal/adapters/storage/activity"
	casefileStore "lawcal/internal/adapters/storage/casefile"
	"lawcal/internal/domain/activity"
)

// MaxNoteLength caps a single timeline note.
const MaxNoteLength = 2000

var (
	ErrEmptyNote   = errors.New("note cannot be empty")
	ErrNoteTooLong = errors.New("note cannot exceed 2000 characters")
)

// AddNoteInput carries input for the add-note orchestrator.
type AddNoteInput struct {
	CaseID    string
	SessionID string // optional
	Message   string
	Actor     string // account ID
}

// AddNoteDeps holds dependencies for ExecuteAddNote.
type AddNoteDeps struct {
	CaseStore     casefileStore.Store
	ActivityStore activityStore.Store
	GenerateID    func() string
	Now           func() time.Time
}

// ExecuteAddNote appends a note_added entry to a case's timeline.
// PRE: case exists and is not deleted; message is non-empty
// POST: entry is persisted
func ExecuteAddNote(ctx context.Context, input AddNoteInput, deps AddNoteDeps) (activity.Entry, error) {
	msg := strings.TrimSpace(input.Message)
	if msg == "" {
		return activity.Entry{}, ErrEmptyNote
	}
	if len(msg) > MaxNoteLength {
		return activity.Entry{}, ErrNoteTooLong
	}

	// Notes may not be attached to deleted cases.
	if _, err := deps.CaseStore.GetByID(ctx, input.CaseID); err != nil {
		return activity.Entry{}, err
	}

	entry := activity.NewEntry(deps.GenerateID(), input.CaseID, activity.ActionNoteAdded, msg, deps.Now()).
		WithActor(input.Actor)
	if input.SessionID != "" {
		entry = entry.WithSession(input.SessionID)
	}

	if err := deps.ActivityStore.Append(ctx, entry); err != nil {
		return activity.Entry{}, fmt.Errorf("failed to append note: %w", err)
	}

	slog.Info("case_event", "event", "note_added", "case_id", input.CaseID)
	return entry, nil
}
