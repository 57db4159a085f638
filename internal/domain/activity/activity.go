package activity

import (
	"encoding/json"
	"time"
)

// ActionType identifies the lifecycle event an entry records.
type ActionType string

const (
	ActionCaseCreated      ActionType = "case_created"
	ActionCaseUpdated      ActionType = "case_updated"
	ActionCaseCompleted    ActionType = "case_completed"
	ActionCaseCancelled    ActionType = "case_cancelled"
	ActionCaseReopened     ActionType = "case_reopened"
	ActionCaseDeleted      ActionType = "case_deleted"
	ActionSessionScheduled ActionType = "session_scheduled"
	ActionSessionPostponed ActionType = "session_postponed"
	ActionSessionCompleted ActionType = "session_completed"
	ActionSessionCancelled ActionType = "session_cancelled"
	ActionNoteAdded        ActionType = "note_added"
)

// FieldChange records an old/new pair for one edited field.
type FieldChange struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// Entry is a single append-only activity-log row. Entries are never
// updated or deleted; a case's timeline is the chronological list of its
// entries.
type Entry struct {
	ID          string     `json:"id"`
	CaseID      string     `json:"case_id"`
	SessionID   string     `json:"session_id,omitempty"`
	ActionType  ActionType `json:"action_type"`
	Description string     `json:"description"`
	Details     string     `json:"details,omitempty"` // JSON: change map, from/to dates
	CreatedAt   time.Time  `json:"created_at"`
	CreatedBy   string     `json:"created_by,omitempty"`
}

// NewEntry creates an entry for a case at the given time.
// PRE: caseID is non-empty
// POST: returns an Entry with action, description and timestamp set
func NewEntry(id, caseID string, action ActionType, description string, at time.Time) Entry {
	return Entry{
		ID:          id,
		CaseID:      caseID,
		ActionType:  action,
		Description: description,
		CreatedAt:   at,
	}
}

// WithSession attaches the session the entry refers to.
func (e Entry) WithSession(sessionID string) Entry {
	e.SessionID = sessionID
	return e
}

// WithActor records the account that performed the action.
func (e Entry) WithActor(accountID string) Entry {
	e.CreatedBy = accountID
	return e
}

// WithChanges encodes a field → {old,new} change map into Details.
// PRE: changes is non-empty
// POST: Details holds the JSON encoding of changes
func (e Entry) WithChanges(changes map[string]FieldChange) Entry {
	if len(changes) == 0 {
		return e
	}
	b, err := json.Marshal(changes)
	if err != nil {
		return e
	}
	e.Details = string(b)
	return e
}

// WithDates encodes a from/to date pair into Details, used for postpones.
func (e Entry) WithDates(from, to string) Entry {
	b, err := json.Marshal(map[string]string{"from_date": from, "to_date": to})
	if err != nil {
		return e
	}
	e.Details = string(b)
	return e
}

// Changes decodes the Details change map, if present.
// POST: returns nil when Details is empty or not a change map
func (e Entry) Changes() map[string]FieldChange {
	if e.Details == "" {
		return nil
	}
	var m map[string]FieldChange
	if err := json.Unmarshal([]byte(e.Details), &m); err != nil {
		return nil
	}
	return m
}
