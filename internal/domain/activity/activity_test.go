package activity_test

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"lawcal/internal/domain/activity"
)

// TestEntry_Builders tests the entry builder methods.
func TestEntry_Builders(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	e := activity.NewEntry("e1", "c1", activity.ActionCaseCreated, "Case created", at).
		WithSession("s1").
		WithActor("admin-1")

	if e.ID != "e1" || e.CaseID != "c1" || e.SessionID != "s1" || e.CreatedBy != "admin-1" {
		t.Errorf("unexpected entry: %+v", e)
	}
	if e.ActionType != activity.ActionCaseCreated {
		t.Errorf("ActionType = %q", e.ActionType)
	}
	if !e.CreatedAt.Equal(at) {
		t.Errorf("CreatedAt = %v, want %v", e.CreatedAt, at)
	}
}

// TestEntry_Changes tests the change-map roundtrip through Details.
func TestEntry_Changes(t *testing.T) {
	changes := map[string]activity.FieldChange{
		"title":    {Old: "Smith v. Jones", New: "Smith v. Jones (appeal)"},
		"reviewer": {Old: "", New: "C. Clerk"},
	}
	e := activity.NewEntry("e1", "c1", activity.ActionCaseUpdated, "Case updated", time.Now()).
		WithChanges(changes)

	got := e.Changes()
	if !reflect.DeepEqual(got, changes) {
		t.Errorf("Changes() = %v, want %v", got, changes)
	}

	// Empty map leaves Details empty
	e2 := activity.NewEntry("e2", "c1", activity.ActionCaseUpdated, "noop", time.Now()).
		WithChanges(nil)
	if e2.Details != "" {
		t.Errorf("Details = %q, want empty", e2.Details)
	}
	if e2.Changes() != nil {
		t.Error("Changes() on empty details should be nil")
	}
}

// TestEntry_WithDates tests the postpone date pair encoding.
func TestEntry_WithDates(t *testing.T) {
	e := activity.NewEntry("e1", "c1", activity.ActionSessionPostponed, "postponed", time.Now()).
		WithDates("2026-03-10", "2026-03-17")

	var m map[string]string
	if err := json.Unmarshal([]byte(e.Details), &m); err != nil {
		t.Fatalf("Details is not JSON: %v", err)
	}
	if m["from_date"] != "2026-03-10" || m["to_date"] != "2026-03-17" {
		t.Errorf("Details = %v", m)
	}
}
