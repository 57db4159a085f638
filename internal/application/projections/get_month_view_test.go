package projections

import (
	"context"
	"errors"
	"testing"
	"time"

	"lawcal/internal/domain/calendar"
	"lawcal/internal/domain/session"
)

// mockMonthViewStore implements MonthViewSessionStore for testing.
type mockMonthViewStore struct {
	rows    []session.CalendarRow
	listErr error
	from    string
	to      string
}

func (m *mockMonthViewStore) ListCalendarRange(_ context.Context, from, to string) ([]session.CalendarRow, error) {
	m.from, m.to = from, to
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []session.CalendarRow
	for _, r := range m.rows {
		if d := r.DateString(); d >= from && d <= to {
			out = append(out, r)
		}
	}
	return out, nil
}

func calRow(id string, date time.Time) session.CalendarRow {
	return session.CalendarRow{
		Session: session.Session{
			ID:     id,
			CaseID: "case-" + id,
			Date:   date,
			Status: session.StatusScheduled,
		},
		CaseTitle: "Case " + id,
	}
}

// TestQueryMonthView tests the padded grid and session bucketing.
func TestQueryMonthView(t *testing.T) {
	store := &mockMonthViewStore{
		rows: []session.CalendarRow{
			calRow("s1", time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)),
			calRow("s2", time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)),
			// Padding day of the previous month, still on the grid
			calRow("s3", time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)),
			// Off the grid entirely
			calRow("s4", time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)),
		},
	}

	view, err := QueryMonthView(context.Background(), "2026-03", MonthViewDeps{SessionStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if view.Month != "2026-03" {
		t.Errorf("Month = %q", view.Month)
	}
	// March 2026 starts on a Sunday; the Saturday-start grid pads back to
	// Feb 28 and forward to Apr 3
	if view.From != "2026-02-28" || view.To != "2026-04-03" {
		t.Errorf("grid range = [%s, %s]", view.From, view.To)
	}
	if store.from != view.From || store.to != view.To {
		t.Errorf("store queried with [%s, %s]", store.from, store.to)
	}

	if len(view.Days)%7 != 0 {
		t.Errorf("Days = %d, want whole weeks", len(view.Days))
	}
	if view.Days[0].Date != "2026-02-28" {
		t.Errorf("Days[0] = %s", view.Days[0].Date)
	}
	if view.Days[0].InMonth {
		t.Error("padding day should not be InMonth")
	}

	byDate := make(map[string]MonthDay)
	for _, d := range view.Days {
		byDate[d.Date] = d
	}
	if day := byDate["2026-03-10"]; len(day.Sessions) != 2 || !day.InMonth {
		t.Errorf("2026-03-10 = %+v", day)
	}
	if day := byDate["2026-02-28"]; len(day.Sessions) != 1 {
		t.Errorf("padding day sessions = %d, want 1", len(day.Sessions))
	}
	if day := byDate["2026-03-11"]; len(day.Sessions) != 0 {
		t.Errorf("empty day sessions = %d, want 0", len(day.Sessions))
	}
	if _, ok := byDate["2026-05-01"]; ok {
		t.Error("day outside the grid should not appear")
	}

	// Every in-month day is present
	for d := 1; d <= 31; d++ {
		key := time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
		day, ok := byDate[key]
		if !ok || !day.InMonth {
			t.Errorf("day %s missing or not InMonth", key)
		}
	}
}

// TestQueryMonthView_BadMonth tests month validation.
func TestQueryMonthView_BadMonth(t *testing.T) {
	store := &mockMonthViewStore{}
	for _, month := range []string{"", "2026", "2026-13", "March 2026"} {
		_, err := QueryMonthView(context.Background(), month, MonthViewDeps{SessionStore: store})
		if !errors.Is(err, calendar.ErrBadMonth) {
			t.Errorf("month %q: expected ErrBadMonth, got %v", month, err)
		}
	}
}

// TestQueryMonthView_StoreError tests the store failure path.
func TestQueryMonthView_StoreError(t *testing.T) {
	store := &mockMonthViewStore{listErr: errors.New("db gone")}
	_, err := QueryMonthView(context.Background(), "2026-03", MonthViewDeps{SessionStore: store})
	if err == nil || !errors.Is(err, store.listErr) {
		t.Errorf("expected wrapped store error, got %v", err)
	}
}
