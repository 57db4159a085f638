package projections

import (
	"context"
	"fmt"

	sessionStore "lawcal/internal/adapters/storage/session"
	"lawcal/internal/domain/calendar"
	"lawcal/internal/domain/session"
)

// MonthViewSessionStore defines the session store interface for the month
// view projection.
type MonthViewSessionStore interface {
	ListCalendarRange(ctx context.Context, from, to string) ([]session.CalendarRow, error)
}

// Compile-time check that the SQLite store satisfies the projection's view
// of the session store.
var _ MonthViewSessionStore = (sessionStore.Store)(nil)

// MonthViewDeps holds dependencies for the month view projection.
type MonthViewDeps struct {
	SessionStore MonthViewSessionStore
}

// MonthDay is one cell of the calendar grid.
type MonthDay struct {
	Date     string // YYYY-MM-DD
	InMonth  bool   // false for the week-padding days of adjacent months
	Sessions []session.CalendarRow
}

// MonthView is the rendered month: the padded week grid with sessions
// bucketed onto their calendar day.
type MonthView struct {
	Month string // YYYY-MM
	From  string // first grid day
	To    string // last grid day
	Days  []MonthDay
}

// QueryMonthView fetches one month of calendar rows (over the padded grid
// range) and buckets them by calendar day.
// PRE: month is formatted YYYY-MM
// POST: Days covers whole weeks in chronological order; a session appears
// under day D iff its date equals D
func QueryMonthView(ctx context.Context, month string, deps MonthViewDeps) (MonthView, error) {
	m, err := calendar.MonthOf(month)
	if err != nil {
		return MonthView{}, err
	}

	from, to := calendar.GridRange(m)
	rows, err := deps.SessionStore.ListCalendarRange(ctx, calendar.DayKey(from), calendar.DayKey(to))
	if err != nil {
		return MonthView{}, fmt.Errorf("failed to fetch month sessions: %w", err)
	}

	byDay := make(map[string][]session.CalendarRow)
	for _, r := range rows {
		key := r.DateString()
		byDay[key] = append(byDay[key], r)
	}

	view := MonthView{
		Month: month,
		From:  calendar.DayKey(from),
		To:    calendar.DayKey(to),
	}
	for _, day := range calendar.Grid(m) {
		key := calendar.DayKey(day)
		view.Days = append(view.Days, MonthDay{
			Date:     key,
			InMonth:  day.Month() == m.Month(),
			Sessions: byDay[key],
		})
	}
	return view, nil
}
