package web

import (
	"errors"
	"net/http"

	"lawcal/internal/adapters/ical"
	"lawcal/internal/application/projections"
	"lawcal/internal/domain/calendar"
)

// feedLookbackDays and feedLookaheadDays bound the iCalendar export. Old
// sessions are noise in a subscribed calendar; a year ahead covers every
// realistically scheduled court date.
const (
	feedLookbackDays  = 30
	feedLookaheadDays = 365
)

// monthDayJSON is one grid cell of the month response.
type monthDayJSON struct {
	Date     string            `json:"date"`
	InMonth  bool              `json:"in_month"`
	Sessions []calendarRowJSON `json:"sessions"`
}

type monthViewJSON struct {
	Month string         `json:"month"`
	From  string         `json:"from"`
	To    string         `json:"to"`
	Days  []monthDayJSON `json:"days"`
}

// handleCalendar handles GET /api/calendar?month=YYYY-MM. Missing month
// defaults to the current one. The response is the padded week grid the
// SPA renders directly: whole weeks starting on Saturday, adjacent-month
// days marked.
func handleCalendar(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	month := r.URL.Query().Get("month")
	if month == "" {
		month = timeNow().UTC().Format("2006-01")
	}

	deps := projections.MonthViewDeps{
		SessionStore: stores.SessionStore,
	}
	view, err := projections.QueryMonthView(r.Context(), month, deps)
	if err != nil {
		if errors.Is(err, calendar.ErrBadMonth) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		internalError(w, err)
		return
	}

	out := monthViewJSON{
		Month: view.Month,
		From:  view.From,
		To:    view.To,
	}
	for _, day := range view.Days {
		rows := make([]calendarRowJSON, 0, len(day.Sessions))
		for _, s := range day.Sessions {
			rows = append(rows, toCalendarRowJSON(s))
		}
		out.Days = append(out.Days, monthDayJSON{
			Date:     day.Date,
			InMonth:  day.InMonth,
			Sessions: rows,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleCalendarFeed handles GET /calendar.ics, an iCalendar export of
// scheduled sessions for phone and desktop calendar subscriptions.
func handleCalendarFeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	now := timeNow().UTC()
	from := calendar.DayKey(now.AddDate(0, 0, -feedLookbackDays))
	to := calendar.DayKey(now.AddDate(0, 0, feedLookaheadDays))

	rows, err := stores.SessionStore.ListCalendarRange(r.Context(), from, to)
	if err != nil {
		internalError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `inline; filename="lawcal.ics"`)
	w.Write([]byte(ical.Feed(rows, now)))
}
