package ical

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"lawcal/internal/domain/session"
)

// prodID identifies this feed in generated calendars.
const prodID = "-//lawcal//office calendar//EN"

// Feed serializes calendar rows into an iCalendar document of all-day
// events, one VEVENT per scheduled session, so the office can subscribe
// from phone and desktop calendars.
// PRE: rows come from the calendar view (soft-deleted cases excluded)
// POST: returns RFC 5545 text; non-scheduled sessions are skipped
func Feed(rows []session.CalendarRow, now time.Time) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(prodID)
	cal.SetName("Law Office Calendar")

	for _, r := range rows {
		if r.Status != session.StatusScheduled {
			continue
		}
		ev := cal.AddEvent(fmt.Sprintf("%s@lawcal", r.ID))
		ev.SetDtStampTime(now)
		ev.SetAllDayStartAt(r.Date)
		ev.SetAllDayEndAt(r.Date.AddDate(0, 0, 1))
		ev.SetSummary(r.CaseTitle)
		if r.CourtName != "" {
			ev.SetLocation(r.CourtName)
		}
		if desc := eventDescription(r); desc != "" {
			ev.SetDescription(desc)
		}
	}

	return cal.Serialize()
}

func eventDescription(r session.CalendarRow) string {
	var parts []string
	if len(r.Lawyers) > 0 {
		parts = append(parts, "Lawyers: "+strings.Join(r.Lawyers, ", "))
	}
	if r.Reviewer != "" {
		parts = append(parts, "Reviewer: "+r.Reviewer)
	}
	if r.Notes != "" {
		parts = append(parts, r.Notes)
	}
	return strings.Join(parts, "\n")
}
