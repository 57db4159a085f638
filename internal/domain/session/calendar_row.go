package session

// CalendarRow is the read model for the monthly calendar: a session joined
// with the fields of its (non-deleted) case that the grid displays.
type CalendarRow struct {
	Session
	CaseTitle  string
	CourtName  string
	Lawyers    []string
	Reviewer   string
	CaseStatus string
}
