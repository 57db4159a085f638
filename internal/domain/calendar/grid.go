package calendar

import (
	"errors"
	"time"
)

// WeekStart is Saturday: the office work week runs Saturday through
// Thursday, so the grid's leftmost column is Saturday.
const WeekStart = time.Saturday

// DayLayout is the timezone-naive calendar-day key format.
const DayLayout = "2006-01-02"

// MonthLayout is the wire format for selecting a month ("2024-06").
const MonthLayout = "2006-01"

var ErrBadMonth = errors.New("month must be formatted YYYY-MM")

// MonthOf parses a YYYY-MM month selector into the first day of that
// month at midnight UTC.
// PRE: none
// POST: returns the month start or ErrBadMonth
func MonthOf(s string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return time.Time{}, ErrBadMonth
	}
	return t, nil
}

// GridRange returns the first and last calendar days of the padded
// display grid for the month containing t: the grid spans whole weeks, so
// it starts on the WeekStart on or before the 1st and ends six days after
// the WeekStart on or before the last day of the month.
// PRE: none
// POST: from <= every day of the month <= to; from is a WeekStart;
// the span is a whole number of weeks
func GridRange(t time.Time) (from, to time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	back := (int(first.Weekday()) - int(WeekStart) + 7) % 7
	from = first.AddDate(0, 0, -back)

	weekEnd := (WeekStart + 6) % 7
	forward := (int(weekEnd) - int(last.Weekday()) + 7) % 7
	to = last.AddDate(0, 0, forward)
	return from, to
}

// Grid returns every calendar day of the padded grid in chronological
// order, leading and trailing days from adjacent months included.
// PRE: none
// POST: len(result) is a multiple of 7; result[0].Weekday() == WeekStart
func Grid(t time.Time) []time.Time {
	from, to := GridRange(t)
	var days []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// DayKey returns the bucket key for a date: its YYYY-MM-DD calendar day.
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// SameDay reports timezone-naive calendar-day equality.
func SameDay(a, b time.Time) bool {
	return DayKey(a) == DayKey(b)
}

// NextMonth returns the first day of the month after t's month.
func NextMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
}

// PrevMonth returns the first day of the month before t's month.
func PrevMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
}
