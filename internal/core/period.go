package core

import "time"

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

type (
	// Period names a reporting window recognized at the chat boundary.
	Period string

	// Window is a half-open time range [Start, End) computed from a Period.
	// Queries take the bounds as parameters; no filter is ever built by
	// string interpolation.
	Window struct {
		Start time.Time
		End   time.Time
	}
)

// ParsePeriod maps the wire names "day", "week" and "month" to a Period.
func ParsePeriod(s string) (Period, bool) {
	switch Period(s) {
	case PeriodDay, PeriodWeek, PeriodMonth:
		return Period(s), true
	}
	return "", false
}

// Title returns the human form used in report headers.
func (p Period) Title() string {
	switch p {
	case PeriodDay:
		return "today"
	case PeriodWeek:
		return "this week"
	case PeriodMonth:
		return "this month"
	}
	return string(p)
}

// Window computes the reporting range for p anchored at now, in now's
// location. Day covers now's calendar date, week runs from Monday of now's
// ISO week, and month covers the current calendar month of the current
// year. The month window deliberately includes the year so that, unlike a
// month-number-only filter, March of one year never absorbs March of
// another.
func (p Period) Window(now time.Time) Window {
	loc := now.Location()
	y, m, d := now.Date()
	switch p {
	case PeriodDay:
		start := time.Date(y, m, d, 0, 0, 0, 0, loc)
		return Window{Start: start, End: start.AddDate(0, 0, 1)}
	case PeriodWeek:
		// time.Weekday counts Sunday as 0; shift so Monday opens the week.
		offset := (int(now.Weekday()) + 6) % 7
		start := time.Date(y, m, d, 0, 0, 0, 0, loc).AddDate(0, 0, -offset)
		return Window{Start: start, End: start.AddDate(0, 0, 7)}
	case PeriodMonth:
		start := time.Date(y, m, 1, 0, 0, 0, 0, loc)
		return Window{Start: start, End: start.AddDate(0, 1, 0)}
	}
	// Unknown periods collapse to an empty range rather than guessing.
	return Window{Start: now, End: now}
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}
