// Package dates provides day-granularity helpers for the calendar dates
// stored throughout the application. All dates are normalized to midnight
// UTC so that equality and range comparisons behave like civil-date
// comparisons regardless of the server's local time.
package dates

import (
	"fmt"
	"time"
)

// Format is the ISO-8601 layout used to represent dates as strings.
const Format = "2006-01-02"

// New returns the normalized date for the given year, month, and day.
func New(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// FromTime returns the normalized date for the civil date t falls on,
// evaluated in t's own location.
func FromTime(t time.Time) time.Time {
	y, m, d := t.Date()
	return New(y, m, d)
}

// Today returns the current date in the given location.
func Today(loc *time.Location) time.Time {
	return FromTime(time.Now().In(loc))
}

// Parse parses an ISO-8601 date string.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Format, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want format %q: %w", s, Format, err)
	}
	return t, nil
}

// MustParse is like Parse but panics on error. For tests and fixtures.
func MustParse(s string) time.Time {
	t, err := Parse(s)
	if err != nil {
		panic(err.Error())
	}
	return t
}

// DaysBetween returns the number of whole days from one normalized date
// to another. Negative when to precedes from.
func DaysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

// AddDays returns the normalized date i days after d.
func AddDays(d time.Time, i int) time.Time {
	return FromTime(d.AddDate(0, 0, i))
}

// WeekKey returns an ISO year-week bucket key, e.g. "2025-03". Weeks
// start Monday; at a year boundary the ISO year can differ from the
// calendar year.
func WeekKey(d time.Time) string {
	year, week := d.ISOWeek()
	return fmt.Sprintf("%d-%02d", year, week)
}

// MonthKey returns a year-month bucket key, e.g. "2025-03".
func MonthKey(d time.Time) string {
	return d.Format("2006-01")
}
