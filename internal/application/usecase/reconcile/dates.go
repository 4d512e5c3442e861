// Package reconcile implements the multi-phase matching engine.
package reconcile

import "time"

// Source files disagree on date formats; every date field is parsed against
// this list at match time.
var dateFormats = []string{
	"01/02/2006",
	"2006-01-02",
	"01/02/06",
	"2-Jan-2006",
}

// ParseDate parses a raw source date string. The second return value is
// false when no known format matches; callers treat such rows as undated
// rather than failing the run.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, f := range dateFormats {
		if t, err := time.Parse(f, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// InYear reports whether the raw date parses and falls in the given year.
// Year 0 means no filter. Unparseable dates never pass a year filter.
func InYear(rawDate string, year int) bool {
	if year == 0 {
		return true
	}
	t, ok := ParseDate(rawDate)
	return ok && t.Year() == year
}

// daysBetween returns the whole days from a to b (positive when b is later).
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// absDays returns the absolute whole-day distance between two dates.
func absDays(a, b time.Time) int {
	d := daysBetween(a, b)
	if d < 0 {
		return -d
	}
	return d
}

// sameMonth reports whether two dates fall in the same calendar month.
func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
