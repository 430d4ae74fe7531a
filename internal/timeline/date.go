// Package timeline turns a date range into sample instants and measures
// calendar age between two civil dates.
//
// All dates are civil dates at midnight. They are carried as time.Time in UTC
// so day arithmetic never crosses a DST transition.
package timeline

import (
	"fmt"
	"time"
)

// DateLayout is the only accepted input format for dates.
const DateLayout = "2006-01-02"

// ParseDate parses YYYY-MM-DD into a midnight date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DD (e.g. 1975-01-01): %w", err)
	}
	return t, nil
}

// Midnight drops the clock part of t and keeps its calendar date.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

const secondsPerDay = 24 * 60 * 60

// DaysBetween returns the whole days from a to b (negative if b is before a).
// It works on Unix seconds because time.Duration saturates after ~292 years.
func DaysBetween(a, b time.Time) int {
	return int((Midnight(b).Unix() - Midnight(a).Unix()) / secondsPerDay)
}

// DaysIn returns the length of the given month.
func DaysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddDays advances a date by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return Midnight(t).AddDate(0, 0, n)
}
