package timeline

import "time"

// AgeBreakdown is elapsed calendar time in whole years, months and days.
type AgeBreakdown struct {
	Years  int
	Months int
	Days   int
}

// Started reports whether the age refers to a moment at or after the start.
// A current date before the start yields negative years.
func (a AgeBreakdown) Started() bool {
	return a.Years >= 0
}

// Age decomposes the time from start to current into years, months and days.
// It returns ok=false when start is the zero time (no reference date known).
//
// When the day of month of current is smaller than that of start, one month
// is borrowed and the days are counted from the start's day of month in the
// preceding month. If start's day does not exist in that month (Jan 31 ->
// Mar 1) the count starts from its last day, which keeps Days >= 0.
func Age(start, current time.Time) (age AgeBreakdown, ok bool) {
	if start.IsZero() {
		return AgeBreakdown{}, false
	}
	start, current = Midnight(start), Midnight(current)

	sy, sm, sd := start.Date()
	cy, cm, cd := current.Date()

	years := cy - sy
	months := int(cm) - int(sm)
	days := cd - sd

	if days < 0 {
		months--
		py, pm := cy, cm-1
		if cm == time.January {
			py, pm = cy-1, time.December
		}
		prevLen := DaysIn(py, pm)
		if sd <= prevLen {
			days += prevLen
		} else {
			days = cd
		}
	}

	if months < 0 {
		years--
		months += 12
	}

	return AgeBreakdown{Years: years, Months: months, Days: days}, true
}

// AddAge advances start by the given age using calendar month arithmetic.
// Years and months are applied first with the day of month clamped to the
// target month's length, then days are added.
func AddAge(start time.Time, a AgeBreakdown) time.Time {
	start = Midnight(start)
	y, m, d := start.Date()

	total := int(m) - 1 + a.Months + 12*(y+a.Years)
	ty, tm := total/12, time.Month(total%12+1)
	if n := DaysIn(ty, tm); d > n {
		d = n
	}
	return time.Date(ty, tm, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, a.Days)
}
