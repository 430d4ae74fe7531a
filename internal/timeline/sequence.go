package timeline

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrStepDays   = errors.New("step days must be positive")
	ErrRangeOrder = errors.New("start date is after end date")
)

// DateRange is the span to sample, both ends inclusive.
type DateRange struct {
	Start    time.Time
	End      time.Time
	StepDays int
}

// NewDateRange normalises both ends to midnight and validates the range.
func NewDateRange(start, end time.Time, stepDays int) (DateRange, error) {
	r := DateRange{Start: Midnight(start), End: Midnight(end), StepDays: stepDays}
	if err := r.Validate(); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

func (r DateRange) Validate() error {
	if r.StepDays < 1 {
		return fmt.Errorf("%w (got %d)", ErrStepDays, r.StepDays)
	}
	if r.Start.After(r.End) {
		return fmt.Errorf("%w: %s > %s", ErrRangeOrder, r.Start.Format(DateLayout), r.End.Format(DateLayout))
	}
	return nil
}

// SampleInstant is one point in time a frame is produced for.
// Index is 1-based and contiguous.
type SampleInstant struct {
	Index int
	Date  time.Time
	// Final marks the extra sample emitted at the end date when stepping
	// from the start does not land on it.
	Final bool
}

// Sequence walks the range forward in StepDays increments.
// The end date is always the last sample: if the next step would overshoot
// it, the end date is emitted once more as a forced final sample.
// An invalid range yields no samples.
func Sequence(r DateRange) []SampleInstant {
	if r.Validate() != nil {
		return nil
	}
	samples := make([]SampleInstant, 0, Count(r))
	Walk(r, func(s SampleInstant) bool {
		samples = append(samples, s)
		return true
	})
	return samples
}

// Walk calls fn for each sample in order until fn returns false.
// It returns false if the walk was stopped early.
func Walk(r DateRange, fn func(SampleInstant) bool) bool {
	if r.Validate() != nil {
		return true
	}
	end := Midnight(r.End)

	t := Midnight(r.Start)
	for index := 1; ; index++ {
		if !fn(SampleInstant{Index: index, Date: t}) {
			return false
		}
		// Compare in days so a huge step never reaches AddDate and wraps.
		left := DaysBetween(t, end)
		if left == 0 {
			return true
		}
		if r.StepDays > left {
			return fn(SampleInstant{Index: index + 1, Date: end, Final: true})
		}
		t = t.AddDate(0, 0, r.StepDays)
	}
}

// Count returns the number of samples Sequence produces for r.
func Count(r DateRange) int {
	if r.Validate() != nil {
		return 0
	}
	span := DaysBetween(r.Start, r.End)
	if span == 0 {
		return 1
	}
	// ceil(span/step) + 1, written so span+step cannot overflow.
	return (span-1)/r.StepDays + 2
}
