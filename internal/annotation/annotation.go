// Package annotation builds the per-frame text record: calendar date, age
// since the start date and lap counts against the other planets.
package annotation

import (
	"fmt"
	"time"

	"github.com/ivlev/solar2video/internal/orbit"
	"github.com/ivlev/solar2video/internal/timeline"
)

// DefaultSubject labels the lap counts when no name is given.
const DefaultSubject = "Earth"

// FrameAnnotation is everything printed on one frame.
type FrameAnnotation struct {
	Index int
	Date  time.Time
	Final bool

	Year  int
	Month string // zero-padded
	Day   string // zero-padded

	ElapsedDays int
	Age         timeline.AgeBreakdown
	AgeKnown    bool
	Laps        orbit.LapCounts

	Name    string
	Subject string
}

// Builder turns sample instants into annotations. It holds no mutable state.
type Builder struct {
	Start   time.Time
	Name    string
	Synodic *orbit.SynodicTable
}

func NewBuilder(start time.Time, name string, synodic *orbit.SynodicTable) *Builder {
	return &Builder{Start: timeline.Midnight(start), Name: name, Synodic: synodic}
}

func (b *Builder) Build(s timeline.SampleInstant) FrameAnnotation {
	date := timeline.Midnight(s.Date)

	elapsed := timeline.DaysBetween(b.Start, date)
	if elapsed < 0 {
		elapsed = 0
	}
	age, known := timeline.Age(b.Start, date)

	subject := b.Name
	if subject == "" {
		subject = DefaultSubject
	}

	return FrameAnnotation{
		Index:       s.Index,
		Date:        date,
		Final:       s.Final,
		Year:        date.Year(),
		Month:       fmt.Sprintf("%02d", int(date.Month())),
		Day:         fmt.Sprintf("%02d", date.Day()),
		ElapsedDays: elapsed,
		Age:         age,
		AgeKnown:    known,
		Laps:        b.Synodic.Laps(elapsed),
		Name:        b.Name,
		Subject:     subject,
	}
}

// Heading introduces the age block.
func (a FrameAnnotation) Heading() string {
	if a.Name != "" {
		return fmt.Sprintf("%s's age in:", a.Name)
	}
	return "Age in:"
}

// Lines lays the annotation out top to bottom. Empty strings are spacers.
func (a FrameAnnotation) Lines() []string {
	lines := []string{
		fmt.Sprintf("year – %d", a.Year),
		fmt.Sprintf("month – %s", a.Month),
		fmt.Sprintf("day – %s", a.Day),
		"",
		a.Heading(),
	}

	if a.AgeKnown && a.Age.Started() {
		lines = append(lines,
			fmt.Sprintf("years – %d", a.Age.Years),
			fmt.Sprintf("months – %d", a.Age.Months),
			fmt.Sprintf("days – %d", a.Age.Days),
		)
	} else {
		lines = append(lines, "years – -", "months – -", "days – -")
	}

	lines = append(lines, "", fmt.Sprintf("Number of times %s was lapped by:", a.Subject))
	for _, l := range a.Laps.Inner {
		lines = append(lines, fmt.Sprintf("%s – %d", l.Planet, l.Count))
	}

	lines = append(lines, "", fmt.Sprintf("Number of times %s lapped:", a.Subject))
	for _, l := range a.Laps.Outer {
		lines = append(lines, fmt.Sprintf("%s – %d", l.Planet, l.Count))
	}
	return lines
}

// Stamp is a short identifier of the frame, used for the QR code.
func (a FrameAnnotation) Stamp() string {
	return fmt.Sprintf("%s #%d", a.Date.Format(timeline.DateLayout), a.Index)
}
