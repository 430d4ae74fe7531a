// Package orbit holds the orbital period table and derives synodic periods
// and lap counts relative to a reference body.
package orbit

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// DefaultReference is the body every other planet is compared against.
const DefaultReference = "Earth"

var (
	ErrMissingReference = errors.New("reference body not in period table")
	ErrInvalidPeriod    = errors.New("orbital period must be positive")
	ErrDuplicatePlanet  = errors.New("planet listed twice")
	ErrReferencePeriod  = errors.New("orbital period equals the reference period")
)

// Period is a sidereal orbital period in days.
type Period struct {
	Planet string  `yaml:"name"`
	Days   float64 `yaml:"period_days"`
}

// Table is an immutable set of orbital periods with one reference body.
type Table struct {
	reference Period
	bodies    []Period
}

// DefaultPeriods are approximate sidereal periods of the nine classical planets.
func DefaultPeriods() []Period {
	return []Period{
		{"Mercury", 87.969},
		{"Venus", 224.701},
		{"Earth", 365.256},
		{"Mars", 686.980},
		{"Jupiter", 4332.59},
		{"Saturn", 10759.22},
		{"Uranus", 30685.4},
		{"Neptune", 60189.0},
		{"Pluto", 90560.0},
	}
}

// DefaultTable returns the built-in table with Earth as reference.
func DefaultTable() *Table {
	t, err := NewTable(DefaultPeriods(), DefaultReference)
	if err != nil {
		panic(err)
	}
	return t
}

// NewTable validates periods and builds a table. Bodies are kept sorted by
// ascending period.
func NewTable(periods []Period, reference string) (*Table, error) {
	seen := make(map[string]bool, len(periods))
	t := &Table{}
	found := false

	for _, p := range periods {
		name := strings.TrimSpace(p.Planet)
		if name == "" {
			return nil, fmt.Errorf("%w: empty planet name", ErrInvalidPeriod)
		}
		if !(p.Days > 0) {
			return nil, fmt.Errorf("%w: %s has %v days", ErrInvalidPeriod, name, p.Days)
		}
		key := strings.ToLower(name)
		if seen[key] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePlanet, name)
		}
		seen[key] = true

		p.Planet = name
		if strings.EqualFold(name, reference) {
			t.reference = p
			found = true
			continue
		}
		t.bodies = append(t.bodies, p)
	}

	if !found {
		return nil, fmt.Errorf("%w: %q", ErrMissingReference, reference)
	}

	sort.SliceStable(t.bodies, func(i, j int) bool {
		return t.bodies[i].Days < t.bodies[j].Days
	})
	return t, nil
}

func (t *Table) Reference() Period {
	return t.reference
}

// Bodies returns the non-reference planets in ascending period order.
func (t *Table) Bodies() []Period {
	out := make([]Period, len(t.bodies))
	copy(out, t.bodies)
	return out
}

// Periods returns every entry including the reference, in ascending period order.
func (t *Table) Periods() []Period {
	out := append(t.Bodies(), t.reference)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Days < out[j].Days })
	return out
}
