package orbit

import (
	"fmt"
	"math"
)

// Synodic is the time between successive alignments of a planet and the
// reference body.
type Synodic struct {
	Planet string
	Days   float64
}

// SynodicTable partitions planets into those orbiting faster than the
// reference (inner) and slower (outer). Computed once and never mutated.
type SynodicTable struct {
	reference string
	inner     []Synodic
	outer     []Synodic
}

// SynodicPeriod returns 1 / |1/reference - 1/planet|.
func SynodicPeriod(reference, planet float64) (float64, error) {
	diff := math.Abs(1/reference - 1/planet)
	if diff == 0 || reference == planet {
		return 0, ErrReferencePeriod
	}
	return 1 / diff, nil
}

// NewSynodicTable derives synodic periods for every non-reference body.
// A body with the same period as the reference never realigns and is
// rejected.
func NewSynodicTable(t *Table) (*SynodicTable, error) {
	ref := t.Reference()
	st := &SynodicTable{reference: ref.Planet}

	for _, b := range t.Bodies() {
		days, err := SynodicPeriod(ref.Days, b.Days)
		if err != nil {
			return nil, fmt.Errorf("%w: %s and %s both %v days", err, b.Planet, ref.Planet, b.Days)
		}
		s := Synodic{Planet: b.Planet, Days: days}
		if b.Days < ref.Days {
			st.inner = append(st.inner, s)
		} else {
			st.outer = append(st.outer, s)
		}
	}
	return st, nil
}

func (s *SynodicTable) Reference() string {
	return s.reference
}

// Inner lists planets faster than the reference, ascending orbital period.
func (s *SynodicTable) Inner() []Synodic {
	return append([]Synodic(nil), s.inner...)
}

// Outer lists planets slower than the reference, ascending orbital period.
func (s *SynodicTable) Outer() []Synodic {
	return append([]Synodic(nil), s.outer...)
}

// Lookup returns the synodic period of a planet.
func (s *SynodicTable) Lookup(planet string) (float64, bool) {
	for _, list := range [][]Synodic{s.inner, s.outer} {
		for _, p := range list {
			if p.Planet == planet {
				return p.Days, true
			}
		}
	}
	return 0, false
}
