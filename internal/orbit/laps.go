package orbit

import "math"

// Lap is the number of completed synodic cycles for one planet.
type Lap struct {
	Planet string
	Count  int
}

// LapCounts holds lap counts in the same order as the synodic table:
// Inner are the planets that lapped the reference body, Outer the ones it
// lapped.
type LapCounts struct {
	Inner []Lap
	Outer []Lap
}

// Count returns the lap count for a planet, or 0 if it is unknown.
func (l LapCounts) Count(planet string) int {
	for _, list := range [][]Lap{l.Inner, l.Outer} {
		for _, lap := range list {
			if lap.Planet == planet {
				return lap.Count
			}
		}
	}
	return 0
}

// Laps computes floor(elapsedDays / synodic) for every planet.
// Negative elapsed days are treated as zero.
func (s *SynodicTable) Laps(elapsedDays int) LapCounts {
	if elapsedDays < 0 {
		elapsedDays = 0
	}
	return LapCounts{
		Inner: countLaps(s.inner, elapsedDays),
		Outer: countLaps(s.outer, elapsedDays),
	}
}

func countLaps(periods []Synodic, elapsedDays int) []Lap {
	laps := make([]Lap, len(periods))
	for i, p := range periods {
		laps[i] = Lap{Planet: p.Planet, Count: int(math.Floor(float64(elapsedDays) / p.Days))}
	}
	return laps
}
