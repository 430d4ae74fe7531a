package orbit

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultTable(t *testing.T) {
	table := DefaultTable()
	if table.Reference().Planet != "Earth" {
		t.Errorf("expected Earth reference, got %s", table.Reference().Planet)
	}
	if len(table.Bodies()) != 8 {
		t.Errorf("expected 8 non-reference bodies, got %d", len(table.Bodies()))
	}
}

func TestNewTable_Errors(t *testing.T) {
	tests := []struct {
		name    string
		periods []Period
		want    error
	}{
		{"missing reference", []Period{{"Mars", 686.98}}, ErrMissingReference},
		{"zero period", []Period{{"Earth", 365.256}, {"Mars", 0}}, ErrInvalidPeriod},
		{"negative period", []Period{{"Earth", 365.256}, {"Mars", -1}}, ErrInvalidPeriod},
		{"NaN period", []Period{{"Earth", 365.256}, {"Mars", math.NaN()}}, ErrInvalidPeriod},
		{"empty name", []Period{{"Earth", 365.256}, {" ", 10}}, ErrInvalidPeriod},
		{"duplicate", []Period{{"Earth", 365.256}, {"Mars", 686.98}, {"mars", 687}}, ErrDuplicatePlanet},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.periods, DefaultReference)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSynodicTable_Partition(t *testing.T) {
	st, err := NewSynodicTable(DefaultTable())
	if err != nil {
		t.Fatal(err)
	}

	inner, outer := st.Inner(), st.Outer()
	if len(inner) != 2 || inner[0].Planet != "Mercury" || inner[1].Planet != "Venus" {
		t.Errorf("unexpected inner planets: %+v", inner)
	}
	wantOuter := []string{"Mars", "Jupiter", "Saturn", "Uranus", "Neptune", "Pluto"}
	if len(outer) != len(wantOuter) {
		t.Fatalf("expected %d outer planets, got %d", len(wantOuter), len(outer))
	}
	for i, name := range wantOuter {
		if outer[i].Planet != name {
			t.Errorf("outer[%d] = %s, want %s", i, outer[i].Planet, name)
		}
	}

	// An outer planet always takes longer than one reference year to realign.
	// Inner planets are not uniformly shorter: Venus (~584 d) realigns more
	// slowly than Jupiter (~399 d).
	ref := DefaultTable().Reference().Days
	for _, s := range outer {
		if s.Days <= ref {
			t.Errorf("%s synodic %.2f not above reference period %.2f", s.Planet, s.Days, ref)
		}
	}
	if inner[0].Days >= outer[len(outer)-1].Days {
		t.Errorf("Mercury synodic %.2f should be below every outer planet", inner[0].Days)
	}
	if venus, _ := st.Lookup("Venus"); math.Abs(venus-583.9) > 0.5 {
		t.Errorf("Venus synodic = %.2f, want ~583.9", venus)
	}
}

func TestSynodicPeriod_Mercury(t *testing.T) {
	st, err := NewSynodicTable(DefaultTable())
	if err != nil {
		t.Fatal(err)
	}
	days, ok := st.Lookup("Mercury")
	if !ok {
		t.Fatal("Mercury missing")
	}
	if math.Abs(days-115.88) > 0.05 {
		t.Errorf("Mercury synodic = %.3f, want ~115.88", days)
	}
	if got := st.Laps(1000).Count("Mercury"); got != 8 {
		t.Errorf("Mercury laps after 1000 days = %d, want 8", got)
	}
}

func TestSynodicTable_EqualPeriodIsRejected(t *testing.T) {
	table, err := NewTable([]Period{{"Earth", 365.256}, {"Twin", 365.256}}, DefaultReference)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewSynodicTable(table); !errors.Is(err, ErrReferencePeriod) {
		t.Errorf("expected ErrReferencePeriod, got %v", err)
	}
}

func TestLaps(t *testing.T) {
	st, err := NewSynodicTable(DefaultTable())
	if err != nil {
		t.Fatal(err)
	}

	zero := st.Laps(0)
	for _, l := range append(zero.Inner, zero.Outer...) {
		if l.Count != 0 {
			t.Errorf("%s: expected 0 laps at day 0, got %d", l.Planet, l.Count)
		}
	}

	if got := st.Laps(-30); got.Count("Mercury") != 0 {
		t.Errorf("negative elapsed days should count as zero, got %d", got.Count("Mercury"))
	}

	prev := st.Laps(0)
	for d := 1; d <= 20000; d += 17 {
		cur := st.Laps(d)
		for i := range cur.Inner {
			if cur.Inner[i].Count < prev.Inner[i].Count {
				t.Fatalf("inner laps decreased at day %d", d)
			}
		}
		for i := range cur.Outer {
			if cur.Outer[i].Count < prev.Outer[i].Count {
				t.Fatalf("outer laps decreased at day %d", d)
			}
		}
		prev = cur
	}
}

func TestTableWriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "periods.yaml")
	if err := WriteTable(DefaultTable(), path); err != nil {
		t.Fatalf("WriteTable failed: %v", err)
	}

	table, err := ReadTable(path)
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}
	if table.Reference() != DefaultTable().Reference() {
		t.Errorf("reference mismatch: %+v", table.Reference())
	}
	if len(table.Bodies()) != len(DefaultTable().Bodies()) {
		t.Errorf("body count mismatch: %d", len(table.Bodies()))
	}
}

func TestReadTable_DefaultsReference(t *testing.T) {
	path := filepath.Join(t.TempDir(), "periods.yaml")
	data := "planets:\n  - name: Earth\n    period_days: 365.256\n  - name: Mars\n    period_days: 686.98\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	table, err := ReadTable(path)
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}
	if table.Reference().Planet != "Earth" || len(table.Bodies()) != 1 {
		t.Errorf("unexpected table: %+v %+v", table.Reference(), table.Bodies())
	}
}
