package telemetry

import (
	"math"
	"testing"

	"terrarium/components"
)

func TestBiodiversityUniform(t *testing.T) {
	// Four equally populated species is maximal diversity.
	got := Biodiversity([]int{25, 25, 25, 25})
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("uniform counts: got %f, want 1.0", got)
	}
}

func TestBiodiversitySingleSpecies(t *testing.T) {
	if got := Biodiversity([]int{100, 0, 0}); got != 0 {
		t.Errorf("single species: got %f, want 0", got)
	}
}

func TestBiodiversityEmpty(t *testing.T) {
	if got := Biodiversity(nil); got != 0 {
		t.Errorf("empty: got %f, want 0", got)
	}
	if got := Biodiversity([]int{0, 0, 0}); got != 0 {
		t.Errorf("all zero: got %f, want 0", got)
	}
}

func TestBiodiversitySkewedBelowUniform(t *testing.T) {
	skewed := Biodiversity([]int{97, 1, 1, 1})
	if skewed <= 0 || skewed >= 1 {
		t.Errorf("skewed counts: got %f, want in (0,1)", skewed)
	}
}

func TestBiodiversityIgnoresZeroCounts(t *testing.T) {
	// Zero-count species must not affect the normalization denominator.
	with := Biodiversity([]int{30, 70, 0, 0, 0})
	without := Biodiversity([]int{30, 70})
	if math.Abs(with-without) > 1e-9 {
		t.Errorf("zero counts changed result: %f vs %f", with, without)
	}
}

func TestMeanFitness(t *testing.T) {
	if got := MeanFitness(nil); got != 0 {
		t.Errorf("empty: got %f, want 0", got)
	}
	if got := MeanFitness([]float64{0.5, 1.5}); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("got %f, want 1.0", got)
	}
}

func TestHistoryEvictsOldest(t *testing.T) {
	h := NewHistory(3)
	for i := 0; i < 5; i++ {
		h.Append(HistoryPoint{Generation: i})
	}
	pts := h.Points()
	if len(pts) != 3 {
		t.Fatalf("len = %d, want 3", len(pts))
	}
	for i, want := range []int{2, 3, 4} {
		if pts[i].Generation != want {
			t.Errorf("point %d generation = %d, want %d", i, pts[i].Generation, want)
		}
	}
}

func TestHistoryClear(t *testing.T) {
	h := NewHistory(10)
	h.Append(HistoryPoint{Generation: 1})
	h.Clear()
	if h.Len() != 0 {
		t.Errorf("after clear: len = %d, want 0", h.Len())
	}
}

func TestCollectorFlushResets(t *testing.T) {
	c := NewCollector()
	c.RecordBirth(components.Plant)
	c.RecordBirth(components.Herbivore)
	c.RecordDeath(components.Plant)
	c.RecordHunt()
	c.RecordHunt()
	c.RecordKill()
	c.RecordDisaster()

	var pops [components.SpeciesCount]int
	pops[components.Plant] = 10

	stats := c.Flush(50, pops, 48, 52, 0.8, 1.1)
	if stats.Births != 2 || stats.Deaths != 1 {
		t.Errorf("births/deaths = %d/%d, want 2/1", stats.Births, stats.Deaths)
	}
	if stats.HuntRate != 0.5 {
		t.Errorf("hunt rate = %f, want 0.5", stats.HuntRate)
	}
	if stats.Plants != 10 {
		t.Errorf("plants = %d, want 10", stats.Plants)
	}
	if stats.Disasters != 1 {
		t.Errorf("disasters = %d, want 1", stats.Disasters)
	}

	// Counters reset, next window starts where this one ended.
	next := c.Flush(100, pops, 50, 50, 0, 0)
	if next.Births != 0 || next.Hunts != 0 {
		t.Errorf("counters not reset: births=%d hunts=%d", next.Births, next.Hunts)
	}
	if next.WindowStart != 50 {
		t.Errorf("window start = %d, want 50", next.WindowStart)
	}
}
