package sim

import (
	"testing"
)

func TestSeasonsCycleInOrder(t *testing.T) {
	cfg := emptyConfig(5, 5)
	cfg.Weather.SeasonLength = 3
	w := New(cfg, 19)

	want := []Season{Spring, Summer, Autumn, Winter, Spring}
	for _, season := range want {
		if w.CurrentSeason() != season {
			t.Fatalf("season = %s, want %s at generation %d", w.CurrentSeason(), season, w.Generation())
		}
		for i := 0; i < 3; i++ {
			w.Step()
		}
	}
}

func TestRollWeatherHonorsWeights(t *testing.T) {
	cfg := emptyConfig(5, 5)
	cfg.Weather.SpringWeights = []float64{0, 0, 1, 0} // drought only
	w := New(cfg, 23)

	for i := 0; i < 20; i++ {
		if got := w.rollWeather(); got != Drought {
			t.Fatalf("roll %d = %s, want Drought", i, got)
		}
	}
}

func TestRollWeatherDegenerateWeights(t *testing.T) {
	cfg := emptyConfig(5, 5)
	cfg.Weather.SpringWeights = []float64{0, 0, 0, 0}
	w := New(cfg, 29)
	if got := w.rollWeather(); got != Clear {
		t.Errorf("zero weights roll = %s, want Clear", got)
	}

	cfg.Weather.SpringWeights = []float64{1}
	if got := w.rollWeather(); got != Clear {
		t.Errorf("short weight table roll = %s, want Clear", got)
	}
}

func TestDroughtDriesGround(t *testing.T) {
	cfg := emptyConfig(8, 8)
	cfg.Weather.SpringWeights = []float64{0, 0, 1, 0}
	cfg.Weather.SummerWeights = []float64{0, 0, 1, 0}
	cfg.Weather.MinDuration = 100
	cfg.Weather.MaxDuration = 100
	w := New(cfg, 31)

	// Pick a cell with moisture to lose.
	x, y := -1, -1
	var before TerrainCell
	for cy := 0; cy < 8 && x < 0; cy++ {
		for cx := 0; cx < 8; cx++ {
			if c, _ := w.TerrainAt(cx, cy); c.Moisture > 0.2 {
				x, y, before = cx, cy, c
				break
			}
		}
	}
	if x < 0 {
		t.Skip("no moist cell in generated terrain")
	}

	for i := 0; i < 10; i++ {
		w.Step()
	}
	after, _ := w.TerrainAt(x, y)
	if after.Moisture >= before.Moisture {
		t.Errorf("moisture %f -> %f, want a decrease under sustained drought",
			before.Moisture, after.Moisture)
	}
}
