package sim

// Season cycles Spring -> Summer -> Autumn -> Winter.
type Season uint8

const (
	Spring Season = iota
	Summer
	Autumn
	Winter
)

// String returns the display name for a season.
func (s Season) String() string {
	switch s {
	case Spring:
		return "Spring"
	case Summer:
		return "Summer"
	case Autumn:
		return "Autumn"
	case Winter:
		return "Winter"
	}
	return "Unknown"
}

// growthMod is the seasonal plant growth multiplier.
func (s Season) growthMod() float64 {
	switch s {
	case Spring:
		return 1.2
	case Summer:
		return 1.0
	case Autumn:
		return 0.9
	case Winter:
		return 0.6
	}
	return 1.0
}

// Weather is the current global weather state.
type Weather uint8

const (
	Clear Weather = iota
	Rain
	Drought
	Storm

	weatherCount
)

// String returns the display name for a weather state.
func (w Weather) String() string {
	switch w {
	case Clear:
		return "Clear"
	case Rain:
		return "Rain"
	case Drought:
		return "Drought"
	case Storm:
		return "Storm"
	}
	return "Unknown"
}

// dayLength is the time-of-day cycle in generations; the second half is
// night, which dims effective sunlight for photosynthesis.
const dayLength = 40

// sky holds the time, season, and weather counters driving global modifiers.
type sky struct {
	TimeOfDay   int
	Season      Season
	SeasonTick  int
	Weather     Weather
	WeatherLeft int
}

// advanceSky steps the modular time counters and re-rolls weather on expiry
// of its randomized-length timer, weighted by the current season.
func (w *World) advanceSky() {
	w.sky.TimeOfDay = (w.sky.TimeOfDay + 1) % dayLength

	w.sky.SeasonTick++
	if seasonLen := w.cfg.Weather.SeasonLength; seasonLen > 0 && w.sky.SeasonTick >= seasonLen {
		w.sky.SeasonTick = 0
		w.sky.Season = (w.sky.Season + 1) % 4
	}

	w.sky.WeatherLeft--
	if w.sky.WeatherLeft <= 0 {
		w.sky.Weather = w.rollWeather()
		w.sky.WeatherLeft = w.randBetween(w.cfg.Weather.MinDuration, w.cfg.Weather.MaxDuration)
	}

	w.applyWeatherToTerrain()
}

// rollWeather draws the next weather state from the season's weight table.
func (w *World) rollWeather() Weather {
	weights := w.seasonWeights()
	var total float64
	for _, wt := range weights {
		total += wt
	}
	if total <= 0 {
		return Clear
	}

	roll := w.rng.Float64() * total
	for i, wt := range weights {
		roll -= wt
		if roll < 0 {
			return Weather(i)
		}
	}
	return Clear
}

func (w *World) seasonWeights() []float64 {
	var weights []float64
	switch w.sky.Season {
	case Spring:
		weights = w.cfg.Weather.SpringWeights
	case Summer:
		weights = w.cfg.Weather.SummerWeights
	case Autumn:
		weights = w.cfg.Weather.AutumnWeights
	case Winter:
		weights = w.cfg.Weather.WinterWeights
	}
	if len(weights) < int(weatherCount) {
		return []float64{1, 0, 0, 0}
	}
	return weights
}

// applyWeatherToTerrain nudges ground moisture toward the weather's regime.
// Water cells stay saturated; mountains never hold moisture.
func (w *World) applyWeatherToTerrain() {
	var delta float64
	switch w.sky.Weather {
	case Rain, Storm:
		delta = 0.01
	case Drought:
		delta = -0.015
	default:
		return
	}

	for i := range w.terrain {
		t := &w.terrain[i]
		if t.Type == TerrainWater || t.Type == TerrainMountain {
			continue
		}
		t.Moisture = clamp(t.Moisture+delta, 0, 1)
	}
}

// effectiveSunlight is the photosynthesis light level after the day/night
// cycle and weather dimming.
func (w *World) effectiveSunlight() float64 {
	light := w.atmos.Sunlight
	if w.sky.TimeOfDay >= dayLength/2 {
		light *= 0.3 // night
	}
	switch w.sky.Weather {
	case Rain:
		light *= 0.8
	case Storm:
		light *= 0.6
	}
	return light
}

// weatherGrowthMod combines season and weather multipliers for plants.
func (w *World) weatherGrowthMod() float64 {
	mod := w.sky.Season.growthMod()
	switch w.sky.Weather {
	case Rain:
		mod *= 1.2
	case Drought:
		mod *= 0.6
	case Storm:
		mod *= 0.8
	}
	return mod
}

func (w *World) randBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + w.rng.Intn(hi-lo+1)
}
