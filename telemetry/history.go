package telemetry

// HistoryPoint is one periodic sample of world state for trend charts and
// CSV export.
type HistoryPoint struct {
	Generation int `csv:"generation"`

	Plants     int `csv:"plants"`
	Herbivores int `csv:"herbivores"`
	Omnivores  int `csv:"omnivores"`
	Carnivores int `csv:"carnivores"`
	Apex       int `csv:"apex"`
	Decomp     int `csv:"decomposers"`
	Parasites  int `csv:"parasites"`
	DeadMatter int `csv:"dead_matter"`

	O2           float64 `csv:"o2"`
	CO2          float64 `csv:"co2"`
	Biodiversity float64 `csv:"biodiversity"`
	MeanFitness  float64 `csv:"mean_fitness"`
}

// History is a bounded buffer of history points. When full, appending
// evicts the oldest point.
type History struct {
	points []HistoryPoint
	cap    int
}

// NewHistory creates a history buffer holding at most cap points.
// A cap below 1 defaults to 1.
func NewHistory(cap int) *History {
	if cap < 1 {
		cap = 1
	}
	return &History{cap: cap}
}

// Append records a point, evicting the oldest when at capacity.
func (h *History) Append(p HistoryPoint) {
	if len(h.points) == h.cap {
		copy(h.points, h.points[1:])
		h.points[len(h.points)-1] = p
		return
	}
	h.points = append(h.points, p)
}

// Points returns the recorded points, oldest first. The returned slice is
// the internal buffer; callers must not mutate it.
func (h *History) Points() []HistoryPoint {
	return h.points
}

// Len returns the number of recorded points.
func (h *History) Len() int { return len(h.points) }

// Clear drops all recorded points.
func (h *History) Clear() {
	h.points = h.points[:0]
}
