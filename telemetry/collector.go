package telemetry

import (
	"log/slog"

	"terrarium/components"
)

// Collector accumulates per-generation event counts and produces
// GenerationStats windows for logging and CSV export.
type Collector struct {
	windowStart int

	births     [components.SpeciesCount]int
	deaths     [components.SpeciesCount]int
	hunts      int
	kills      int
	infections int
	recoveries int
	disasters  int
}

// NewCollector creates an empty stats collector.
func NewCollector() *Collector {
	return &Collector{}
}

// RecordBirth records a birth event for a species.
func (c *Collector) RecordBirth(sp components.Species) {
	c.births[sp]++
}

// RecordDeath records a death event for a species.
func (c *Collector) RecordDeath(sp components.Species) {
	c.deaths[sp]++
}

// RecordHunt records a hunt attempt.
func (c *Collector) RecordHunt() {
	c.hunts++
}

// RecordKill records a successful hunt.
func (c *Collector) RecordKill() {
	c.kills++
}

// RecordInfection records a new infection.
func (c *Collector) RecordInfection() {
	c.infections++
}

// RecordRecovery records an infection that ran its course.
func (c *Collector) RecordRecovery() {
	c.recoveries++
}

// RecordDisaster records a triggered disaster.
func (c *Collector) RecordDisaster() {
	c.disasters++
}

// GenerationStats holds aggregated event counts for a window of generations
// plus the state sampled at window end.
type GenerationStats struct {
	WindowStart int `csv:"-"`
	WindowEnd   int `csv:"generation"`

	// Population counts at window end
	Plants     int `csv:"plants"`
	Herbivores int `csv:"herbivores"`
	Omnivores  int `csv:"omnivores"`
	Carnivores int `csv:"carnivores"`
	Apex       int `csv:"apex"`
	Decomp     int `csv:"decomposers"`
	Parasites  int `csv:"parasites"`
	DeadMatter int `csv:"dead_matter"`

	// Events during window
	Births     int `csv:"births"`
	Deaths     int `csv:"deaths"`
	Hunts      int `csv:"hunts"`
	Kills      int `csv:"kills"`
	Infections int `csv:"infections"`
	Recoveries int `csv:"recoveries"`
	Disasters  int `csv:"disasters"`

	HuntRate float64 `csv:"hunt_rate"`

	// Sampled state
	O2           float64 `csv:"o2"`
	CO2          float64 `csv:"co2"`
	Biodiversity float64 `csv:"biodiversity"`
	MeanFitness  float64 `csv:"mean_fitness"`
}

// Flush produces a GenerationStats for the window ending at the given
// generation and resets the counters. The caller supplies the sampled state.
func (c *Collector) Flush(generation int, pops [components.SpeciesCount]int, o2, co2, biodiversity, meanFitness float64) GenerationStats {
	var births, deaths int
	for sp := components.Species(0); sp < components.SpeciesCount; sp++ {
		births += c.births[sp]
		deaths += c.deaths[sp]
	}

	var huntRate float64
	if c.hunts > 0 {
		huntRate = float64(c.kills) / float64(c.hunts)
	}

	stats := GenerationStats{
		WindowStart: c.windowStart,
		WindowEnd:   generation,

		Plants:     pops[components.Plant],
		Herbivores: pops[components.Herbivore],
		Omnivores:  pops[components.Omnivore],
		Carnivores: pops[components.Carnivore],
		Apex:       pops[components.ApexPredator],
		Decomp:     pops[components.Decomposer],
		Parasites:  pops[components.Parasite],
		DeadMatter: pops[components.DeadMatter],

		Births:     births,
		Deaths:     deaths,
		Hunts:      c.hunts,
		Kills:      c.kills,
		Infections: c.infections,
		Recoveries: c.recoveries,
		Disasters:  c.disasters,

		HuntRate: huntRate,

		O2:           o2,
		CO2:          co2,
		Biodiversity: biodiversity,
		MeanFitness:  meanFitness,
	}

	*c = Collector{windowStart: generation}
	return stats
}

// Log emits the window summary through slog.
func (s GenerationStats) Log() {
	slog.Info("generation window",
		"gen", s.WindowEnd,
		"plants", s.Plants,
		"herbivores", s.Herbivores,
		"omnivores", s.Omnivores,
		"carnivores", s.Carnivores,
		"apex", s.Apex,
		"decomposers", s.Decomp,
		"parasites", s.Parasites,
		"dead", s.DeadMatter,
		"births", s.Births,
		"deaths", s.Deaths,
		"hunt_rate", s.HuntRate,
		"o2", s.O2,
		"co2", s.CO2,
		"biodiversity", s.Biodiversity,
	)
}
