// Package sim implements the grid ecosystem simulation core: the entity
// arena, spatial queries, per-species behavior rules, and the generation
// step orchestrator. Rendering and UI are external consumers of the
// read-only snapshot accessors.
package sim

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"terrarium/components"
	"terrarium/config"
	"terrarium/telemetry"
)

// noEntity is the empty grid slot marker.
var noEntity ecs.Entity

// World owns the complete simulation state. All mutation happens on the
// goroutine calling Step; consumers read snapshots between steps.
type World struct {
	cfg  *config.Config
	rng  *rand.Rand
	seed int64

	arena  *ecs.World
	mapper *ecs.Map5[
		components.Position,
		components.Organism,
		components.Genetics,
		components.Health,
		components.Trail,
	]

	// Individual component mappers for lookups
	posMap    *ecs.Map1[components.Position]
	orgMap    *ecs.Map1[components.Organism]
	genMap    *ecs.Map1[components.Genetics]
	healthMap *ecs.Map1[components.Health]
	trailMap  *ecs.Map1[components.Trail]

	width, height int
	grid          []ecs.Entity  // entity handle per cell; zero handle = empty
	terrain       []TerrainCell // parallel to grid

	atmos Atmosphere
	sky   sky

	disasters     []Disaster
	sinceDisaster int

	generation int
	pops       [components.SpeciesCount]int

	collector *telemetry.Collector
	history   *telemetry.History

	worklist []workItem // reused across ticks
}

// workItem is one shuffled worklist entry: the entity handle, the cell it
// occupied, and the species it was when the tick started. A mid-tick
// conversion (prey turned to DeadMatter in place) keeps the handle, so
// re-validation checks species too.
type workItem struct {
	e   ecs.Entity
	pos components.Position
	sp  components.Species
}

// New creates a world from the configuration, generates terrain, and seeds
// the initial population. The same seed reproduces the same world.
func New(cfg *config.Config, seed int64) *World {
	w := &World{
		cfg:    cfg,
		seed:   seed,
		rng:    rand.New(rand.NewSource(seed)),
		width:  cfg.World.Width,
		height: cfg.World.Height,
	}
	w.initArena()
	w.collector = telemetry.NewCollector()
	w.history = telemetry.NewHistory(cfg.Telemetry.HistoryCap)
	w.Populate()
	return w
}

// initArena builds a fresh ECS world, mappers, and an empty grid.
func (w *World) initArena() {
	w.arena = ecs.NewWorld()
	w.mapper = ecs.NewMap5[
		components.Position,
		components.Organism,
		components.Genetics,
		components.Health,
		components.Trail,
	](w.arena)
	w.posMap = ecs.NewMap1[components.Position](w.arena)
	w.orgMap = ecs.NewMap1[components.Organism](w.arena)
	w.genMap = ecs.NewMap1[components.Genetics](w.arena)
	w.healthMap = ecs.NewMap1[components.Health](w.arena)
	w.trailMap = ecs.NewMap1[components.Trail](w.arena)
	w.grid = make([]ecs.Entity, w.width*w.height)
}

func (w *World) idx(x, y int) int { return y*w.width + x }

func (w *World) inBounds(x, y int) bool {
	return x >= 0 && x < w.width && y >= 0 && y < w.height
}

// spawnEntity creates an entity of the given species at pos with a banded
// random energy and max age. genetics may be nil for a fresh random vector.
// The caller must have verified pos is empty and passable.
func (w *World) spawnEntity(sp components.Species, pos components.Position, gen *components.Genetics) ecs.Entity {
	band := w.cfg.Species.For(sp)

	var g components.Genetics
	if gen != nil {
		g = *gen
	} else {
		g = w.freshGenetics()
	}

	maxAge := w.randBetween(band.MaxAgeMin, band.MaxAgeMax)
	maxAge = int(float64(maxAge) * g.Lifespan)
	if maxAge < 1 {
		maxAge = 1
	}

	energy := band.InitialEnergyMin
	if band.InitialEnergyMax > band.InitialEnergyMin {
		energy += w.rng.Float64() * (band.InitialEnergyMax - band.InitialEnergyMin)
	}
	energy *= g.Size

	org := components.Organism{
		Species:       sp,
		Energy:        energy,
		MaxAge:        maxAge,
		Stage:         components.StageFor(0, maxAge),
		ReproCooldown: band.ReproCooldown,
	}
	if sp == components.DeadMatter {
		org.Decay = band.MaxAgeMin
	}

	p := pos
	health := components.Health{}
	trail := components.Trail{}

	e := w.mapper.NewEntity(&p, &org, &g, &health, &trail)
	w.grid[w.idx(pos.X, pos.Y)] = e
	return e
}

// removeEntity deletes an entity and clears its grid slot. A dying
// parasite releases its grip on the host's attachment count.
func (w *World) removeEntity(e ecs.Entity, pos components.Position) {
	idx := w.idx(pos.X, pos.Y)
	if w.grid[idx] == e {
		w.grid[idx] = noEntity
	}
	org := w.orgMap.Get(e)
	if org.Species == components.Parasite && org.Host != noEntity && w.arena.Alive(org.Host) {
		if hostOrg := w.orgMap.Get(org.Host); hostOrg.Parasites > 0 {
			hostOrg.Parasites--
		}
	}
	w.detachParasites(e)
	w.mapper.Remove(e)
}

// convertToDead turns a dying entity into decaying matter in place,
// retaining a fraction of its energy for decomposers.
func (w *World) convertToDead(e ecs.Entity) {
	org := w.orgMap.Get(e)
	w.detachParasites(e)

	residue := org.Energy * 0.5
	if residue < 5 {
		residue = 5
	}

	band := w.cfg.Species.For(components.DeadMatter)
	*org = components.Organism{
		Species: components.DeadMatter,
		Energy:  residue,
		Stage:   components.StageFor(0, 0),
		Decay:   w.randBetween(band.MaxAgeMin, band.MaxAgeMax),
	}
	*w.healthMap.Get(e) = components.Health{}
}

// detachParasites releases any parasites latched onto a dying host.
func (w *World) detachParasites(host ecs.Entity) {
	if w.orgMap.Get(host).Parasites == 0 {
		return
	}
	for _, e := range w.grid {
		if e == noEntity || e == host {
			continue
		}
		org := w.orgMap.Get(e)
		if org.Species == components.Parasite && org.Host == host {
			org.Host = noEntity
		}
	}
}

// moveEntity is the single authoritative move operation: it updates the
// grid slot and the entity's position component together.
func (w *World) moveEntity(e ecs.Entity, from, to components.Position) {
	fromIdx := w.idx(from.X, from.Y)
	toIdx := w.idx(to.X, to.Y)
	if w.grid[fromIdx] != e || w.grid[toIdx] != noEntity {
		return
	}
	w.grid[fromIdx] = noEntity
	w.grid[toIdx] = e
	pos := w.posMap.Get(e)
	pos.X, pos.Y = to.X, to.Y
	w.trailMap.Get(e).Push(to)
}

// recount rebuilds the per-species population tally from the grid.
func (w *World) recount() {
	w.pops = [components.SpeciesCount]int{}
	for _, e := range w.grid {
		if e == noEntity {
			continue
		}
		w.pops[w.orgMap.Get(e).Species]++
	}
}

// --- Read-only snapshot accessors ---

// EntityView is a read-only snapshot of one grid occupant.
type EntityView struct {
	Species  components.Species
	Position components.Position
	Energy   float64
	Age      int
	MaxAge   int
	Stage    components.Stage
	Infected bool
	Immune   bool
	Genetics components.Genetics
}

// EntityAt returns a snapshot of the entity at (x, y), if any.
func (w *World) EntityAt(x, y int) (EntityView, bool) {
	if !w.inBounds(x, y) {
		return EntityView{}, false
	}
	e := w.grid[w.idx(x, y)]
	if e == noEntity {
		return EntityView{}, false
	}
	org := w.orgMap.Get(e)
	health := w.healthMap.Get(e)
	return EntityView{
		Species:  org.Species,
		Position: *w.posMap.Get(e),
		Energy:   org.Energy,
		Age:      org.Age,
		MaxAge:   org.MaxAge,
		Stage:    org.Stage,
		Infected: health.Infected,
		Immune:   health.Immune,
		Genetics: *w.genMap.Get(e),
	}, true
}

// TrailAt returns the recent movement history of the entity at (x, y),
// newest first, for overlay consumers.
func (w *World) TrailAt(x, y int) []components.Position {
	if !w.inBounds(x, y) {
		return nil
	}
	e := w.grid[w.idx(x, y)]
	if e == noEntity {
		return nil
	}
	return w.trailMap.Get(e).Recent(components.TrailCap)
}

// Populations returns the per-species population counts.
func (w *World) Populations() [components.SpeciesCount]int { return w.pops }

// LivingCount returns the number of living entities (DeadMatter excluded).
func (w *World) LivingCount() int {
	var n int
	for sp := components.Species(0); sp < components.SpeciesCount; sp++ {
		if sp.IsLiving() {
			n += w.pops[sp]
		}
	}
	return n
}

// AtmosphereState returns the current atmosphere.
func (w *World) AtmosphereState() Atmosphere { return w.atmos }

// Generation returns the generation counter.
func (w *World) Generation() int { return w.generation }

// Size returns the grid dimensions.
func (w *World) Size() (width, height int) { return w.width, w.height }

// Seed returns the RNG seed the world was created with.
func (w *World) Seed() int64 { return w.seed }

// TerrainAt returns the terrain cell at (x, y).
func (w *World) TerrainAt(x, y int) (TerrainCell, bool) {
	if !w.inBounds(x, y) {
		return TerrainCell{}, false
	}
	return w.terrain[w.idx(x, y)], true
}

// CurrentSeason returns the active season.
func (w *World) CurrentSeason() Season { return w.sky.Season }

// CurrentWeather returns the active weather state.
func (w *World) CurrentWeather() Weather { return w.sky.Weather }

// History returns the recorded history points, oldest first.
func (w *World) History() []telemetry.HistoryPoint { return w.history.Points() }

// Biodiversity returns the normalized Shannon entropy over living species.
func (w *World) Biodiversity() float64 {
	return telemetry.Biodiversity(w.livingCounts())
}

func (w *World) livingCounts() []int {
	counts := make([]int, 0, components.SpeciesCount)
	for sp := components.Species(0); sp < components.SpeciesCount; sp++ {
		if sp.IsLiving() {
			counts = append(counts, w.pops[sp])
		}
	}
	return counts
}

// meanFitness averages the genetic fitness of all living entities.
func (w *World) meanFitness() float64 {
	var vals []float64
	for _, e := range w.grid {
		if e == noEntity {
			continue
		}
		if !w.orgMap.Get(e).Species.IsLiving() {
			continue
		}
		vals = append(vals, w.genMap.Get(e).Fitness())
	}
	return telemetry.MeanFitness(vals)
}
