package sim

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"terrarium/components"
	"terrarium/config"
)

// Populate rebuilds the world from the current configuration: fresh arena
// and terrain, reset atmosphere and sky, generation back to 0, history
// cleared. Seeded plant colonies go in first, then each species is filled
// by density over the remaining cells.
func (w *World) Populate() {
	w.initArena()
	w.terrain = generateTerrain(w.width, w.height, w.seed, terrainParams{
		noiseScale:       w.cfg.Terrain.NoiseScale,
		waterLevel:       w.cfg.Terrain.WaterLevel,
		mountainLevel:    w.cfg.Terrain.MountainLevel,
		fertileThreshold: w.cfg.Terrain.FertileThreshold,
		barrenThreshold:  w.cfg.Terrain.BarrenThreshold,
	})

	w.atmos = Atmosphere{
		O2:       w.cfg.Atmosphere.O2,
		CO2:      w.cfg.Atmosphere.CO2,
		Sunlight: w.cfg.Atmosphere.Sunlight,
	}
	w.sky = sky{}
	w.disasters = w.disasters[:0]
	w.sinceDisaster = 0
	w.generation = 0
	w.history.Clear()

	w.seedColonies()
	for sp := components.Species(0); sp < components.SpeciesCount; sp++ {
		if sp == components.DeadMatter {
			continue
		}
		w.fillDensity(sp, w.cfg.Population.Density(sp))
	}

	w.recount()
	slog.Info("world populated",
		"width", w.width, "height", w.height,
		"living", w.LivingCount(), "seed", w.seed)
}

// seedColonies places clustered plant groups before the random fill so the
// board starts with viable spread nuclei instead of isolated singletons.
func (w *World) seedColonies() {
	radius := w.cfg.Population.ColonyRadius
	for i := 0; i < w.cfg.Population.ColonySeeds; i++ {
		cx := w.rng.Intn(w.width)
		cy := w.rng.Intn(w.height)
		center := components.Position{X: cx, Y: cy}

		w.trySpawn(components.Plant, center)
		for _, n := range w.neighbors(nil, center, radius) {
			if w.rng.Float64() < 0.5 {
				w.trySpawn(components.Plant, n)
			}
		}
	}
}

// fillDensity spawns a species over empty passable cells at the given
// probability per cell.
func (w *World) fillDensity(sp components.Species, density float64) {
	if density <= 0 {
		return
	}
	for y := 0; y < w.height; y++ {
		for x := 0; x < w.width; x++ {
			if w.rng.Float64() >= density {
				continue
			}
			pos := components.Position{X: x, Y: y}
			e, ok := w.trySpawn(sp, pos)
			if !ok {
				continue
			}
			// A fraction of starting animals carry the disease.
			if sp.IsAnimal() && w.rng.Float64() < w.cfg.Disease.SeedChance {
				w.infect(e)
			}
		}
	}
}

// trySpawn spawns a species at pos when the cell is empty and passable.
func (w *World) trySpawn(sp components.Species, pos components.Position) (ecs.Entity, bool) {
	idx := w.idx(pos.X, pos.Y)
	if w.grid[idx] != noEntity || !w.terrain[idx].Passable(sp) {
		return noEntity, false
	}
	return w.spawnEntity(sp, pos, nil), true
}

// Reset repopulates the world with the existing configuration and seed,
// restarting the random stream so the same world regenerates.
func (w *World) Reset() {
	w.rng = rand.New(rand.NewSource(w.seed))
	w.Populate()
}

// ApplyPreset overwrites the configuration with a named preset on top of
// the defaults and repopulates.
func (w *World) ApplyPreset(name string) error {
	cfg := config.Default()
	if err := config.ApplyPreset(cfg, name); err != nil {
		return err
	}
	cfg.World = w.cfg.World // presets tune rates, not grid size
	w.cfg = cfg
	w.Populate()
	return nil
}

// SpawnAt places a new entity of the species at pos, subject to occupancy
// and terrain passability.
func (w *World) SpawnAt(pos components.Position, sp components.Species) error {
	if !w.inBounds(pos.X, pos.Y) {
		return fmt.Errorf("spawn at %d,%d: out of bounds", pos.X, pos.Y)
	}
	if _, ok := w.trySpawn(sp, pos); !ok {
		return fmt.Errorf("spawn at %d,%d: cell occupied or impassable for %s", pos.X, pos.Y, sp)
	}
	w.recount()
	return nil
}

// KillAt removes whatever occupies pos. Removing an empty cell is a no-op.
func (w *World) KillAt(pos components.Position) {
	if !w.inBounds(pos.X, pos.Y) {
		return
	}
	e := w.grid[w.idx(pos.X, pos.Y)]
	if e == noEntity {
		return
	}
	w.removeEntity(e, pos)
	w.recount()
}
