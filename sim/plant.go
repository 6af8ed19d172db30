package sim

import (
	"github.com/mlange-42/ark/ecs"

	"terrarium/components"
)

// plantColonyRadius is the neighborhood plants sense for the colony bonus
// and for spread eligibility.
const plantColonyRadius = 2

// updatePlant runs one tick for a plant: CO2-conditioned photosynthesis,
// upkeep, spread, death check. Plants never move.
func (w *World) updatePlant(e ecs.Entity, pos components.Position) {
	org := w.orgMap.Get(e)
	g := w.genMap.Get(e)
	band := w.cfg.Species.For(components.Plant)
	terr := w.terrain[w.idx(pos.X, pos.Y)]

	neighbors := w.countNearbyOfType(pos, components.Plant, plantColonyRadius)

	// Photosynthesis runs only while CO2 is available; scarcity starves
	// the plant for gas instead.
	if w.atmos.ConsumeCO2(band.GasRate) {
		colonyBonus := 1 + 0.05*float64(neighbors)
		if colonyBonus > 1.5 {
			colonyBonus = 1.5
		}
		moistureFactor := 0.5 + 0.5*terr.Moisture

		gain := w.effectiveSunlight() * terr.Fertility * moistureFactor *
			colonyBonus * w.weatherGrowthMod() * g.Efficiency
		org.Energy += gain
		w.atmos.ReleaseO2(band.GasRate)
	} else {
		org.Energy -= band.GasPenalty
	}

	w.upkeep(e)

	if canReproduce(org, band) {
		w.spreadPlant(e, pos, neighbors > 0)
	}

	w.checkDeath(e, pos)
}

// spreadPlant attempts seeding into an adjacent cell. With a same-type
// neighbor in the colony radius the plant cross-pollinates at full chance;
// an isolated plant self-pollinates at half chance. Placement is resolved
// before any energy is debited.
func (w *World) spreadPlant(e ecs.Entity, pos components.Position, hasKin bool) {
	org := w.orgMap.Get(e)
	g := w.genMap.Get(e)
	band := w.cfg.Species.For(components.Plant)

	chance := reproChance(org, g, band)
	var mate *components.Genetics
	if hasKin {
		if mateEnt, _, ok := w.findNeighborOfType(pos, components.Plant); ok {
			mate = w.genMap.Get(mateEnt)
		}
	}
	if mate == nil {
		// Self-pollination, reduced odds
		chance *= 0.5
		mate = g
	}

	if w.rng.Float64() >= chance {
		return
	}

	spot, ok := w.findEmptyNeighbor(pos, components.Plant)
	if !ok {
		return
	}

	child := w.inheritGenetics(g, mate)
	w.spawnEntity(components.Plant, spot, &child)
	org.Energy -= band.ReproCost
	org.ReproCooldown = band.ReproCooldown
	w.collector.RecordBirth(components.Plant)
}
