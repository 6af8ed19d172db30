package sim

import (
	"github.com/mlange-42/ark/ecs"

	"terrarium/components"
)

// updateDecomposer runs one tick for a decomposer: consume adjacent dead
// matter (recycling it into terrain fertility and CO2), drift toward food
// or other decomposers, reproduce asexually, die without residue.
func (w *World) updateDecomposer(e ecs.Entity, pos components.Position) {
	org := w.orgMap.Get(e)
	g := w.genMap.Get(e)
	band := w.cfg.Species.For(components.Decomposer)

	w.updateDisease(e, pos)

	fed := false
	if target, tpos, ok := w.findNeighborOfType(pos, components.DeadMatter); ok {
		tOrg := w.orgMap.Get(target)
		gain := tOrg.Energy * band.FeedFraction * g.Efficiency
		org.Energy += gain

		// Recycling: nutrients back to the soil, carbon to the air.
		w.terrain[w.idx(tpos.X, tpos.Y)].enrichFertility(0.05)
		w.atmos.ReleaseCO2(band.GasRate)
		w.removeEntity(target, tpos)
		fed = true
	}

	if w.rng.Float64() < band.MoveChance*g.Speed {
		var dest components.Position
		var ok bool
		if !fed {
			if _, fpos, found := w.findEntityInRange(pos, components.DeadMatter, band.HuntRange, g.Perception); found {
				dest, ok = w.seekMove(pos, components.Decomposer, fpos)
			}
		}
		if !ok {
			dest, ok = w.findColonyBiasedMove(e, pos, components.Decomposer)
		}
		if ok {
			w.moveEntity(e, pos, dest)
			pos = dest
		}
	}

	w.upkeep(e)

	// Asexual: a lone decomposer splits once over the energy threshold.
	if canReproduce(org, band) && w.rng.Float64() < reproChance(org, g, band) {
		if spot, ok := w.findEmptyNeighbor(pos, components.Decomposer); ok {
			child := w.inheritGenetics(g, g)
			w.spawnEntity(components.Decomposer, spot, &child)
			org.Energy -= band.ReproCost
			org.ReproCooldown = band.ReproCooldown
			w.collector.RecordBirth(components.Decomposer)
		}
	}

	w.checkDeath(e, pos)
}
