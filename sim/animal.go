package sim

import (
	"github.com/mlange-42/ark/ecs"

	"terrarium/components"
)

// packRadius is the neighborhood hunters sense for the pack bonus.
const packRadius = 2

// updateAnimal runs one tick for a grazing or hunting species: gas
// exchange, disease upkeep, feeding down the species' prey priority list,
// flee/seek/wander movement, upkeep, sexual reproduction, death check.
func (w *World) updateAnimal(e ecs.Entity, pos components.Position) {
	sp := w.orgMap.Get(e).Species

	w.breatheO2(e)
	w.updateDisease(e, pos)

	fed := w.tryFeed(e, pos, sp)

	// Position may be stale after movement; everything below re-reads it.
	pos = w.moveAnimal(e, pos, sp, fed)

	w.upkeep(e)
	w.tryMate(e, pos, sp)
	w.checkDeath(e, pos)
}

// tryFeed walks the species' prey priority list and attacks the first
// target found adjacent. Returns whether the animal ate this tick.
func (w *World) tryFeed(e ecs.Entity, pos components.Position, sp components.Species) bool {
	for _, prey := range components.PreyOf(sp) {
		target, tpos, ok := w.findNeighborOfType(pos, prey)
		if !ok {
			continue
		}
		if w.attack(e, pos, target, tpos) {
			return true
		}
		// Attack attempted and failed; no second target this tick.
		return false
	}
	return false
}

// attack resolves one hunt attempt. Success odds are the species' base
// chance weighted by attacker speed against defender camouflage and the
// attacker's pack bonus, clamped to [0.05, 0.95]. Plants are uprooted
// outright; animals leave dead matter holding part of their energy.
func (w *World) attack(e ecs.Entity, pos components.Position, target ecs.Entity, tpos components.Position) bool {
	org := w.orgMap.Get(e)
	g := w.genMap.Get(e)
	band := w.cfg.Species.For(org.Species)
	tOrg := w.orgMap.Get(target)

	// Grazing on plants and scavenging dead matter always succeed.
	if tOrg.Species == components.Plant || tOrg.Species == components.DeadMatter {
		gain := tOrg.Energy * band.FeedFraction * g.Efficiency
		org.Energy += gain
		w.removeEntity(target, tpos)
		return true
	}

	w.collector.RecordHunt()

	tg := w.genMap.Get(target)
	packBonus := 1 + 0.1*float64(w.countNearbyOfType(pos, org.Species, packRadius))
	if packBonus > 1.5 {
		packBonus = 1.5
	}
	chance := clamp(band.HuntChance*(g.Speed/tg.Camouflage)*packBonus, 0.05, 0.95)
	if w.rng.Float64() >= chance {
		return false
	}

	gain := tOrg.Energy * band.FeedFraction * g.Efficiency
	org.Energy += gain
	w.collector.RecordKill()
	w.collector.RecordDeath(tOrg.Species)
	if tOrg.Species.LeavesResidue() {
		w.convertToDead(target)
	} else {
		w.removeEntity(target, tpos)
	}
	return true
}

// moveAnimal applies the movement priority: flee a detected predator, seek
// detected food if still hungry, otherwise colony-biased wander. Returns
// the (possibly updated) position.
func (w *World) moveAnimal(e ecs.Entity, pos components.Position, sp components.Species, fed bool) components.Position {
	org := w.orgMap.Get(e)
	g := w.genMap.Get(e)
	band := w.cfg.Species.For(sp)

	moveChance := band.MoveChance * g.Speed
	if org.Stage == components.Juvenile {
		moveChance *= 0.7
	}
	if w.rng.Float64() >= moveChance {
		return pos
	}

	var dest components.Position
	var ok bool

	if threatPos, found := w.detectThreat(pos, sp, g.Perception); found {
		dest, ok = w.fleeMove(pos, sp, threatPos)
	} else if !fed {
		if foodPos, found := w.detectFood(pos, sp, band.HuntRange, g.Perception); found {
			dest, ok = w.seekMove(pos, sp, foodPos)
		}
	}
	if !ok {
		dest, ok = w.findColonyBiasedMove(e, pos, sp)
	}
	if !ok {
		return pos
	}

	w.moveEntity(e, pos, dest)
	return dest
}

// detectThreat scans for the nearest predator of this species within its
// hunt range, scaled by the potential victim's perception.
func (w *World) detectThreat(pos components.Position, sp components.Species, perception float64) (components.Position, bool) {
	bestDist := -1.0
	var best components.Position
	found := false

	for pred := components.Species(0); pred < components.SpeciesCount; pred++ {
		if !preysOn(pred, sp) {
			continue
		}
		rng := w.cfg.Species.For(pred).HuntRange
		if _, ppos, ok := w.findEntityInRange(pos, pred, rng, perception); ok {
			dx := float64(ppos.X - pos.X)
			dy := float64(ppos.Y - pos.Y)
			dist := dx*dx + dy*dy
			if !found || dist < bestDist {
				bestDist = dist
				best = ppos
				found = true
			}
		}
	}
	return best, found
}

// detectFood scans the prey priority list for the nearest visible target.
func (w *World) detectFood(pos components.Position, sp components.Species, rng int, perception float64) (components.Position, bool) {
	for _, prey := range components.PreyOf(sp) {
		if _, fpos, ok := w.findEntityInRange(pos, prey, rng, perception); ok {
			return fpos, true
		}
	}
	return components.Position{}, false
}

// preysOn reports whether pred's priority list includes sp.
func preysOn(pred, sp components.Species) bool {
	for _, p := range components.PreyOf(pred) {
		if p == sp {
			return true
		}
	}
	return false
}

// tryMate attempts sexual reproduction with an adjacent same-species mate
// that also meets the energy threshold. Placement is resolved before either
// parent is debited; both pay the cost and reset their cooldowns.
func (w *World) tryMate(e ecs.Entity, pos components.Position, sp components.Species) {
	org := w.orgMap.Get(e)
	g := w.genMap.Get(e)
	band := w.cfg.Species.For(sp)

	if !canReproduce(org, band) {
		return
	}
	if w.rng.Float64() >= reproChance(org, g, band) {
		return
	}

	mate, _, ok := w.findNeighborOfType(pos, sp)
	if !ok {
		return
	}
	mateOrg := w.orgMap.Get(mate)
	if mateOrg.Energy < band.ReproThreshold {
		return
	}

	spot, ok := w.findEmptyNeighbor(pos, sp)
	if !ok {
		return
	}

	child := w.inheritGenetics(g, w.genMap.Get(mate))
	w.spawnEntity(sp, spot, &child)

	org.Energy -= band.ReproCost
	org.ReproCooldown = band.ReproCooldown
	mateOrg.Energy -= band.ReproCost
	mateOrg.ReproCooldown = band.ReproCooldown
	w.collector.RecordBirth(sp)
}
