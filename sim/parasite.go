package sim

import (
	"github.com/mlange-42/ark/ecs"

	"terrarium/components"
)

// maxParasitesPerHost caps how many parasites can latch onto one host.
const maxParasitesPerHost = 2

// updateParasite runs one tick for a parasite: attach to an adjacent
// living animal, drain the host, shadow its movement, possibly vector
// disease onto it, reproduce asexually, vanish on death.
func (w *World) updateParasite(e ecs.Entity, pos components.Position) {
	org := w.orgMap.Get(e)
	g := w.genMap.Get(e)
	band := w.cfg.Species.For(components.Parasite)

	w.updateDisease(e, pos)

	if org.Host != noEntity && !w.hostViable(org.Host) {
		org.Host = noEntity
	}

	if org.Host == noEntity {
		w.seekHost(e, pos)
		pos = *w.posMap.Get(e)
	}

	if org.Host != noEntity {
		hostOrg := w.orgMap.Get(org.Host)
		hostPos := *w.posMap.Get(org.Host)

		drain := hostOrg.Energy * band.FeedFraction
		hostOrg.Energy -= drain
		org.Energy += drain * g.Efficiency

		// An infected parasite is a disease vector.
		if w.healthMap.Get(e).Infected && w.rng.Float64() < w.cfg.Disease.TransmitChance {
			w.infect(org.Host)
		}

		// Shadow the host to stay in draining range.
		if chebyshev(pos, hostPos) > 1 {
			if dest, ok := w.seekMove(pos, components.Parasite, hostPos); ok {
				w.moveEntity(e, pos, dest)
				pos = dest
			}
		}
	}

	w.upkeep(e)

	if canReproduce(org, band) && w.rng.Float64() < reproChance(org, g, band) {
		if spot, ok := w.findEmptyNeighbor(pos, components.Parasite); ok {
			child := w.inheritGenetics(g, g)
			w.spawnEntity(components.Parasite, spot, &child)
			org.Energy -= band.ReproCost
			org.ReproCooldown = band.ReproCooldown
			w.collector.RecordBirth(components.Parasite)
		}
	}

	w.checkDeath(e, pos)
}

// hostViable reports whether a host handle still refers to a living,
// drainable animal.
func (w *World) hostViable(host ecs.Entity) bool {
	if !w.arena.Alive(host) {
		return false
	}
	return w.orgMap.Get(host).Species.IsAnimal()
}

// seekHost latches onto an adjacent living animal below the per-host cap,
// or wanders toward the nearest potential host.
func (w *World) seekHost(e ecs.Entity, pos components.Position) {
	org := w.orgMap.Get(e)
	g := w.genMap.Get(e)
	band := w.cfg.Species.For(components.Parasite)

	for _, n := range w.neighbors(nil, pos, 1) {
		cand := w.grid[w.idx(n.X, n.Y)]
		if cand == noEntity {
			continue
		}
		cOrg := w.orgMap.Get(cand)
		if !cOrg.Species.IsAnimal() || cOrg.Parasites >= maxParasitesPerHost {
			continue
		}
		org.Host = cand
		cOrg.Parasites++
		return
	}

	if w.rng.Float64() >= band.MoveChance*g.Speed {
		return
	}
	for sp := components.Species(0); sp < components.SpeciesCount; sp++ {
		if !sp.IsAnimal() {
			continue
		}
		if _, hpos, ok := w.findEntityInRange(pos, sp, band.HuntRange, g.Perception); ok {
			if dest, found := w.seekMove(pos, components.Parasite, hpos); found {
				w.moveEntity(e, pos, dest)
			}
			return
		}
	}
	if dest, ok := w.findEmptyNeighbor(pos, components.Parasite); ok {
		w.moveEntity(e, pos, dest)
	}
}

func chebyshev(a, b components.Position) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}
