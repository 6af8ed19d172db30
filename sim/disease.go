package sim

import (
	"github.com/mlange-42/ark/ecs"

	"terrarium/components"
)

// infect marks an entity as infected unless it is already infected or
// currently immune. Plants and dead matter never carry disease.
func (w *World) infect(e ecs.Entity) {
	org := w.orgMap.Get(e)
	if !org.Species.IsLiving() || org.Species == components.Plant {
		return
	}
	h := w.healthMap.Get(e)
	if h.Infected || h.Immune {
		return
	}
	h.Infected = true
	h.InfectionLeft = w.cfg.Disease.Duration
	w.collector.RecordInfection()
}

// updateDisease runs one tick of disease upkeep for a living animal:
// immunity countdown, periodic infection damage, neighbor transmission,
// and recovery into a temporary immune state.
func (w *World) updateDisease(e ecs.Entity, pos components.Position) {
	h := w.healthMap.Get(e)

	if h.Immune {
		h.ImmunityLeft--
		if h.ImmunityLeft <= 0 {
			h.Immune = false
		}
	}

	if !h.Infected {
		return
	}

	org := w.orgMap.Get(e)
	dis := &w.cfg.Disease

	h.InfectionLeft--
	if h.InfectionLeft <= 0 {
		h.Infected = false
		h.Immune = true
		h.ImmunityLeft = dis.ImmunityDuration
		w.collector.RecordRecovery()
		return
	}

	if dis.DamageInterval > 0 && h.InfectionLeft%dis.DamageInterval == 0 {
		org.Energy -= dis.Damage
	}

	// Transmission to adjacent hosts, resisted by the target's immunity
	// trait.
	for _, n := range w.neighbors(nil, pos, 1) {
		target := w.grid[w.idx(n.X, n.Y)]
		if target == noEntity {
			continue
		}
		tOrg := w.orgMap.Get(target)
		if !tOrg.Species.IsLiving() || tOrg.Species == components.Plant {
			continue
		}
		chance := dis.TransmitChance / w.genMap.Get(target).Immunity
		if w.rng.Float64() < chance {
			w.infect(target)
		}
	}
}
