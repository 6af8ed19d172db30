package sim

import (
	"github.com/mlange-42/ark/ecs"

	"terrarium/components"
	"terrarium/config"
)

// upkeep applies the per-tick energy cost and advances age, stage, and the
// reproduction cooldown. Larger organisms burn more, efficient ones less.
func (w *World) upkeep(e ecs.Entity) {
	org := w.orgMap.Get(e)
	g := w.genMap.Get(e)
	band := w.cfg.Species.For(org.Species)

	org.Energy -= band.Metabolism * g.Size / g.Efficiency
	org.Age++
	org.Stage = components.StageFor(org.Age, org.MaxAge)
	if org.ReproCooldown > 0 {
		org.ReproCooldown--
	}
}

// checkDeath converts or removes the entity when it has starved or aged
// out. Returns false when the entity no longer exists as its species.
func (w *World) checkDeath(e ecs.Entity, pos components.Position) bool {
	org := w.orgMap.Get(e)
	if org.Energy > 0 && org.Age <= org.MaxAge {
		return true
	}

	sp := org.Species
	w.collector.RecordDeath(sp)
	if sp.LeavesResidue() {
		w.convertToDead(e)
	} else {
		w.removeEntity(e, pos)
	}
	return false
}

// breatheO2 runs an animal's gas exchange: consume O2, exhale CO2. When
// oxygen is scarce the shortfall becomes an energy penalty instead.
func (w *World) breatheO2(e ecs.Entity) {
	org := w.orgMap.Get(e)
	band := w.cfg.Species.For(org.Species)

	if !w.atmos.ConsumeO2(band.GasRate) {
		org.Energy -= band.GasPenalty
	}
	w.atmos.ReleaseCO2(band.GasRate)
}

// canReproduce gates reproduction on energy threshold, cooldown, and
// lifecycle stage. Juveniles never reproduce.
func canReproduce(org *components.Organism, band *config.SpeciesConfig) bool {
	return org.Stage != components.Juvenile &&
		org.ReproCooldown <= 0 &&
		org.Energy >= band.ReproThreshold
}

// reproChance is the effective per-tick reproduction probability: the
// species base chance scaled by the fertility trait, halved for elders.
func reproChance(org *components.Organism, g *components.Genetics, band *config.SpeciesConfig) float64 {
	chance := band.ReproChance * g.Fertility
	if org.Stage == components.Elder {
		chance *= 0.5
	}
	return chance
}
