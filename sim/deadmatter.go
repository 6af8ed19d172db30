package sim

import (
	"github.com/mlange-42/ark/ecs"

	"terrarium/components"
)

// updateDeadMatter runs one tick of passive decay: a slow CO2 trickle each
// tick and a final burst when the remains disappear.
func (w *World) updateDeadMatter(e ecs.Entity, pos components.Position) {
	org := w.orgMap.Get(e)
	band := w.cfg.Species.For(components.DeadMatter)

	w.atmos.ReleaseCO2(band.GasRate)
	org.Energy -= band.Metabolism
	org.Decay--

	if org.Decay <= 0 || org.Energy <= 0 {
		w.atmos.ReleaseCO2(band.GasPenalty) // final release on removal
		w.terrain[w.idx(pos.X, pos.Y)].enrichFertility(0.02)
		w.removeEntity(e, pos)
	}
}
