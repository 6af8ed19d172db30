package sim

import (
	"github.com/mlange-42/ark/ecs"

	"terrarium/components"
	"terrarium/telemetry"
)

// statsWindow is how many generations a collector window spans before
// StatsDue reports a flush is owed.
const statsWindow = 50

// Step advances the world by exactly one generation. The update order is
// a fresh uniform shuffle every tick; each worklist entry is re-validated
// against the grid before dispatch because an earlier entity may already
// have consumed or displaced it.
func (w *World) Step() {
	w.advanceSky()
	w.updateDisasters()

	w.worklist = w.worklist[:0]
	for i, e := range w.grid {
		if e == noEntity {
			continue
		}
		w.worklist = append(w.worklist, workItem{
			e:   e,
			pos: components.Position{X: i % w.width, Y: i / w.width},
			sp:  w.orgMap.Get(e).Species,
		})
	}
	w.rng.Shuffle(len(w.worklist), func(i, j int) {
		w.worklist[i], w.worklist[j] = w.worklist[j], w.worklist[i]
	})

	for _, item := range w.worklist {
		if w.grid[w.idx(item.pos.X, item.pos.Y)] != item.e {
			continue
		}
		if w.orgMap.Get(item.e).Species != item.sp {
			continue
		}
		w.dispatch(item.e, item.pos)
	}

	w.atmos.Rebalance()
	w.generation++
	w.recount()

	if interval := w.cfg.Telemetry.HistoryInterval; interval > 0 && w.generation%interval == 0 {
		w.history.Append(w.historyPoint())
	}
}

// StatsDue reports whether the current collector window is complete.
func (w *World) StatsDue() bool {
	return w.generation > 0 && w.generation%statsWindow == 0
}

// dispatch routes one entity to its species rule.
func (w *World) dispatch(e ecs.Entity, pos components.Position) {
	switch w.orgMap.Get(e).Species {
	case components.Plant:
		w.updatePlant(e, pos)
	case components.Herbivore, components.Omnivore, components.Carnivore, components.ApexPredator:
		w.updateAnimal(e, pos)
	case components.Decomposer:
		w.updateDecomposer(e, pos)
	case components.Parasite:
		w.updateParasite(e, pos)
	case components.DeadMatter:
		w.updateDeadMatter(e, pos)
	}
}

// historyPoint samples the current world state into a history record.
func (w *World) historyPoint() telemetry.HistoryPoint {
	return telemetry.HistoryPoint{
		Generation: w.generation,

		Plants:     w.pops[components.Plant],
		Herbivores: w.pops[components.Herbivore],
		Omnivores:  w.pops[components.Omnivore],
		Carnivores: w.pops[components.Carnivore],
		Apex:       w.pops[components.ApexPredator],
		Decomp:     w.pops[components.Decomposer],
		Parasites:  w.pops[components.Parasite],
		DeadMatter: w.pops[components.DeadMatter],

		O2:           w.atmos.O2,
		CO2:          w.atmos.CO2,
		Biodiversity: w.Biodiversity(),
		MeanFitness:  w.meanFitness(),
	}
}

// FlushStats closes the current collector window and returns its summary.
func (w *World) FlushStats() telemetry.GenerationStats {
	return w.collector.Flush(w.generation, w.pops,
		w.atmos.O2, w.atmos.CO2, w.Biodiversity(), w.meanFitness())
}
