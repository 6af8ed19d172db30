package sim

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"terrarium/components"
)

// All spatial queries are read-only with respect to the grid; only the
// calling behavior rule mutates. Out-of-bounds cells are silently excluded,
// never signaled as errors. There is no wraparound.

// neighbors appends all in-bounds cells within Chebyshev radius of pos,
// excluding the center, to dst and returns it.
func (w *World) neighbors(dst []components.Position, pos components.Position, radius int) []components.Position {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			x, y := pos.X+dx, pos.Y+dy
			if !w.inBounds(x, y) {
				continue
			}
			dst = append(dst, components.Position{X: x, Y: y})
		}
	}
	return dst
}

// findEmptyNeighbor picks uniformly among unoccupied adjacent cells the
// species can stand on. Returns false when none exist.
func (w *World) findEmptyNeighbor(pos components.Position, sp components.Species) (components.Position, bool) {
	var candidates []components.Position
	for _, n := range w.neighbors(nil, pos, 1) {
		idx := w.idx(n.X, n.Y)
		if w.grid[idx] != noEntity {
			continue
		}
		if !w.terrain[idx].Passable(sp) {
			continue
		}
		candidates = append(candidates, n)
	}
	if len(candidates) == 0 {
		return components.Position{}, false
	}
	return candidates[w.rng.Intn(len(candidates))], true
}

// findNeighborOfType picks uniformly among adjacent cells occupied by the
// given species. Returns false when none exist.
func (w *World) findNeighborOfType(pos components.Position, sp components.Species) (ecs.Entity, components.Position, bool) {
	var cells []components.Position
	var entities []ecs.Entity
	for _, n := range w.neighbors(nil, pos, 1) {
		e := w.grid[w.idx(n.X, n.Y)]
		if e == noEntity {
			continue
		}
		if w.orgMap.Get(e).Species != sp {
			continue
		}
		cells = append(cells, n)
		entities = append(entities, e)
	}
	if len(cells) == 0 {
		return noEntity, components.Position{}, false
	}
	i := w.rng.Intn(len(cells))
	return entities[i], cells[i], true
}

// findEntityInRange returns the nearest entity of the species within
// ceil(rng * perception), by Euclidean distance with scan-order tie-break.
func (w *World) findEntityInRange(pos components.Position, sp components.Species, rng int, perception float64) (ecs.Entity, components.Position, bool) {
	reach := int(math.Ceil(float64(rng) * perception))
	if reach < 1 {
		reach = 1
	}

	best := noEntity
	var bestPos components.Position
	bestDist := math.Inf(1)

	for dy := -reach; dy <= reach; dy++ {
		for dx := -reach; dx <= reach; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			x, y := pos.X+dx, pos.Y+dy
			if !w.inBounds(x, y) {
				continue
			}
			e := w.grid[w.idx(x, y)]
			if e == noEntity || w.orgMap.Get(e).Species != sp {
				continue
			}
			dist := math.Sqrt(float64(dx*dx + dy*dy))
			if dist > float64(reach) {
				continue
			}
			if dist < bestDist {
				bestDist = dist
				best = e
				bestPos = components.Position{X: x, Y: y}
			}
		}
	}

	if best == noEntity {
		return noEntity, components.Position{}, false
	}
	return best, bestPos, true
}

// countNearbyOfType counts same-species entities within radius, used for
// colony and pack bonuses.
func (w *World) countNearbyOfType(pos components.Position, sp components.Species, radius int) int {
	var count int
	for _, n := range w.neighbors(nil, pos, radius) {
		e := w.grid[w.idx(n.X, n.Y)]
		if e != noEntity && w.orgMap.Get(e).Species == sp {
			count++
		}
	}
	return count
}

// findColonyBiasedMove picks a destination cell for a colony-forming mover.
// With probability moveBias it takes the empty neighbor with the highest
// same-species density plus random jitter; otherwise it wanders uniformly.
// The jitter breaks ties so clusters grow organically instead of in lines;
// recently visited cells are penalized so wanderers cover new ground.
func (w *World) findColonyBiasedMove(e ecs.Entity, pos components.Position, sp components.Species) (components.Position, bool) {
	if w.rng.Float64() >= w.cfg.Movement.MoveBias {
		return w.findEmptyNeighbor(pos, sp)
	}
	trail := w.trailMap.Get(e)

	best := components.Position{}
	bestScore := math.Inf(-1)
	found := false

	for _, n := range w.neighbors(nil, pos, 1) {
		idx := w.idx(n.X, n.Y)
		if w.grid[idx] != noEntity || !w.terrain[idx].Passable(sp) {
			continue
		}
		score := float64(w.countNearbyOfType(n, sp, 2)) + w.rng.Float64()*0.5
		if trail.Visited(n) {
			score -= 0.75
		}
		if score > bestScore {
			bestScore = score
			best = n
			found = true
		}
	}

	if !found {
		return components.Position{}, false
	}
	return best, true
}

// fleeMove picks the empty neighbor farthest from the threat position.
func (w *World) fleeMove(pos components.Position, sp components.Species, threat components.Position) (components.Position, bool) {
	best := components.Position{}
	bestDist := -1.0
	found := false

	for _, n := range w.neighbors(nil, pos, 1) {
		idx := w.idx(n.X, n.Y)
		if w.grid[idx] != noEntity || !w.terrain[idx].Passable(sp) {
			continue
		}
		dx := float64(n.X - threat.X)
		dy := float64(n.Y - threat.Y)
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist > bestDist {
			bestDist = dist
			best = n
			found = true
		}
	}

	if !found {
		return components.Position{}, false
	}
	return best, true
}

// seekMove picks the empty neighbor closest to the target position.
func (w *World) seekMove(pos components.Position, sp components.Species, target components.Position) (components.Position, bool) {
	best := components.Position{}
	bestDist := math.Inf(1)
	found := false

	for _, n := range w.neighbors(nil, pos, 1) {
		idx := w.idx(n.X, n.Y)
		if w.grid[idx] != noEntity || !w.terrain[idx].Passable(sp) {
			continue
		}
		dx := float64(n.X - target.X)
		dy := float64(n.Y - target.Y)
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist < bestDist {
			bestDist = dist
			best = n
			found = true
		}
	}

	if !found {
		return components.Position{}, false
	}
	return best, true
}
