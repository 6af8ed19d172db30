package components

import "github.com/mlange-42/ark/ecs"

// Position is an entity's grid cell. It is kept in sync with the grid slot
// that references the entity; World.moveEntity is the only writer of both.
type Position struct {
	X, Y int
}

// Organism holds core lifecycle state shared by every species.
type Organism struct {
	Species       Species
	Energy        float64
	Age           int
	MaxAge        int // sampled per instance at creation
	Stage         Stage
	ReproCooldown int

	// Parasites counts attached parasites on this entity (as a host).
	Parasites uint8

	// Host is the entity a parasite is latched onto (parasites only).
	// The zero entity means unattached.
	Host ecs.Entity

	// Decay is the remaining lifetime of DeadMatter before final removal.
	Decay int
}

// Health tracks infection and acquired immunity.
type Health struct {
	Infected      bool
	InfectionLeft int // ticks of infection remaining
	Immune        bool
	ImmunityLeft  int // ticks of immunity remaining
}

// TrailCap is the fixed capacity of an entity's position history.
const TrailCap = 16

// Trail is a bounded ring of recently visited cells, oldest dropped first.
// It is runtime-only state and is not serialized.
type Trail struct {
	Points [TrailCap]Position
	Head   uint8 // index of the next write
	Len    uint8
}

// Push records a visited position, evicting the oldest when full.
func (t *Trail) Push(p Position) {
	t.Points[t.Head] = p
	t.Head = (t.Head + 1) % TrailCap
	if t.Len < TrailCap {
		t.Len++
	}
}

// Recent returns the last n positions, newest first.
func (t *Trail) Recent(n int) []Position {
	if n > int(t.Len) {
		n = int(t.Len)
	}
	out := make([]Position, 0, n)
	for i := 1; i <= n; i++ {
		idx := (int(t.Head) - i + TrailCap) % TrailCap
		out = append(out, t.Points[idx])
	}
	return out
}

// Visited reports whether p is anywhere in the retained history.
func (t *Trail) Visited(p Position) bool {
	for i := 1; i <= int(t.Len); i++ {
		idx := (int(t.Head) - i + TrailCap) % TrailCap
		if t.Points[idx] == p {
			return true
		}
	}
	return false
}
