package sim

import (
	"log/slog"
	"math"

	"terrarium/components"
)

// DisasterType enumerates area-effect events.
type DisasterType uint8

const (
	Fire DisasterType = iota
	Flood
	Outbreak
)

// String returns the display name for a disaster type.
func (d DisasterType) String() string {
	switch d {
	case Fire:
		return "Fire"
	case Flood:
		return "Flood"
	case Outbreak:
		return "Outbreak"
	}
	return "Unknown"
}

// Disaster is an ephemeral area event, decremented each tick and removed
// at zero duration.
type Disaster struct {
	Type     DisasterType
	X, Y     int
	Radius   int
	Duration int
}

// updateDisasters applies active disasters, expires finished ones, and
// rolls a random trigger once the cooldown has elapsed.
func (w *World) updateDisasters() {
	active := w.disasters[:0]
	for _, d := range w.disasters {
		w.applyDisaster(d)
		d.Duration--
		if d.Duration > 0 {
			active = append(active, d)
		}
	}
	w.disasters = active

	w.sinceDisaster++
	chance := w.cfg.Disaster.Chance
	if w.sky.Weather == Storm {
		chance *= 2
	}
	if w.sinceDisaster >= w.cfg.Disaster.Cooldown && w.rng.Float64() < chance {
		kind := DisasterType(w.rng.Intn(3))
		x := w.rng.Intn(w.width)
		y := w.rng.Intn(w.height)
		w.TriggerDisaster(kind, x, y)
	}
}

// TriggerDisaster starts an area event centered at (x, y). Radius and
// duration are sampled from the configured bands. Also used by tools.
func (w *World) TriggerDisaster(kind DisasterType, x, y int) {
	d := Disaster{
		Type:     kind,
		X:        x,
		Y:        y,
		Radius:   w.randBetween(w.cfg.Disaster.RadiusMin, w.cfg.Disaster.RadiusMax),
		Duration: w.randBetween(w.cfg.Disaster.DurationMin, w.cfg.Disaster.DurationMax),
	}
	w.disasters = append(w.disasters, d)
	w.sinceDisaster = 0
	w.collector.RecordDisaster()
	slog.Info("disaster triggered",
		"type", kind.String(), "x", x, "y", y,
		"radius", d.Radius, "duration", d.Duration)
}

// Disasters returns a copy of the active disasters for snapshot consumers.
func (w *World) Disasters() []Disaster {
	out := make([]Disaster, len(w.disasters))
	copy(out, w.disasters)
	return out
}

// applyDisaster perturbs terrain and entities within the event radius once
// per tick.
func (w *World) applyDisaster(d Disaster) {
	r := d.Radius
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			x, y := d.X+dx, d.Y+dy
			if !w.inBounds(x, y) {
				continue
			}
			if math.Sqrt(float64(dx*dx+dy*dy)) > float64(r) {
				continue
			}
			w.applyDisasterCell(d.Type, x, y)
		}
	}
}

func (w *World) applyDisasterCell(kind DisasterType, x, y int) {
	idx := w.idx(x, y)
	terr := &w.terrain[idx]
	e := w.grid[idx]

	switch kind {
	case Fire:
		if terr.Type == TerrainWater {
			return
		}
		terr.Moisture = clamp(terr.Moisture-0.05, 0, 1)
		if w.rng.Float64() < 0.08 {
			terr.Type = TerrainBarren
			terr.Fertility = clamp(terr.Fertility*0.5, 0, 2)
		}
		if e != noEntity {
			org := w.orgMap.Get(e)
			switch {
			case org.Species == components.Plant:
				// Burned outright, carbon to the air
				w.atmos.ReleaseCO2(0.05)
				w.removeEntity(e, components.Position{X: x, Y: y})
			case org.Species.IsAnimal():
				org.Energy -= 8
			}
		}

	case Flood:
		if terr.Type == TerrainMountain {
			return
		}
		terr.Moisture = 1
		terr.enrichFertility(0.005) // silt
		if e != noEntity {
			org := w.orgMap.Get(e)
			if org.Species.IsAnimal() && w.rng.Float64() < 0.3 {
				org.Energy -= 5
			}
		}

	case Outbreak:
		if e == noEntity {
			return
		}
		org := w.orgMap.Get(e)
		if !org.Species.IsLiving() || org.Species == components.Plant {
			return
		}
		if w.rng.Float64() < 0.15 {
			w.infect(e)
		}
	}
}
