package sim

import (
	"testing"

	"terrarium/components"
)

func TestFireBurnsPlantsInRadius(t *testing.T) {
	cfg := emptyConfig(10, 10)
	cfg.Disaster.RadiusMin = 3
	cfg.Disaster.RadiusMax = 3
	cfg.Disaster.DurationMin = 1
	cfg.Disaster.DurationMax = 1
	plant := cfg.Species.For(components.Plant)
	plant.ReproChance = 0

	w := New(cfg, 12)
	center := components.Position{X: 5, Y: 5}
	if err := w.SpawnAt(center, components.Plant); err != nil {
		t.Fatalf("SpawnAt: %v", err)
	}
	far := components.Position{X: 0, Y: 0}
	if err := w.SpawnAt(far, components.Plant); err != nil {
		t.Fatalf("SpawnAt: %v", err)
	}

	w.TriggerDisaster(Fire, 5, 5)
	if len(w.Disasters()) != 1 {
		t.Fatal("disaster not registered")
	}
	w.Step()

	if _, ok := w.EntityAt(5, 5); ok {
		t.Error("plant inside fire radius survived")
	}
	if v, ok := w.EntityAt(0, 0); !ok || v.Species != components.Plant {
		t.Error("plant outside fire radius was destroyed")
	}
	if len(w.Disasters()) != 0 {
		t.Error("one-tick disaster did not expire")
	}
}

func TestFloodSaturatesGround(t *testing.T) {
	cfg := emptyConfig(10, 10)
	cfg.Disaster.RadiusMin = 2
	cfg.Disaster.RadiusMax = 2
	cfg.Disaster.DurationMin = 1
	cfg.Disaster.DurationMax = 1

	w := New(cfg, 14)
	w.TriggerDisaster(Flood, 5, 5)
	w.Step()

	cell, _ := w.TerrainAt(5, 5)
	if cell.Moisture != 1 {
		t.Errorf("flooded cell moisture = %f, want 1", cell.Moisture)
	}
}

func TestOutbreakInfectsAnimals(t *testing.T) {
	cfg := emptyConfig(10, 10)
	cfg.Disaster.RadiusMin = 4
	cfg.Disaster.RadiusMax = 4
	cfg.Disaster.DurationMin = 20
	cfg.Disaster.DurationMax = 20
	cfg.Disease.Duration = 40
	cfg.Disease.Damage = 0
	herb := cfg.Species.For(components.Herbivore)
	herb.MoveChance = 0
	herb.InitialEnergyMin = 50
	herb.InitialEnergyMax = 50
	herb.Metabolism = 0.1
	herb.ReproChance = 0

	w := New(cfg, 16)
	for x := 3; x <= 7; x += 2 {
		if err := w.SpawnAt(components.Position{X: x, Y: 5}, components.Herbivore); err != nil {
			t.Fatalf("SpawnAt: %v", err)
		}
	}

	w.TriggerDisaster(Outbreak, 5, 5)
	for i := 0; i < 15; i++ {
		w.Step()
	}

	infected := 0
	for x := 3; x <= 7; x++ {
		if v, ok := w.EntityAt(x, 5); ok && v.Infected {
			infected++
		}
	}
	if infected == 0 {
		t.Error("outbreak over five ticks infected no one")
	}
}
