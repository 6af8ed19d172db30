package sim

import (
	"bytes"
	"strings"
	"testing"

	"terrarium/components"
	"terrarium/config"
)

// emptyConfig returns a config for a small, flat, empty world: uniform
// Normal terrain, no initial population, no disasters, no seeded disease.
func emptyConfig(width, height int) *config.Config {
	cfg := config.Default()
	cfg.World.Width = width
	cfg.World.Height = height

	cfg.Terrain.WaterLevel = -1
	cfg.Terrain.MountainLevel = 2
	cfg.Terrain.FertileThreshold = 2
	cfg.Terrain.BarrenThreshold = -1

	cfg.Population = config.PopulationConfig{}
	cfg.Disaster.Chance = 0
	cfg.Disease.SeedChance = 0
	return cfg
}

func TestPopulateResetsGenerationAndHistory(t *testing.T) {
	cfg := config.Default()
	cfg.World.Width = 20
	cfg.World.Height = 20
	cfg.Telemetry.HistoryInterval = 1

	w := New(cfg, 7)
	for i := 0; i < 5; i++ {
		w.Step()
	}
	if w.Generation() != 5 {
		t.Fatalf("generation = %d, want 5", w.Generation())
	}
	if len(w.History()) == 0 {
		t.Fatal("expected history points before repopulating")
	}

	w.Populate()
	if w.Generation() != 0 {
		t.Errorf("generation = %d after Populate, want 0", w.Generation())
	}
	if len(w.History()) != 0 {
		t.Errorf("history len = %d after Populate, want 0", len(w.History()))
	}
}

func TestSpawnAtAndKillAt(t *testing.T) {
	w := New(emptyConfig(10, 10), 1)
	pos := components.Position{X: 5, Y: 5}

	if err := w.SpawnAt(pos, components.Herbivore); err != nil {
		t.Fatalf("SpawnAt: %v", err)
	}
	view, ok := w.EntityAt(5, 5)
	if !ok || view.Species != components.Herbivore {
		t.Fatalf("expected herbivore at 5,5, got %+v ok=%v", view, ok)
	}
	if w.Populations()[components.Herbivore] != 1 {
		t.Errorf("population count not updated after SpawnAt")
	}

	if err := w.SpawnAt(pos, components.Plant); err == nil {
		t.Error("SpawnAt on occupied cell succeeded")
	}
	if err := w.SpawnAt(components.Position{X: -1, Y: 0}, components.Plant); err == nil {
		t.Error("SpawnAt out of bounds succeeded")
	}

	w.KillAt(pos)
	if _, ok := w.EntityAt(5, 5); ok {
		t.Error("entity survived KillAt")
	}
	// Killing an empty cell is a no-op.
	w.KillAt(pos)
}

func TestTerrainPassabilityGatesSpawn(t *testing.T) {
	cfg := emptyConfig(10, 10)
	cfg.Terrain.WaterLevel = 2 // everything floods
	w := New(cfg, 3)

	pos := components.Position{X: 4, Y: 4}
	if err := w.SpawnAt(pos, components.Herbivore); err == nil {
		t.Error("herbivore spawned in water")
	}
	if err := w.SpawnAt(pos, components.Plant); err != nil {
		t.Errorf("plant refused water cell: %v", err)
	}
}

func TestMoveEntityKeepsGridAndPositionInSync(t *testing.T) {
	w := New(emptyConfig(10, 10), 2)
	from := components.Position{X: 2, Y: 2}
	to := components.Position{X: 3, Y: 2}

	if err := w.SpawnAt(from, components.Carnivore); err != nil {
		t.Fatalf("SpawnAt: %v", err)
	}
	e := w.grid[w.idx(from.X, from.Y)]

	w.moveEntity(e, from, to)
	if w.grid[w.idx(from.X, from.Y)] != noEntity {
		t.Error("origin slot not cleared")
	}
	if w.grid[w.idx(to.X, to.Y)] != e {
		t.Error("destination slot not set")
	}
	if p := *w.posMap.Get(e); p != to {
		t.Errorf("position component = %+v, want %+v", p, to)
	}

	// Moving onto an occupied slot is refused.
	other := components.Position{X: 4, Y: 2}
	if err := w.SpawnAt(other, components.Carnivore); err != nil {
		t.Fatalf("SpawnAt: %v", err)
	}
	w.moveEntity(e, to, other)
	if w.grid[w.idx(to.X, to.Y)] != e {
		t.Error("entity moved onto an occupied cell")
	}
}

func TestResetRegeneratesIdenticalWorld(t *testing.T) {
	cfg := config.Default()
	cfg.World.Width = 15
	cfg.World.Height = 15

	w := New(cfg, 33)
	initial := w.Populations()
	var species []components.Species
	for _, e := range w.grid {
		if e != noEntity {
			species = append(species, w.orgMap.Get(e).Species)
		}
	}

	for i := 0; i < 4; i++ {
		w.Step()
	}
	w.Reset()

	if w.Generation() != 0 {
		t.Errorf("generation = %d after Reset, want 0", w.Generation())
	}
	if w.Populations() != initial {
		t.Fatalf("populations = %v, want %v after seeded Reset", w.Populations(), initial)
	}
	i := 0
	for _, e := range w.grid {
		if e == noEntity {
			continue
		}
		if sp := w.orgMap.Get(e).Species; sp != species[i] {
			t.Fatalf("entity %d species %s, want %s", i, sp, species[i])
		}
		i++
	}
}

func TestApplyPresetRepopulates(t *testing.T) {
	w := New(emptyConfig(10, 10), 3)
	w.Step()

	if err := w.ApplyPreset("jungle"); err != nil {
		t.Fatalf("ApplyPreset: %v", err)
	}
	if w.Generation() != 0 {
		t.Errorf("generation = %d after preset, want 0", w.Generation())
	}
	if width, height := w.Size(); width != 10 || height != 10 {
		t.Errorf("preset changed grid size to %dx%d", width, height)
	}
	if w.Populations()[components.Plant] == 0 {
		t.Error("jungle preset produced no plants")
	}

	if err := w.ApplyPreset("volcano"); err == nil {
		t.Error("unknown preset accepted")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := config.Default()
	cfg.World.Width = 20
	cfg.World.Height = 20

	w := New(cfg, 11)
	for i := 0; i < 5; i++ {
		w.Step()
	}

	var buf bytes.Buffer
	if err := w.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}

	w2 := New(emptyConfig(10, 10), 99)
	if err := w2.Load(&buf); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if w2.Generation() != w.Generation() {
		t.Errorf("generation = %d, want %d", w2.Generation(), w.Generation())
	}
	if w2.AtmosphereState() != w.AtmosphereState() {
		t.Errorf("atmosphere = %+v, want %+v", w2.AtmosphereState(), w.AtmosphereState())
	}
	if w2.Populations() != w.Populations() {
		t.Errorf("populations = %v, want %v", w2.Populations(), w.Populations())
	}
	if w2.CurrentSeason() != w.CurrentSeason() || w2.CurrentWeather() != w.CurrentWeather() {
		t.Error("season/weather did not round-trip")
	}

	width, height := w.Size()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			a, aok := w.EntityAt(x, y)
			b, bok := w2.EntityAt(x, y)
			if aok != bok {
				t.Fatalf("cell %d,%d occupancy mismatch", x, y)
			}
			if aok && a != b {
				t.Fatalf("cell %d,%d entity mismatch:\n%+v\n%+v", x, y, a, b)
			}
		}
	}
}

func TestLoadMalformedLeavesStateUntouched(t *testing.T) {
	w := New(emptyConfig(10, 10), 5)
	w.Step()
	gen := w.Generation()
	pops := w.Populations()

	if err := w.Load(strings.NewReader("{not json")); err == nil {
		t.Fatal("malformed load succeeded")
	}
	if w.Generation() != gen || w.Populations() != pops {
		t.Error("failed load mutated world state")
	}

	// Out-of-bounds entity rejected after a clean parse.
	bad := `{"version":1,"width":5,"height":5,"terrain":[` +
		strings.Repeat(`{},`, 24) + `{}],` +
		`"entities":[{"x":9,"y":9,"species":"Plant"}]}`
	if err := w.Load(strings.NewReader(bad)); err == nil {
		t.Fatal("out-of-bounds entity accepted")
	}
	if w.Generation() != gen {
		t.Error("rejected load mutated world state")
	}
}
