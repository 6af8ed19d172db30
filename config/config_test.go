package config

import (
	"os"
	"path/filepath"
	"testing"

	"terrarium/components"
)

func TestDefaultsParse(t *testing.T) {
	cfg := Default()

	if cfg.World.Width <= 0 || cfg.World.Height <= 0 {
		t.Fatalf("world dimensions not set: %dx%d", cfg.World.Width, cfg.World.Height)
	}
	if cfg.Atmosphere.O2+cfg.Atmosphere.CO2 > 100 {
		t.Errorf("default gas pools exceed 100: o2=%v co2=%v", cfg.Atmosphere.O2, cfg.Atmosphere.CO2)
	}
	if cfg.Species.Plant.ReproThreshold <= 0 {
		t.Error("plant repro threshold missing from defaults")
	}
	for _, weights := range [][]float64{
		cfg.Weather.SpringWeights, cfg.Weather.SummerWeights,
		cfg.Weather.AutumnWeights, cfg.Weather.WinterWeights,
	} {
		if len(weights) != 4 {
			t.Errorf("season weights should have 4 entries, got %d", len(weights))
		}
	}
}

func TestUserFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("world:\n  width: 20\natmosphere:\n  sunlight: 9\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.World.Width != 20 {
		t.Errorf("width = %d, want override 20", cfg.World.Width)
	}
	if cfg.Atmosphere.Sunlight != 9 {
		t.Errorf("sunlight = %v, want override 9", cfg.Atmosphere.Sunlight)
	}
	// Untouched fields keep defaults
	if cfg.World.Height != Default().World.Height {
		t.Errorf("height = %d, should keep default", cfg.World.Height)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSpeciesSetFor(t *testing.T) {
	cfg := Default()
	for sp := components.Species(0); sp < components.SpeciesCount; sp++ {
		if cfg.Species.For(sp) == nil {
			t.Errorf("no parameter band for %v", sp)
		}
	}
	if cfg.Species.For(components.Carnivore).HuntRange <= cfg.Species.For(components.Herbivore).HuntRange-5 {
		t.Error("unexpected hunt range ordering in defaults")
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		name  string
		check func(*testing.T, *Config)
	}{
		{"balanced", func(t *testing.T, c *Config) {
			if c.Population.Plant != Default().Population.Plant {
				t.Error("balanced should leave defaults untouched")
			}
		}},
		{"jungle", func(t *testing.T, c *Config) {
			if c.Population.Plant <= Default().Population.Plant {
				t.Error("jungle should raise plant density")
			}
		}},
		{"outbreak", func(t *testing.T, c *Config) {
			if c.Disease.SeedChance == 0 {
				t.Error("outbreak should seed initial infections")
			}
		}},
		{"extinction", func(t *testing.T, c *Config) {
			if c.Disaster.Chance <= Default().Disaster.Chance {
				t.Error("extinction should raise disaster pressure")
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			if err := ApplyPreset(cfg, tt.name); err != nil {
				t.Fatalf("ApplyPreset(%q): %v", tt.name, err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestApplyPresetUnknown(t *testing.T) {
	if err := ApplyPreset(Default(), "volcano"); err == nil {
		t.Error("expected error for unknown preset")
	}
}
