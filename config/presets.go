package config

import (
	"fmt"
	"sort"
)

// A preset is a named transform over the default configuration, bundling
// densities, atmosphere, and disease knobs for a scenario.
var presets = map[string]func(*Config){
	"balanced": func(c *Config) {},
	"jungle": func(c *Config) {
		c.Population.Plant = 0.35
		c.Population.Herbivore = 0.08
		c.Population.Decomposer = 0.03
		c.Population.ColonySeeds = 12
		c.Atmosphere.CO2 = 65
		c.Atmosphere.O2 = 35
		c.Atmosphere.Sunlight = 7
	},
	"predator": func(c *Config) {
		c.Population.Carnivore = 0.05
		c.Population.ApexPredator = 0.015
		c.Population.Herbivore = 0.08
		c.Population.Plant = 0.22
	},
	"barren": func(c *Config) {
		c.Population.Plant = 0.05
		c.Population.Herbivore = 0.02
		c.Population.Omnivore = 0.005
		c.Population.Carnivore = 0.008
		c.Population.ApexPredator = 0.001
		c.Population.Decomposer = 0.01
		c.Population.ColonySeeds = 2
		c.Atmosphere.Sunlight = 3
		c.Atmosphere.CO2 = 30
		c.Atmosphere.O2 = 40
	},
	"outbreak": func(c *Config) {
		c.Disease.SeedChance = 0.25
		c.Disease.TransmitChance = 0.25
		c.Disease.Duration = 45
		c.Population.Parasite = 0.015
	},
	"extinction": func(c *Config) {
		c.Population.Plant = 0.03
		c.Population.Herbivore = 0.01
		c.Population.Omnivore = 0.002
		c.Population.Carnivore = 0.02
		c.Population.ApexPredator = 0.01
		c.Population.Decomposer = 0.005
		c.Atmosphere.Sunlight = 2
		c.Atmosphere.O2 = 25
		c.Atmosphere.CO2 = 20
		c.Disaster.Cooldown = 40
		c.Disaster.Chance = 0.08
	},
}

// ApplyPreset mutates cfg with the named scenario bundle.
func ApplyPreset(cfg *Config, name string) error {
	apply, ok := presets[name]
	if !ok {
		return fmt.Errorf("unknown preset %q (have %v)", name, PresetNames())
	}
	apply(cfg)
	return nil
}

// PresetNames returns the available preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
