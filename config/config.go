// Package config provides configuration loading and presets for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"terrarium/components"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation parameters.
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Atmosphere AtmosphereConfig `yaml:"atmosphere"`
	Population PopulationConfig `yaml:"population"`
	Species    SpeciesSet       `yaml:"species"`
	Genetics   GeneticsConfig   `yaml:"genetics"`
	Disease    DiseaseConfig    `yaml:"disease"`
	Weather    WeatherConfig    `yaml:"weather"`
	Disaster   DisasterConfig   `yaml:"disaster"`
	Movement   MovementConfig   `yaml:"movement"`
	Terrain    TerrainConfig    `yaml:"terrain"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
}

// WorldConfig holds grid dimensions.
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// AtmosphereConfig holds the initial gas pools and sunlight.
// Gases are percentages in [0,100]; sunlight is an intensity in [0,10].
type AtmosphereConfig struct {
	O2       float64 `yaml:"o2"`
	CO2      float64 `yaml:"co2"`
	Sunlight float64 `yaml:"sunlight"`
}

// PopulationConfig holds initial seeding densities (fraction of cells)
// and colony seed placement.
type PopulationConfig struct {
	Plant        float64 `yaml:"plant"`
	Herbivore    float64 `yaml:"herbivore"`
	Omnivore     float64 `yaml:"omnivore"`
	Carnivore    float64 `yaml:"carnivore"`
	ApexPredator float64 `yaml:"apex_predator"`
	Decomposer   float64 `yaml:"decomposer"`
	Parasite     float64 `yaml:"parasite"`

	ColonySeeds  int `yaml:"colony_seeds"`  // clustered plant colonies placed before random fill
	ColonyRadius int `yaml:"colony_radius"` // radius of each seeded colony
}

// Density returns the seeding density for a species (0 for DeadMatter).
func (p *PopulationConfig) Density(sp components.Species) float64 {
	switch sp {
	case components.Plant:
		return p.Plant
	case components.Herbivore:
		return p.Herbivore
	case components.Omnivore:
		return p.Omnivore
	case components.Carnivore:
		return p.Carnivore
	case components.ApexPredator:
		return p.ApexPredator
	case components.Decomposer:
		return p.Decomposer
	case components.Parasite:
		return p.Parasite
	}
	return 0
}

// SpeciesConfig holds the tuned parameter band for one species.
type SpeciesConfig struct {
	InitialEnergyMin float64 `yaml:"initial_energy_min"`
	InitialEnergyMax float64 `yaml:"initial_energy_max"`
	MaxAgeMin        int     `yaml:"max_age_min"`
	MaxAgeMax        int     `yaml:"max_age_max"`

	Metabolism float64 `yaml:"metabolism"`  // upkeep energy cost per tick
	GasRate    float64 `yaml:"gas_rate"`    // O2/CO2 exchanged per tick
	GasPenalty float64 `yaml:"gas_penalty"` // extra energy cost when the needed gas is scarce

	FeedFraction float64 `yaml:"feed_fraction"` // capped fraction of food energy transferred
	HuntChance   float64 `yaml:"hunt_chance"`   // base success probability per attempt
	HuntRange    int     `yaml:"hunt_range"`    // ranged prey search radius (0 = adjacent only)

	MoveChance float64 `yaml:"move_chance"` // probability of moving in a tick

	ReproThreshold float64 `yaml:"repro_threshold"` // minimum energy to reproduce
	ReproCost      float64 `yaml:"repro_cost"`      // energy debited per parent
	ReproChance    float64 `yaml:"repro_chance"`    // roll once eligible
	ReproCooldown  int     `yaml:"repro_cooldown"`  // ticks between reproductions
}

// SpeciesSet holds per-species parameter bands.
type SpeciesSet struct {
	Plant        SpeciesConfig `yaml:"plant"`
	Herbivore    SpeciesConfig `yaml:"herbivore"`
	Omnivore     SpeciesConfig `yaml:"omnivore"`
	Carnivore    SpeciesConfig `yaml:"carnivore"`
	ApexPredator SpeciesConfig `yaml:"apex_predator"`
	Decomposer   SpeciesConfig `yaml:"decomposer"`
	Parasite     SpeciesConfig `yaml:"parasite"`
	DeadMatter   SpeciesConfig `yaml:"dead_matter"`
}

// For returns the parameter band for a species.
func (s *SpeciesSet) For(sp components.Species) *SpeciesConfig {
	switch sp {
	case components.Plant:
		return &s.Plant
	case components.Herbivore:
		return &s.Herbivore
	case components.Omnivore:
		return &s.Omnivore
	case components.Carnivore:
		return &s.Carnivore
	case components.ApexPredator:
		return &s.ApexPredator
	case components.Decomposer:
		return &s.Decomposer
	case components.Parasite:
		return &s.Parasite
	default:
		return &s.DeadMatter
	}
}

// GeneticsConfig holds inheritance parameters.
type GeneticsConfig struct {
	MutationChance float64 `yaml:"mutation_chance"` // per trait, at inheritance
	MutationScale  float64 `yaml:"mutation_scale"`  // uniform perturbation half-width
}

// DiseaseConfig holds infection parameters.
type DiseaseConfig struct {
	Damage           float64 `yaml:"damage"`            // energy lost per damage interval
	DamageInterval   int     `yaml:"damage_interval"`   // ticks between damage applications
	TransmitChance   float64 `yaml:"transmit_chance"`   // per infected neighbor per tick, before immunity scaling
	Duration         int     `yaml:"duration"`          // infection length in ticks
	ImmunityDuration int     `yaml:"immunity_duration"` // post-recovery immunity in ticks
	SeedChance       float64 `yaml:"seed_chance"`       // chance an initial animal spawns infected
}

// WeatherConfig holds the season cycle and weather transition weights.
// Weight slices are ordered Clear, Rain, Drought, Storm.
type WeatherConfig struct {
	SeasonLength int `yaml:"season_length"` // generations per season
	MinDuration  int `yaml:"min_duration"`  // weather spell length band
	MaxDuration  int `yaml:"max_duration"`

	SpringWeights []float64 `yaml:"spring_weights"`
	SummerWeights []float64 `yaml:"summer_weights"`
	AutumnWeights []float64 `yaml:"autumn_weights"`
	WinterWeights []float64 `yaml:"winter_weights"`
}

// DisasterConfig holds random disaster trigger parameters.
type DisasterConfig struct {
	Cooldown    int     `yaml:"cooldown"`     // minimum generations between random disasters
	Chance      float64 `yaml:"chance"`       // per-generation trigger roll once off cooldown
	RadiusMin   int     `yaml:"radius_min"`
	RadiusMax   int     `yaml:"radius_max"`
	DurationMin int     `yaml:"duration_min"`
	DurationMax int     `yaml:"duration_max"`
}

// MovementConfig holds shared movement tuning.
type MovementConfig struct {
	MoveBias float64 `yaml:"move_bias"` // probability of colony-biased choice over uniform
}

// TerrainConfig holds world-generation thresholds for the noise fields.
type TerrainConfig struct {
	NoiseScale        float64 `yaml:"noise_scale"`
	WaterLevel        float64 `yaml:"water_level"`        // elevation below this is Water
	MountainLevel     float64 `yaml:"mountain_level"`     // elevation above this is Mountain
	FertileThreshold  float64 `yaml:"fertile_threshold"`  // moisture above this is Fertile
	BarrenThreshold   float64 `yaml:"barren_threshold"`   // moisture below this is Barren
}

// TelemetryConfig holds history recording parameters.
type TelemetryConfig struct {
	HistoryInterval int `yaml:"history_interval"` // record every N generations
	HistoryCap      int `yaml:"history_cap"`      // bounded ring capacity
}

// Load reads configuration from a YAML file, merging over embedded defaults.
// An empty path uses defaults only.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into the same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	return cfg, nil
}

// Default returns the embedded default configuration.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
