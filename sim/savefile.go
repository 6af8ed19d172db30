package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"terrarium/components"
)

// saveVersion tags the save format. Loading a different version logs a
// warning and proceeds best-effort; only malformed data is rejected.
const saveVersion = 1

type saveFile struct {
	Version    int   `json:"version"`
	Seed       int64 `json:"seed"`
	Generation int   `json:"generation"`
	Width      int   `json:"width"`
	Height     int   `json:"height"`

	Atmosphere Atmosphere    `json:"atmosphere"`
	Sky        saveSky       `json:"sky"`
	Terrain    []TerrainCell `json:"terrain"`
	Disasters  []Disaster    `json:"disasters"`

	SinceDisaster int `json:"since_disaster"`

	Entities []saveEntity `json:"entities"`
}

type saveSky struct {
	TimeOfDay   int     `json:"time_of_day"`
	Season      Season  `json:"season"`
	SeasonTick  int     `json:"season_tick"`
	Weather     Weather `json:"weather"`
	WeatherLeft int     `json:"weather_left"`
}

// saveEntity carries one entity's scalar and genetics state. Trails and
// parasite host handles are not persisted; loaded parasites reattach on
// their own.
type saveEntity struct {
	X       int     `json:"x"`
	Y       int     `json:"y"`
	Species string  `json:"species"`
	Energy  float64 `json:"energy"`
	Age     int     `json:"age"`
	MaxAge  int     `json:"max_age"`
	Cooldown int    `json:"repro_cooldown"`
	Decay   int     `json:"decay"`

	Infected      bool `json:"infected,omitempty"`
	InfectionLeft int  `json:"infection_left,omitempty"`
	Immune        bool `json:"immune,omitempty"`
	ImmunityLeft  int  `json:"immunity_left,omitempty"`

	Traits [components.TraitCount]float64 `json:"traits"`
}

// Save writes the full world state as versioned JSON.
func (w *World) Save(out io.Writer) error {
	sf := saveFile{
		Version:    saveVersion,
		Seed:       w.seed,
		Generation: w.generation,
		Width:      w.width,
		Height:     w.height,
		Atmosphere: w.atmos,
		Sky: saveSky{
			TimeOfDay:   w.sky.TimeOfDay,
			Season:      w.sky.Season,
			SeasonTick:  w.sky.SeasonTick,
			Weather:     w.sky.Weather,
			WeatherLeft: w.sky.WeatherLeft,
		},
		Terrain:       w.terrain,
		Disasters:     w.Disasters(),
		SinceDisaster: w.sinceDisaster,
	}

	for i, e := range w.grid {
		if e == noEntity {
			continue
		}
		org := w.orgMap.Get(e)
		h := w.healthMap.Get(e)
		sf.Entities = append(sf.Entities, saveEntity{
			X:        i % w.width,
			Y:        i / w.width,
			Species:  org.Species.String(),
			Energy:   org.Energy,
			Age:      org.Age,
			MaxAge:   org.MaxAge,
			Cooldown: org.ReproCooldown,
			Decay:    org.Decay,

			Infected:      h.Infected,
			InfectionLeft: h.InfectionLeft,
			Immune:        h.Immune,
			ImmunityLeft:  h.ImmunityLeft,

			Traits: w.genMap.Get(e).Traits(),
		})
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sf); err != nil {
		return fmt.Errorf("encoding save: %w", err)
	}
	return nil
}

// Load replaces the world state from a save written by Save. The input is
// parsed and validated completely before any live state changes; on error
// the world is untouched.
func (w *World) Load(in io.Reader) error {
	var sf saveFile
	if err := json.NewDecoder(in).Decode(&sf); err != nil {
		return fmt.Errorf("decoding save: %w", err)
	}

	if sf.Version != saveVersion {
		slog.Warn("save version mismatch, loading best-effort",
			"file", sf.Version, "supported", saveVersion)
	}
	if sf.Width < 1 || sf.Height < 1 {
		return fmt.Errorf("invalid save dimensions %dx%d", sf.Width, sf.Height)
	}
	if len(sf.Terrain) != sf.Width*sf.Height {
		return fmt.Errorf("terrain length %d does not match %dx%d grid",
			len(sf.Terrain), sf.Width, sf.Height)
	}

	type placed struct {
		sp  components.Species
		ent saveEntity
	}
	cells := make(map[int]placed, len(sf.Entities))
	for _, ent := range sf.Entities {
		if ent.X < 0 || ent.X >= sf.Width || ent.Y < 0 || ent.Y >= sf.Height {
			return fmt.Errorf("entity at %d,%d out of bounds", ent.X, ent.Y)
		}
		sp, ok := components.SpeciesByName(ent.Species)
		if !ok {
			return fmt.Errorf("unknown species %q at %d,%d", ent.Species, ent.X, ent.Y)
		}
		idx := ent.Y*sf.Width + ent.X
		if _, dup := cells[idx]; dup {
			return fmt.Errorf("duplicate entity at %d,%d", ent.X, ent.Y)
		}
		cells[idx] = placed{sp: sp, ent: ent}
	}

	// Validation passed; swap in the loaded state.
	w.seed = sf.Seed
	w.width, w.height = sf.Width, sf.Height
	w.generation = sf.Generation
	w.atmos = sf.Atmosphere
	w.atmos.Rebalance()
	w.sky = sky{
		TimeOfDay:   sf.Sky.TimeOfDay,
		Season:      sf.Sky.Season,
		SeasonTick:  sf.Sky.SeasonTick,
		Weather:     sf.Sky.Weather,
		WeatherLeft: sf.Sky.WeatherLeft,
	}
	w.terrain = sf.Terrain
	w.disasters = sf.Disasters
	w.sinceDisaster = sf.SinceDisaster
	w.history.Clear()

	w.initArena()
	for idx, p := range cells {
		var g components.Genetics
		g.SetTraits(p.ent.Traits)

		pos := components.Position{X: idx % w.width, Y: idx / w.width}
		org := components.Organism{
			Species:       p.sp,
			Energy:        p.ent.Energy,
			Age:           p.ent.Age,
			MaxAge:        p.ent.MaxAge,
			Stage:         components.StageFor(p.ent.Age, p.ent.MaxAge),
			ReproCooldown: p.ent.Cooldown,
			Decay:         p.ent.Decay,
		}
		health := components.Health{
			Infected:      p.ent.Infected,
			InfectionLeft: p.ent.InfectionLeft,
			Immune:        p.ent.Immune,
			ImmunityLeft:  p.ent.ImmunityLeft,
		}
		trail := components.Trail{}

		e := w.mapper.NewEntity(&pos, &org, &g, &health, &trail)
		w.grid[idx] = e
	}

	w.recount()
	slog.Info("world loaded",
		"generation", w.generation,
		"living", w.LivingCount(),
		"width", w.width, "height", w.height)
	return nil
}
