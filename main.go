package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"terrarium/components"
	"terrarium/config"
	"terrarium/sim"
	"terrarium/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	preset := flag.String("preset", "", "Apply a named preset on top of the config")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxGens := flag.Int("max-gens", 0, "Stop after N generations (0 = unlimited)")
	intervalMs := flag.Int("interval-ms", 0, "Fixed step interval in milliseconds (0 = flat out)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	savePath := flag.String("save", "", "Write a save file on exit")
	loadPath := flag.String("load", "", "Load a save file before running")
	logStats := flag.Bool("log-stats", false, "Output windowed stats via slog")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *preset != "" {
		if err := config.ApplyPreset(cfg, *preset); err != nil {
			slog.Error("failed to apply preset", "error", err, "known", config.PresetNames())
			os.Exit(1)
		}
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	world := sim.New(cfg, rngSeed)

	if *loadPath != "" {
		f, err := os.Open(*loadPath)
		if err != nil {
			slog.Error("failed to open save", "error", err)
			os.Exit(1)
		}
		err = world.Load(f)
		f.Close()
		if err != nil {
			slog.Error("failed to load save", "error", err)
			os.Exit(1)
		}
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to set up output", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if output != nil {
		if err := cfg.WriteYAML(filepath.Join(*outputDir, "config.yaml")); err != nil {
			slog.Error("failed to snapshot config", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("starting simulation",
		"seed", rngSeed,
		"preset", *preset,
		"max_gens", *maxGens,
		"interval_ms", *intervalMs,
	)

	var ticker *time.Ticker
	if *intervalMs > 0 {
		ticker = time.NewTicker(time.Duration(*intervalMs) * time.Millisecond)
		defer ticker.Stop()
	}

	for {
		if ticker != nil {
			<-ticker.C
		}
		world.Step()

		if world.StatsDue() {
			stats := world.FlushStats()
			if *logStats {
				stats.Log()
			}
			if err := output.WriteStats(stats); err != nil {
				slog.Error("failed to write stats", "error", err)
			}
		}

		if world.LivingCount() == 0 {
			slog.Info("extinction", "generation", world.Generation())
			break
		}
		if *maxGens > 0 && world.Generation() >= *maxGens {
			slog.Info("max generations reached", "generation", world.Generation())
			break
		}
	}

	if err := output.WriteHistory(world.History()); err != nil {
		slog.Error("failed to write history", "error", err)
	}
	logFinal(world)

	if *savePath != "" {
		f, err := os.Create(*savePath)
		if err != nil {
			slog.Error("failed to create save", "error", err)
			os.Exit(1)
		}
		err = world.Save(f)
		f.Close()
		if err != nil {
			slog.Error("failed to write save", "error", err)
			os.Exit(1)
		}
		slog.Info("saved world", "path", *savePath)
	}
}

func logFinal(world *sim.World) {
	pops := world.Populations()
	slog.Info("final state",
		"generation", world.Generation(),
		"plants", pops[components.Plant],
		"herbivores", pops[components.Herbivore],
		"omnivores", pops[components.Omnivore],
		"carnivores", pops[components.Carnivore],
		"apex", pops[components.ApexPredator],
		"decomposers", pops[components.Decomposer],
		"parasites", pops[components.Parasite],
		"dead", pops[components.DeadMatter],
		"biodiversity", world.Biodiversity(),
		"atmosphere", world.AtmosphereState(),
	)
}
