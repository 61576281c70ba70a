package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"github.com/pthm-cable/lightcycle/config"
	"github.com/pthm-cable/lightcycle/game"
	"github.com/pthm-cable/lightcycle/logging"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics, every cycle steered by the engine")
	seed := flag.Int64("seed", 0, "RNG seed (0 = sim.seed from config, -1 = time-based)")
	rounds := flag.Int("rounds", -1, "Rounds to play (-1 = use config, 0 = unlimited)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logLevel := flag.String("log-level", "", "Log level (empty = use config)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	level := cfg.Log.Level
	if *logLevel != "" {
		level = *logLevel
	}
	logger, err := logging.New(level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	rngSeed := cfg.Sim.Seed
	switch {
	case *seed == -1:
		rngSeed = time.Now().UnixNano()
	case *seed != 0:
		rngSeed = *seed
	}
	if *rounds >= 0 {
		cfg.Sim.Rounds = *rounds
	}

	opts := game.Options{
		Logger:         logger,
		Seed:           rngSeed,
		OutputDir:      *outputDir,
		Headless:       *headless,
		StepsPerUpdate: *stepsPerUpdate,
	}

	if *headless {
		// Headless mode - pure CPU simulation, no raylib needed
		if cfg.Sim.Rounds == 0 {
			logger.Warn("headless run with unlimited rounds, stop with an interrupt")
		}
		g := game.NewGameWithOptions(opts)
		defer g.Unload()

		logger.Info("starting headless run",
			zap.Int64("seed", rngSeed),
			zap.Int("rounds", cfg.Sim.Rounds),
			zap.Int("players", cfg.Arena.Players),
			zap.Int("steps_per_update", *stepsPerUpdate),
		)
		for !g.Done() {
			g.UpdateHeadless()
		}
		return
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Light Cycles")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	logger.Info("starting viewer", zap.Int64("seed", rngSeed), zap.Int("human", cfg.Arena.Human))
	for !rl.WindowShouldClose() && !g.Done() {
		g.Update()
		g.Draw()
	}
}
