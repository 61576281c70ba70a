// Package game hosts the light-cycle arena: an ark ECS world of cycles, the
// navigation session steering the computer riders, telemetry and the raylib
// viewer.
package game

import (
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"
	"go.uber.org/zap"

	"github.com/pthm-cable/lightcycle/camera"
	"github.com/pthm-cable/lightcycle/components"
	"github.com/pthm-cable/lightcycle/config"
	"github.com/pthm-cable/lightcycle/navigation"
	"github.com/pthm-cable/lightcycle/renderer"
	"github.com/pthm-cable/lightcycle/systems"
	"github.com/pthm-cable/lightcycle/telemetry"
	"github.com/pthm-cable/lightcycle/ui"
)

// Options configures a game instance.
type Options struct {
	Config         *config.Config // nil uses config.Cfg()
	Logger         *zap.Logger    // nil disables logging
	Seed           int64
	OutputDir      string // CSV output, empty to disable
	Headless       bool   // no raylib, every cycle steered by the engine
	StepsPerUpdate int
}

// maxStepsPerUpdate bounds the viewer's speed control.
const maxStepsPerUpdate = 10

// Game holds the complete arena state.
type Game struct {
	cfg    *config.Config
	logger *zap.Logger
	rng    *rand.Rand

	world    *ecs.World
	filter   *ecs.Filter4[components.Position, components.Motion, components.Cycle, components.Trail]
	cycleMap *ecs.Map[components.Cycle]
	motion   *ecs.Map[components.Motion]

	spawner  *systems.Spawner
	turns    *systems.TurnSystem
	movement *systems.MovementSystem
	query    *systems.ArenaQuery
	session  *navigation.Session

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager
	results   []telemetry.RoundStats

	// Last engine decision per slot, for the viewer
	lastDecision []navigation.Decision

	// State
	human          int // keyboard slot, -1 when every cycle is a computer rider
	round          int
	tick           int32 // ticks in the current round
	now            time.Duration
	roundOver      bool
	gap            int32 // viewer ticks until the next round
	lastWinner     int
	paused         bool
	headless       bool
	stepsPerUpdate int

	// Viewer
	camera   *camera.Camera
	arena    *renderer.ArenaRenderer
	sparkFX  *renderer.SparkRenderer
	sparks   *systems.SparkSystem
	follow   bool
	hud      *ui.HUD
	controls *ui.ControlsPanel
	perfPane *ui.PerfPanel
	showPerf bool
}

// NewGameWithOptions creates a game and spawns the first round.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	world := ecs.NewWorld()
	turns := systems.NewTurnSystem(world)

	g := &Game{
		cfg:            cfg,
		logger:         logger.Named("game"),
		rng:            rand.New(rand.NewSource(opts.Seed)),
		world:          world,
		filter:         ecs.NewFilter4[components.Position, components.Motion, components.Cycle, components.Trail](world),
		cycleMap:       ecs.NewMap[components.Cycle](world),
		motion:         ecs.NewMap[components.Motion](world),
		spawner:        systems.NewSpawner(world),
		turns:          turns,
		movement:       systems.NewMovementSystem(world, cfg.Arena.Size),
		query:          systems.NewArenaQuery(world, cfg.Arena.Size, cfg.Arena.TrailWidth, turns),
		session:        navigation.NewSession(cfg.AI.Params(), rand.New(rand.NewSource(opts.Seed+1)), logger),
		collector:      telemetry.NewCollector(),
		perf:           telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		human:          cfg.Arena.Human,
		headless:       opts.Headless,
		stepsPerUpdate: steps,
		lastWinner:     -1,
	}
	if opts.Headless {
		g.human = -1
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		g.logger.Error("output disabled", zap.Error(err))
	}
	g.output = output
	if err := g.output.WriteConfig(cfg); err != nil {
		g.logger.Error("failed to write config", zap.Error(err))
	}

	if !opts.Headless {
		g.camera = camera.New(cfg.Derived.ScreenW32, cfg.Derived.ScreenH32, float32(cfg.Arena.Size))
		g.arena = renderer.NewArenaRenderer(float32(cfg.Arena.Size), float32(cfg.Screen.GridStep), float32(cfg.Arena.TrailWidth))
		g.sparkFX = renderer.NewSparkRenderer()
		g.sparks = systems.NewSparkSystem(600, rand.New(rand.NewSource(opts.Seed+2)))
		g.hud = ui.NewHUD()
		g.controls = ui.NewControlsPanel(int32(cfg.Screen.Width)-250, 10, 240)
		g.perfPane = ui.NewPerfPanel(int32(cfg.Screen.Width)-250, 130)
	}

	if travel := cfg.CooldownTravel(); travel >= cfg.AI.EvasiveWidth {
		g.logger.Warn("cycles outrun the turn cooldown",
			zap.Float64("cooldown_travel", travel),
			zap.Float64("evasive_width", cfg.AI.EvasiveWidth),
		)
	}

	g.session.Initialize(g.query)
	g.startRound()
	return g
}

// Round returns the current round number, starting at 1.
func (g *Game) Round() int {
	return g.round
}

// Tick returns the tick within the current round.
func (g *Game) Tick() int32 {
	return g.tick
}

// Results returns the stats of every finished round.
func (g *Game) Results() []telemetry.RoundStats {
	return g.results
}

// Done reports whether the configured number of rounds has been played.
func (g *Game) Done() bool {
	return g.cfg.Sim.Rounds > 0 && len(g.results) >= g.cfg.Sim.Rounds
}

// Summary aggregates the finished rounds.
func (g *Game) Summary() telemetry.Summary {
	return telemetry.Summarize(g.results)
}

// Unload releases resources and logs the run summary.
func (g *Game) Unload() {
	if len(g.results) > 0 {
		g.logger.Info("summary", g.Summary().Fields()...)
	}
	if err := g.output.Close(); err != nil {
		g.logger.Error("failed to close output", zap.Error(err))
	}
	_ = g.logger.Sync()
}
