// Package config provides configuration loading and access for the arena.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/lightcycle/navigation"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("invalid config")

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Arena     ArenaConfig     `yaml:"arena"`
	AI        AIConfig        `yaml:"ai"`
	Sim       SimConfig       `yaml:"sim"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Log       LogConfig       `yaml:"log"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds viewer window parameters.
type ScreenConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	TargetFPS int     `yaml:"target_fps"`
	GridStep  float64 `yaml:"grid_step"`
}

// ArenaConfig holds the playing field and its riders.
type ArenaConfig struct {
	Size        float64 `yaml:"size"`         // side of the square arena in units
	Players     int     `yaml:"players"`      // cycles per round, human included
	Human       int     `yaml:"human"`        // slot steered by keyboard, -1 for none
	Speed       float64 `yaml:"speed"`        // units per second
	SpawnMargin float64 `yaml:"spawn_margin"` // distance of the spawn ring from the walls
	TrailWidth  float64 `yaml:"trail_width"`  // half-thickness of a wall of light
}

// AIConfig mirrors navigation.Params.
type AIConfig struct {
	RayStep      float64 `yaml:"ray_step"`
	MaxLookahead float64 `yaml:"max_lookahead"`
	RayBias      float64 `yaml:"ray_bias"`

	CorridorDepths    []float64 `yaml:"corridor_depths"`
	CorridorStep      float64   `yaml:"corridor_step"`
	CorridorMaxOffset float64   `yaml:"corridor_max_offset"`
	CorridorUnit      float64   `yaml:"corridor_unit"`

	EnclosureCell     float64 `yaml:"enclosure_cell"`
	EnclosureStart    float64 `yaml:"enclosure_start"`
	EnclosureQueueCap int     `yaml:"enclosure_queue_cap"`
	EnclosureMaxNodes int     `yaml:"enclosure_max_nodes"`
	EnclosurePenaltyK float64 `yaml:"enclosure_penalty_k"`

	CooldownMS           float64 `yaml:"cooldown_ms"`
	EvasiveDistance      float64 `yaml:"evasive_distance"`
	EvasiveWidth         float64 `yaml:"evasive_width"`
	EmergencyWidthWeight float64 `yaml:"emergency_width_weight"`
	EmergencyMargin      float64 `yaml:"emergency_margin"`
	SafeDistance         float64 `yaml:"safe_distance"`
	SafeWidth            float64 `yaml:"safe_width"`
	WidthWeight          float64 `yaml:"width_weight"`
	ForwardPenaltyWeight float64 `yaml:"forward_penalty_weight"`
	SidePenaltyWeight    float64 `yaml:"side_penalty_weight"`
	TurnMargin           float64 `yaml:"turn_margin"`

	SeekDistance    float64 `yaml:"seek_distance"`
	SeekProbability float64 `yaml:"seek_probability"`
}

// SimConfig holds simulation stepping parameters.
type SimConfig struct {
	DT       float64 `yaml:"dt"`        // seconds per tick
	MaxTicks int32   `yaml:"max_ticks"` // round is called a draw after this many ticks
	Rounds   int     `yaml:"rounds"`    // headless rounds to run, 0 for unlimited
	Seed     int64   `yaml:"seed"`
	RoundGap int32   `yaml:"round_gap"` // viewer ticks between a round end and the respawn
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow int  `yaml:"perf_window"` // ticks in the rolling perf average
	LogPerf    bool `yaml:"log_perf"`    // log perf stats at each round end
}

// LogConfig holds logger parameters.
type LogConfig struct {
	Level string `yaml:"level"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Tick      time.Duration // Sim.DT as a duration
	ScreenW32 float32
	ScreenH32 float32
	Scale     float32 // pixels per arena unit
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
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
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()
	return cfg, nil
}

// Validate checks that the settings describe a playable arena.
func (c *Config) Validate() error {
	a, ai := c.Arena, c.AI
	switch {
	case a.Size < 20:
		return fmt.Errorf("%w: arena.size %g below 20", ErrInvalid, a.Size)
	case a.Players < 1:
		return fmt.Errorf("%w: arena.players must be positive", ErrInvalid)
	case a.Human < -1 || a.Human >= a.Players:
		return fmt.Errorf("%w: arena.human %d outside [-1, %d)", ErrInvalid, a.Human, a.Players)
	case a.Speed <= 0:
		return fmt.Errorf("%w: arena.speed must be positive", ErrInvalid)
	case a.SpawnMargin <= navigation.WallMargin || a.SpawnMargin >= a.Size/2:
		return fmt.Errorf("%w: arena.spawn_margin %g outside (%g, %g)", ErrInvalid, a.SpawnMargin, navigation.WallMargin, a.Size/2)
	case a.TrailWidth <= 0:
		return fmt.Errorf("%w: arena.trail_width must be positive", ErrInvalid)
	case ai.RayStep <= 0 || ai.MaxLookahead < ai.RayStep:
		return fmt.Errorf("%w: ai.ray_step and ai.max_lookahead", ErrInvalid)
	case len(ai.CorridorDepths) == 0 || ai.CorridorStep <= 0:
		return fmt.Errorf("%w: ai.corridor_depths and ai.corridor_step", ErrInvalid)
	case ai.EnclosureCell <= 0 || ai.EnclosureQueueCap < 1 || ai.EnclosureMaxNodes < 0:
		return fmt.Errorf("%w: ai.enclosure_*", ErrInvalid)
	case ai.CooldownMS < 0:
		return fmt.Errorf("%w: ai.cooldown_ms must not be negative", ErrInvalid)
	case ai.SeekProbability < 0 || ai.SeekProbability > 1:
		return fmt.Errorf("%w: ai.seek_probability %g outside [0, 1]", ErrInvalid, ai.SeekProbability)
	case c.Screen.GridStep < 0:
		return fmt.Errorf("%w: screen.grid_step must not be negative", ErrInvalid)
	case c.Sim.DT <= 0:
		return fmt.Errorf("%w: sim.dt must be positive", ErrInvalid)
	case c.Sim.MaxTicks < 1:
		return fmt.Errorf("%w: sim.max_ticks must be positive", ErrInvalid)
	case c.Sim.Rounds < 0:
		return fmt.Errorf("%w: sim.rounds must not be negative", ErrInvalid)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Tick = time.Duration(c.Sim.DT * float64(time.Second))
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.Scale = float32(min(c.Screen.Width, c.Screen.Height)) / float32(c.Arena.Size)
}

// CooldownTravel returns the distance a cycle covers while the engine's turn
// cooldown holds it on its heading.
func (c *Config) CooldownTravel() float64 {
	return c.Arena.Speed * c.AI.CooldownMS / 1000
}

// Params converts the AI section to engine parameters.
func (ai AIConfig) Params() navigation.Params {
	return navigation.Params{
		RayStep:      ai.RayStep,
		MaxLookahead: ai.MaxLookahead,
		RayBias:      ai.RayBias,

		CorridorDepths:    append([]float64(nil), ai.CorridorDepths...),
		CorridorStep:      ai.CorridorStep,
		CorridorMaxOffset: ai.CorridorMaxOffset,
		CorridorUnit:      ai.CorridorUnit,

		EnclosureCell:     ai.EnclosureCell,
		EnclosureStart:    ai.EnclosureStart,
		EnclosureQueueCap: ai.EnclosureQueueCap,
		EnclosureMaxNodes: ai.EnclosureMaxNodes,
		EnclosurePenaltyK: ai.EnclosurePenaltyK,

		Cooldown:             time.Duration(ai.CooldownMS * float64(time.Millisecond)),
		EvasiveDistance:      ai.EvasiveDistance,
		EvasiveWidth:         ai.EvasiveWidth,
		EmergencyWidthWeight: ai.EmergencyWidthWeight,
		EmergencyMargin:      ai.EmergencyMargin,
		SafeDistance:         ai.SafeDistance,
		SafeWidth:            ai.SafeWidth,
		WidthWeight:          ai.WidthWeight,
		ForwardPenaltyWeight: ai.ForwardPenaltyWeight,
		SidePenaltyWeight:    ai.SidePenaltyWeight,
		TurnMargin:           ai.TurnMargin,

		SeekDistance:    ai.SeekDistance,
		SeekProbability: ai.SeekProbability,
	}
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
