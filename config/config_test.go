package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/lightcycle/navigation"
)

func TestDefaultsMatchEngine(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, navigation.DefaultParams(), cfg.AI.Params())
	assert.Equal(t, 120.0, cfg.Arena.Size)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.InDelta(t, float64(time.Second/60), float64(cfg.Derived.Tick), float64(time.Microsecond))
	assert.Equal(t, float32(7.5), cfg.Derived.Scale)
}

func TestLoadOverridesOnlyGivenKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.yaml")
	require.NoError(t, os.WriteFile(path, []byte("arena:\n  players: 6\nai:\n  cooldown_ms: 100\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Arena.Players)
	assert.Equal(t, 8.0, cfg.Arena.Speed)
	assert.Equal(t, 100*time.Millisecond, cfg.AI.Params().Cooldown)
	assert.Equal(t, 28.0, cfg.AI.Params().MaxLookahead)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("arena: [1, 2"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"tiny arena", func(c *Config) { c.Arena.Size = 10 }},
		{"no players", func(c *Config) { c.Arena.Players = 0 }},
		{"human out of range", func(c *Config) { c.Arena.Human = 4 }},
		{"stopped", func(c *Config) { c.Arena.Speed = 0 }},
		{"spawn on the wall", func(c *Config) { c.Arena.SpawnMargin = 1 }},
		{"lookahead below step", func(c *Config) { c.AI.MaxLookahead = 0.5 }},
		{"no corridor depths", func(c *Config) { c.AI.CorridorDepths = nil }},
		{"empty queue", func(c *Config) { c.AI.EnclosureQueueCap = 0 }},
		{"probability", func(c *Config) { c.AI.SeekProbability = 1.5 }},
		{"zero dt", func(c *Config) { c.Sim.DT = 0 }},
		{"no tick cap", func(c *Config) { c.Sim.MaxTicks = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}

	cfg := Default()
	cfg.Arena.Human = -1
	assert.NoError(t, cfg.Validate())
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Arena.Players = 3
	cfg.AI.TurnMargin = 1.25

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, cfg.WriteYAML(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Arena.Players)
	assert.Equal(t, 1.25, loaded.AI.TurnMargin)
	assert.Equal(t, cfg.AI, loaded.AI)
}

func TestCfgBeforeInitPanics(t *testing.T) {
	saved := global
	defer func() { global = saved }()

	global = nil
	assert.Panics(t, func() { Cfg() })
	require.NoError(t, Init(""))
	assert.NotNil(t, Cfg())
}

func TestCooldownTravel(t *testing.T) {
	cfg := Default()
	assert.InDelta(t, 2.0, cfg.CooldownTravel(), 1e-9)
	// A cycle must not run the width of a corridor before it can turn again.
	assert.Less(t, cfg.CooldownTravel(), cfg.AI.EvasiveWidth)

	cfg.Arena.Speed = 12
	assert.InDelta(t, 3.0, cfg.CooldownTravel(), 1e-9)
}
