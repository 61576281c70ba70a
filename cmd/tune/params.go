package main

import (
	"github.com/pthm-cable/lightcycle/config"
)

// ParamSpec defines a single tunable engine constant.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of tunable constants.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable constants. Probe
// geometry (ray step, corridor offsets, enclosure grid) stays fixed.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Emergency gate and scoring
			{Name: "evasive_distance", Path: "ai.evasive_distance", Min: 4, Max: 24, Default: 12},
			{Name: "evasive_width", Path: "ai.evasive_width", Min: 0.5, Max: 4, Default: 2.5},
			{Name: "emergency_width_weight", Path: "ai.emergency_width_weight", Min: 0, Max: 5, Default: 2},
			{Name: "emergency_margin", Path: "ai.emergency_margin", Min: 0, Max: 4, Default: 0.5},
			// Safe straight
			{Name: "safe_distance", Path: "ai.safe_distance", Min: 8, Max: 28, Default: 20},
			{Name: "safe_width", Path: "ai.safe_width", Min: 1, Max: 4, Default: 3},
			// Weighted choice
			{Name: "width_weight", Path: "ai.width_weight", Min: 0, Max: 6, Default: 2.5},
			{Name: "forward_penalty_weight", Path: "ai.forward_penalty_weight", Min: 0, Max: 2, Default: 0.5},
			{Name: "side_penalty_weight", Path: "ai.side_penalty_weight", Min: 0, Max: 2, Default: 1},
			{Name: "turn_margin", Path: "ai.turn_margin", Min: 0, Max: 8, Default: 2},
			{Name: "enclosure_penalty_k", Path: "ai.enclosure_penalty_k", Min: 0, Max: 1, Default: 0.2},
			// Cooldown between turns
			{Name: "cooldown_ms", Path: "ai.cooldown_ms", Min: 50, Max: 600, Default: 250},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig writes clamped values into the AI section. Order matches Specs.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)
	ai := &cfg.AI
	ai.EvasiveDistance = c[0]
	ai.EvasiveWidth = c[1]
	ai.EmergencyWidthWeight = c[2]
	ai.EmergencyMargin = c[3]
	ai.SafeDistance = c[4]
	ai.SafeWidth = c[5]
	ai.WidthWeight = c[6]
	ai.ForwardPenaltyWeight = c[7]
	ai.SidePenaltyWeight = c[8]
	ai.TurnMargin = c[9]
	ai.EnclosurePenaltyK = c[10]
	ai.CooldownMS = c[11]
}

// ExtractFromConfig reads the current values from the AI section.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	ai := cfg.AI
	return []float64{
		ai.EvasiveDistance,
		ai.EvasiveWidth,
		ai.EmergencyWidthWeight,
		ai.EmergencyMargin,
		ai.SafeDistance,
		ai.SafeWidth,
		ai.WidthWeight,
		ai.ForwardPenaltyWeight,
		ai.SidePenaltyWeight,
		ai.TurnMargin,
		ai.EnclosurePenaltyK,
		ai.CooldownMS,
	}
}

// EvalRow is one line of the tuning log.
type EvalRow struct {
	Eval    int     `csv:"eval"`
	Fitness float64 `csv:"fitness"`

	EvasiveDistance      float64 `csv:"evasive_distance"`
	EvasiveWidth         float64 `csv:"evasive_width"`
	EmergencyWidthWeight float64 `csv:"emergency_width_weight"`
	EmergencyMargin      float64 `csv:"emergency_margin"`
	SafeDistance         float64 `csv:"safe_distance"`
	SafeWidth            float64 `csv:"safe_width"`
	WidthWeight          float64 `csv:"width_weight"`
	ForwardPenaltyWeight float64 `csv:"forward_penalty_weight"`
	SidePenaltyWeight    float64 `csv:"side_penalty_weight"`
	TurnMargin           float64 `csv:"turn_margin"`
	EnclosurePenaltyK    float64 `csv:"enclosure_penalty_k"`
	CooldownMS           float64 `csv:"cooldown_ms"`
}

// NewEvalRow builds a log row from clamped values in Specs order.
func NewEvalRow(eval int, fitness float64, c []float64) EvalRow {
	return EvalRow{
		Eval:                 eval,
		Fitness:              fitness,
		EvasiveDistance:      c[0],
		EvasiveWidth:         c[1],
		EmergencyWidthWeight: c[2],
		EmergencyMargin:      c[3],
		SafeDistance:         c[4],
		SafeWidth:            c[5],
		WidthWeight:          c[6],
		ForwardPenaltyWeight: c[7],
		SidePenaltyWeight:    c[8],
		TurnMargin:           c[9],
		EnclosurePenaltyK:    c[10],
		CooldownMS:           c[11],
	}
}
