package telemetry

import (
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Phase names for the simulation step.
const (
	PhaseQuery      = "arena_query"
	PhaseNavigation = "navigation"
	PhaseMovement   = "movement"
	PhaseRound      = "round"
	PhaseTelemetry  = "telemetry"
)

var phases = []string{PhaseQuery, PhaseNavigation, PhaseMovement, PhaseRound, PhaseTelemetry}

// Phases returns the phase names in step order.
func Phases() []string {
	return append([]string(nil), phases...)
}

// tickSample holds timing data for a single tick.
type tickSample struct {
	total  time.Duration
	phases map[string]time.Duration
}

// PerfCollector tracks tick timing over a rolling window.
type PerfCollector struct {
	window  []tickSample
	next    int
	count   int
	current map[string]time.Duration

	tickStart  time.Time
	phaseStart time.Time
	phase      string

	// Viewer frame timing
	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		window:  make([]tickSample, windowSize),
		current: make(map[string]time.Duration, len(phases)),
	}
}

// StartTick begins timing a new simulation tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.current = make(map[string]time.Duration, len(phases))
	p.phase = ""
}

// StartPhase closes the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.phase != "" {
		p.current[p.phase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.phase = phase
}

// EndTick finishes timing the current tick and records the sample.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	if p.phase != "" {
		p.current[p.phase] += now.Sub(p.phaseStart)
	}

	p.window[p.next] = tickSample{total: now.Sub(p.tickStart), phases: p.current}
	p.next = (p.next + 1) % len(p.window)
	p.count = min(p.count+1, len(p.window))
}

// RecordFrame records viewer frame timing.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// Reset drops all samples.
func (p *PerfCollector) Reset() {
	p.next = 0
	p.count = 0
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64 // share of the average tick

	TicksPerSecond float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	stats := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frame,
	}
	if p.frame > 0 {
		stats.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.count == 0 {
		return stats
	}

	totals := make([]float64, p.count)
	phaseSum := make(map[string]time.Duration)
	for i, s := range p.window[:p.count] {
		totals[i] = float64(s.total)
		for phase, d := range s.phases {
			phaseSum[phase] += d
		}
	}

	stats.AvgTickDuration = time.Duration(stat.Mean(totals, nil))
	stats.MinTickDuration = time.Duration(floats.Min(totals))
	stats.MaxTickDuration = time.Duration(floats.Max(totals))
	if stats.AvgTickDuration > 0 {
		stats.TicksPerSecond = float64(time.Second) / float64(stats.AvgTickDuration)
	}
	for phase, sum := range phaseSum {
		avg := sum / time.Duration(p.count)
		stats.PhaseAvg[phase] = avg
		if stats.AvgTickDuration > 0 {
			stats.PhasePct[phase] = float64(avg) / float64(stats.AvgTickDuration) * 100
		}
	}
	return stats
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats(logger *zap.Logger) {
	logger.Info("perf", s.Fields()...)
}

// Fields returns the stats as zap fields. Phases under 0.1% are omitted.
func (s PerfStats) Fields() []zap.Field {
	fields := []zap.Field{
		zap.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		zap.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		zap.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		zap.Int("ticks_per_sec", int(s.TicksPerSecond)),
	}
	if s.FPS > 0 {
		fields = append(fields, zap.Int("fps", int(s.FPS)))
	}
	for _, phase := range phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			fields = append(fields, zap.Float64(phase+"_pct", float64(int(pct*10))/10))
		}
	}
	return fields
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	Round         int     `csv:"round"`
	WindowEnd     int32   `csv:"window_end"`
	AvgTickUS     int64   `csv:"avg_tick_us"`
	MinTickUS     int64   `csv:"min_tick_us"`
	MaxTickUS     int64   `csv:"max_tick_us"`
	TicksPerSec   float64 `csv:"ticks_per_sec"`
	FPS           float64 `csv:"fps"`
	QueryPct      float64 `csv:"arena_query_pct"`
	NavigationPct float64 `csv:"navigation_pct"`
	MovementPct   float64 `csv:"movement_pct"`
	RoundPct      float64 `csv:"round_pct"`
	TelemetryPct  float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(round int, windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		Round:         round,
		WindowEnd:     windowEnd,
		AvgTickUS:     s.AvgTickDuration.Microseconds(),
		MinTickUS:     s.MinTickDuration.Microseconds(),
		MaxTickUS:     s.MaxTickDuration.Microseconds(),
		TicksPerSec:   s.TicksPerSecond,
		FPS:           s.FPS,
		QueryPct:      s.PhasePct[PhaseQuery],
		NavigationPct: s.PhasePct[PhaseNavigation],
		MovementPct:   s.PhasePct[PhaseMovement],
		RoundPct:      s.PhasePct[PhaseRound],
		TelemetryPct:  s.PhasePct[PhaseTelemetry],
	}
}
