package telemetry

import (
	"math"
	"sort"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
)

// RoundStats holds the outcome of one round.
type RoundStats struct {
	Round     int   `csv:"round"`
	Ticks     int32 `csv:"ticks"`
	Winner    int   `csv:"winner"` // slot of the last cycle standing, -1 for a draw
	Survivors int   `csv:"survivors"`

	// Crashes by cause
	Crashes       int `csv:"crashes"`
	WallCrashes   int `csv:"wall_crashes"`
	TrailCrashes  int `csv:"trail_crashes"`
	HeadOnCrashes int `csv:"head_on_crashes"`

	// Engine decisions
	Decisions int `csv:"decisions"`
	Turns     int `csv:"turns"`
	Cooldown  int `csv:"cooldown"`
	Emergency int `csv:"emergency"`
	Seek      int `csv:"seek"`
	Straight  int `csv:"straight"`
	Weighted  int `csv:"weighted"`
	Hold      int `csv:"hold"`
	Faults    int `csv:"faults"`

	// Survival in ticks
	AISurvivalMean float64 `csv:"ai_survival_mean"`
	AISurvivalMin  int32   `csv:"ai_survival_min"`
	HumanSurvival  int32   `csv:"human_survival"` // -1 without a human rider
}

// Fields returns the stats as zap fields.
func (s RoundStats) Fields() []zap.Field {
	return []zap.Field{
		zap.Int("round", s.Round),
		zap.Int32("ticks", s.Ticks),
		zap.Int("winner", s.Winner),
		zap.Int("crashes", s.Crashes),
		zap.Int("turns", s.Turns),
		zap.Int("emergency", s.Emergency),
		zap.Int("seek", s.Seek),
		zap.Int("weighted", s.Weighted),
		zap.Int("faults", s.Faults),
		zap.Float64("ai_survival_mean", s.AISurvivalMean),
	}
}

// Summary aggregates many rounds.
type Summary struct {
	Rounds         int
	SurvivalMean   float64
	SurvivalStd    float64
	SurvivalP10    float64
	SurvivalP50    float64
	SurvivalP90    float64
	DrawRate       float64
	TurnsPerRound  float64
	EmergencyShare float64 // emergency turns over all turns
	Faults         int
}

// Summarize computes survival statistics over rounds.
func Summarize(rounds []RoundStats) Summary {
	n := len(rounds)
	if n == 0 {
		return Summary{}
	}

	survival := make([]float64, n)
	var draws, turns, emergency, faults int
	for i, r := range rounds {
		survival[i] = r.AISurvivalMean
		if r.Winner < 0 {
			draws++
		}
		turns += r.Turns
		emergency += r.Emergency
		faults += r.Faults
	}

	mean, std := stat.MeanStdDev(survival, nil)
	if n < 2 || math.IsNaN(std) {
		std = 0
	}
	sort.Float64s(survival)

	s := Summary{
		Rounds:        n,
		SurvivalMean:  mean,
		SurvivalStd:   std,
		SurvivalP10:   stat.Quantile(0.10, stat.Empirical, survival, nil),
		SurvivalP50:   stat.Quantile(0.50, stat.Empirical, survival, nil),
		SurvivalP90:   stat.Quantile(0.90, stat.Empirical, survival, nil),
		DrawRate:      float64(draws) / float64(n),
		TurnsPerRound: float64(turns) / float64(n),
		Faults:        faults,
	}
	if turns > 0 {
		s.EmergencyShare = float64(emergency) / float64(turns)
	}
	return s
}

// Fields returns the summary as zap fields.
func (s Summary) Fields() []zap.Field {
	return []zap.Field{
		zap.Int("rounds", s.Rounds),
		zap.Float64("survival_mean", s.SurvivalMean),
		zap.Float64("survival_std", s.SurvivalStd),
		zap.Float64("survival_p10", s.SurvivalP10),
		zap.Float64("survival_p50", s.SurvivalP50),
		zap.Float64("survival_p90", s.SurvivalP90),
		zap.Float64("draw_rate", s.DrawRate),
		zap.Float64("turns_per_round", s.TurnsPerRound),
		zap.Float64("emergency_share", s.EmergencyShare),
		zap.Int("faults", s.Faults),
	}
}
