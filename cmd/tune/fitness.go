package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/lightcycle/config"
	"github.com/pthm-cable/lightcycle/game"
	"github.com/pthm-cable/lightcycle/telemetry"
)

// FitnessEvaluator runs headless rounds and scores a parameter vector.
type FitnessEvaluator struct {
	params     *ParamVector
	seeds      []int64
	baseConfig *config.Config

	mu          sync.Mutex
	bestFitness float64
	bestSummary telemetry.Summary
	lastSummary telemetry.Summary
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		seeds:       seeds,
		baseConfig:  baseCfg,
		bestFitness: math.Inf(1),
	}
}

// LastSummary returns the pooled round summary of the most recent evaluation.
func (fe *FitnessEvaluator) LastSummary() telemetry.Summary {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastSummary
}

// BestSummary returns the pooled round summary of the best evaluation.
func (fe *FitnessEvaluator) BestSummary() telemetry.Summary {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestSummary
}

// Evaluate computes fitness for raw parameter values (lower = better).
// Fitness is the negative mean survival of computer riders in ticks.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	// One game per seed, all in parallel
	results := make([][]telemetry.RoundStats, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = runRounds(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var rounds []telemetry.RoundStats
	for _, r := range results {
		rounds = append(rounds, r...)
	}
	summary := telemetry.Summarize(rounds)
	fitness := computeFitness(summary)

	fe.mu.Lock()
	fe.lastSummary = summary
	if fitness < fe.bestFitness {
		fe.bestFitness = fitness
		fe.bestSummary = summary
	}
	fe.mu.Unlock()

	return fitness
}

// runRounds plays the configured number of headless rounds for one seed.
// The config is shared read-only across goroutines.
func runRounds(cfg *config.Config, seed int64) []telemetry.RoundStats {
	g := game.NewGameWithOptions(game.Options{
		Config:         cfg,
		Seed:           seed,
		Headless:       true,
		StepsPerUpdate: 256,
	})
	defer g.Unload()

	for !g.Done() {
		g.UpdateHeadless()
	}
	return g.Results()
}

// computeFitness scores a summary. Faulted decisions are penalized so an
// unstable parameter set never wins on survival alone.
func computeFitness(s telemetry.Summary) float64 {
	if s.Rounds == 0 {
		return 0
	}
	return -s.SurvivalMean + 100*float64(s.Faults)
}

// copyConfig makes an independent copy of the base config.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	cfg.AI.CorridorDepths = append([]float64(nil), fe.baseConfig.AI.CorridorDepths...)
	return &cfg
}
