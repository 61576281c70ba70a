// Package main tunes the navigation engine constants with CMA-ES so computer
// riders survive longer in headless rounds.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/lightcycle/config"
	"github.com/pthm-cable/lightcycle/logging"
)

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	rounds := flag.Int("rounds", 8, "Rounds per seed and evaluation")
	maxTicks := flag.Int("max-ticks", 0, "Tick cap per round (0 = use config)")
	seeds := flag.Int("seeds", 4, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	logger, err := logging.New(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(logger, *configPath, *outputDir, *rounds, *maxTicks, *seeds, *maxEvals, *population); err != nil {
		logger.Error("tuning failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(logger *zap.Logger, configPath, outputDir string, rounds, maxTicks, seeds, maxEvals, population int) error {
	if outputDir == "" {
		return fmt.Errorf("--output is required")
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	baseCfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	baseCfg.Sim.Rounds = max(rounds, 1)
	if maxTicks > 0 {
		baseCfg.Sim.MaxTicks = int32(maxTicks)
	}
	// Every slot is a computer rider in headless play
	baseCfg.Arena.Human = -1

	params := NewParamVector()
	evalSeeds := make([]int64, seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}
	evaluator := NewFitnessEvaluator(params, evalSeeds, baseCfg)

	dim := params.Dim()
	initX := params.Normalize(params.ExtractFromConfig(baseCfg))

	popSize := population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}
	settings := &optimize.Settings{
		FuncEvaluations: maxEvals,
		Concurrent:      0,
	}

	logPath := filepath.Join(outputDir, "tune_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		return fmt.Errorf("creating log file: %w", err)
	}
	defer logFile.Close()

	evalCount := 0
	bestFitness := 1e9
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Denormalize(x)
			fitness := evaluator.Evaluate(raw)
			evalCount++

			// Log clamped values, the ones actually used
			clamped := params.Clamp(raw)
			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = clamped
			}
			row := []EvalRow{NewEvalRow(evalCount, fitness, clamped)}
			if evalCount == 1 {
				err = gocsv.MarshalFile(&row, logFile)
			} else {
				err = gocsv.MarshalWithoutHeaders(&row, logFile)
			}
			if err != nil {
				logger.Error("failed to write log row", zap.Error(err))
			}

			elapsed := time.Since(startTime)
			remaining := time.Duration(maxEvals-evalCount) * (elapsed / time.Duration(evalCount))
			s := evaluator.LastSummary()
			logger.Info("eval",
				zap.Int("eval", evalCount),
				zap.Int("max_evals", maxEvals),
				zap.Float64("survival_mean", s.SurvivalMean),
				zap.Float64("survival_p10", s.SurvivalP10),
				zap.Float64("emergency_share", s.EmergencyShare),
				zap.Float64("best", bestFitness),
				zap.String("elapsed", formatDuration(elapsed)),
				zap.String("eta", formatDuration(remaining)),
			)
			return fitness
		},
	}

	logger.Info("starting CMA-ES",
		zap.Int("params", dim),
		zap.Int("population", popSize),
		zap.Int("max_evals", maxEvals),
		zap.Int("seeds", seeds),
		zap.Int("rounds", baseCfg.Sim.Rounds),
		zap.Int32("max_ticks", baseCfg.Sim.MaxTicks),
	)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		logger.Warn("optimization ended", zap.Error(err))
	}
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		return fmt.Errorf("no evaluation completed")
	}

	fields := []zap.Field{
		zap.Int("evals", evalCount),
		zap.String("elapsed", formatDuration(time.Since(startTime))),
		zap.Float64("best_fitness", bestFitness),
	}
	for i, spec := range params.Specs {
		fields = append(fields, zap.Float64(spec.Name, bestParams[i]))
	}
	logger.Info("optimization complete", fields...)
	logger.Info("best summary", evaluator.BestSummary().Fields()...)

	bestCfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("reloading config: %w", err)
	}
	params.ApplyToConfig(bestCfg, bestParams)

	configOutPath := filepath.Join(outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		return err
	}
	logger.Info("best config saved", zap.String("path", configOutPath))
	return nil
}
