package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/lightcycle/config"
)

// OutputManager writes round and perf records as CSV.
type OutputManager struct {
	dir        string
	roundsFile *os.File
	perfFile   *os.File

	roundsHeaderWritten bool
	perfHeaderWritten   bool
}

// NewOutputManager creates the output directory and its CSV files.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "rounds.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating rounds.csv: %w", err)
	}
	om.roundsFile = f

	f, err = os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		om.roundsFile.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f

	return om, nil
}

// WriteConfig saves the configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteRound appends a round record to rounds.csv.
func (om *OutputManager) WriteRound(stats RoundStats) error {
	if om == nil {
		return nil
	}
	if err := appendCSV(om.roundsFile, []RoundStats{stats}, &om.roundsHeaderWritten); err != nil {
		return fmt.Errorf("writing round: %w", err)
	}
	return nil
}

// WritePerf appends a perf record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, round int, windowEnd int32) error {
	if om == nil {
		return nil
	}
	records := []PerfStatsCSV{stats.ToCSV(round, windowEnd)}
	if err := appendCSV(om.perfFile, records, &om.perfHeaderWritten); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// appendCSV writes records, with a header only on the first write.
func appendCSV(f *os.File, records any, headerWritten *bool) error {
	if *headerWritten {
		return gocsv.MarshalWithoutHeaders(records, f)
	}
	if err := gocsv.Marshal(records, f); err != nil {
		return err
	}
	*headerWritten = true
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, f := range []*os.File{om.roundsFile, om.perfFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
