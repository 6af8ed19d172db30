package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir       string
	statsFile *os.File

	statsHeaderWritten bool
}

// NewOutputManager creates an output manager rooted at dir.
// Returns nil if dir is empty (output disabled); a nil manager is safe to
// call, every method no-ops.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "stats.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating stats.csv: %w", err)
	}

	return &OutputManager{dir: dir, statsFile: f}, nil
}

// WriteStats appends a window stats record to stats.csv. The first write
// includes the header row.
func (om *OutputManager) WriteStats(stats GenerationStats) error {
	if om == nil {
		return nil
	}

	records := []GenerationStats{stats}
	if !om.statsHeaderWritten {
		if err := gocsv.Marshal(records, om.statsFile); err != nil {
			return fmt.Errorf("writing stats: %w", err)
		}
		om.statsHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.statsFile); err != nil {
		return fmt.Errorf("writing stats: %w", err)
	}
	return nil
}

// WriteHistory writes the complete history buffer to history.csv,
// replacing any previous export.
func (om *OutputManager) WriteHistory(points []HistoryPoint) error {
	if om == nil {
		return nil
	}

	f, err := os.Create(filepath.Join(om.dir, "history.csv"))
	if err != nil {
		return fmt.Errorf("creating history.csv: %w", err)
	}
	defer f.Close()

	if err := gocsv.Marshal(points, f); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return nil
}

// Close flushes and closes the open output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	return om.statsFile.Close()
}
