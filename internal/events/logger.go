// Package events persists candidate reset events to a CSV log so they
// survive the analysis session. The core analysis itself never writes
// files; this is the external event sink it hands candidates to.
package events

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/relabs-tech/reset_computer/internal/analyze"
)

var header = []string{
	"wall_time", "timestamp", "domain", "R", "theta_net_deg", "predicted_benefit_deg",
}

// Logger appends candidate events to one CSV file, creating it (and its
// directory) with a header on first use.
type Logger struct {
	path string
}

// NewLogger prepares the event log at path.
func NewLogger(path string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create event log directory: %w", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("failed to create event log: %w", err)
		}
		w := csv.NewWriter(f)
		if err := w.Write(header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write event log header: %w", err)
		}
		w.Flush()
		if err := w.Error(); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to flush event log header: %w", err)
		}
		if err := f.Close(); err != nil {
			return nil, fmt.Errorf("failed to close event log: %w", err)
		}
	}
	return &Logger{path: path}, nil
}

// Path returns the log file location.
func (l *Logger) Path() string { return l.path }

// Log appends one candidate event row, stamped with the current wall
// clock time.
func (l *Logger) Log(domain string, row analyze.MetricRow) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open event log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	record := []string{
		strconv.FormatInt(time.Now().Unix(), 10),
		strconv.FormatFloat(row.Timestamp, 'f', 4, 64),
		domain,
		strconv.FormatFloat(row.R, 'f', 6, 64),
		strconv.FormatFloat(row.ThetaNetDeg, 'f', 4, 64),
		strconv.FormatFloat(row.PredictedBenefitDeg, 'f', 4, 64),
	}
	if err := w.Write(record); err != nil {
		return fmt.Errorf("failed to write event row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush event row: %w", err)
	}
	return nil
}
