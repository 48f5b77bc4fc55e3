// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package telemetry

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// LoadCSV reads a quaternion telemetry file. The header must contain the
// columns qw, qx, qy, qz (any order, extra columns are ignored); a
// timestamp column is optional. Missing columns or unparsable values are
// hard errors: malformed telemetry is reported to the caller, not patched.
func LoadCSV(path string) (Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return Series{}, fmt.Errorf("failed to open telemetry file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return Series{}, fmt.Errorf("failed to read telemetry header: %w", err)
	}

	col := map[string]int{}
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range []string{"qw", "qx", "qy", "qz"} {
		if _, ok := col[required]; !ok {
			return Series{}, fmt.Errorf("telemetry CSV missing required column %q", required)
		}
	}
	tsCol, hasTS := col["timestamp"]

	var series Series
	series.HasTimestamps = hasTS

	line := 1
	for {
		record, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return Series{}, fmt.Errorf("telemetry CSV line %d: %w", line+1, err)
		}
		line++

		var s Sample
		if s.QW, err = field(record, col["qw"]); err != nil {
			return Series{}, fmt.Errorf("telemetry CSV line %d qw: %w", line, err)
		}
		if s.QX, err = field(record, col["qx"]); err != nil {
			return Series{}, fmt.Errorf("telemetry CSV line %d qx: %w", line, err)
		}
		if s.QY, err = field(record, col["qy"]); err != nil {
			return Series{}, fmt.Errorf("telemetry CSV line %d qy: %w", line, err)
		}
		if s.QZ, err = field(record, col["qz"]); err != nil {
			return Series{}, fmt.Errorf("telemetry CSV line %d qz: %w", line, err)
		}
		if hasTS {
			if s.Timestamp, err = field(record, tsCol); err != nil {
				return Series{}, fmt.Errorf("telemetry CSV line %d timestamp: %w", line, err)
			}
		}
		series.Samples = append(series.Samples, s)
	}
	return series, nil
}

// WriteCSV writes the series with a timestamp,qw,qx,qy,qz header, the same
// framing the capture tool logs from the serial rig.
func WriteCSV(path string, series Series) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create telemetry directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create telemetry file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"timestamp", "qw", "qx", "qy", "qz"}); err != nil {
		return fmt.Errorf("failed to write telemetry header: %w", err)
	}
	for _, s := range series.Samples {
		record := []string{
			strconv.FormatFloat(s.Timestamp, 'f', 4, 64),
			strconv.FormatFloat(s.QW, 'f', 6, 64),
			strconv.FormatFloat(s.QX, 'f', 6, 64),
			strconv.FormatFloat(s.QY, 'f', 6, 64),
			strconv.FormatFloat(s.QZ, 'f', 6, 64),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write telemetry row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush telemetry file: %w", err)
	}
	return nil
}

func field(record []string, idx int) (float64, error) {
	if idx >= len(record) {
		return 0, fmt.Errorf("short record")
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(record[idx]), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q: %w", record[idx], err)
	}
	return v, nil
}
