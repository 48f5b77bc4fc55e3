// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/relabs-tech/reset_computer/internal/analyze"
	"github.com/relabs-tech/reset_computer/internal/config"
	"github.com/relabs-tech/reset_computer/internal/events"
	"github.com/relabs-tech/reset_computer/internal/telemetry"
)

// RunAnalyze is the batch entry point: load a telemetry CSV, slide the
// analysis window across it, write the metric table next to the input,
// log every candidate to the event log, and print the summary.
func RunAnalyze(inputPath, outputPath string) error {
	cfg := config.Get()

	series, err := telemetry.LoadCSV(inputPath)
	if err != nil {
		return err
	}
	log.Printf("analyze: loaded %d samples from %s (timestamps: %v)",
		series.Len(), inputPath, series.HasTimestamps)

	metrics, candidates := analyze.Analyze(series, cfg.AnalysisWindow, cfg.AnalysisFPS)
	if len(metrics) == 0 {
		log.Printf("analyze: series too short for window=%d, nothing to do", cfg.AnalysisWindow)
		return nil
	}
	log.Printf("analyze: %d metric rows, %d reset candidates", len(metrics), len(candidates))

	if err := writeMetricsCSV(outputPath, metrics); err != nil {
		return err
	}
	log.Printf("analyze: metrics written to %s", outputPath)

	if len(candidates) > 0 {
		eventLog, err := events.NewLogger(cfg.EventLogFile)
		if err != nil {
			return err
		}
		for _, row := range candidates {
			if err := eventLog.Log(cfg.Domain, row); err != nil {
				return err
			}
		}
		log.Printf("analyze: %d candidates appended to %s", len(candidates), eventLog.Path())
	}

	s := analyze.Summarize(metrics, candidates)
	health := "stable orientation"
	if !s.Stable {
		health = "excess drift"
	}
	log.Printf("analyze: domain=%s meanR=%.4f meanTheta=%.2fdeg meanBenefit=%.2fdeg (%s)",
		cfg.Domain, s.MeanR, s.MeanThetaDeg, s.MeanBenefitDeg, health)
	return nil
}

func writeMetricsCSV(path string, metrics []analyze.MetricRow) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create metrics directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create metrics file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"timestamp", "R", "theta_net_deg", "predicted_benefit_deg"}); err != nil {
		return fmt.Errorf("failed to write metrics header: %w", err)
	}
	for _, row := range metrics {
		record := []string{
			strconv.FormatFloat(row.Timestamp, 'f', 4, 64),
			strconv.FormatFloat(row.R, 'f', 6, 64),
			strconv.FormatFloat(row.ThetaNetDeg, 'f', 4, 64),
			strconv.FormatFloat(row.PredictedBenefitDeg, 'f', 4, 64),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write metrics row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush metrics file: %w", err)
	}
	return nil
}
