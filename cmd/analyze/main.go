// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"flag"
	"log"

	"github.com/relabs-tech/reset_computer/internal/app"
	"github.com/relabs-tech/reset_computer/internal/config"
)

func main() {
	configPath := flag.String("config", "./reset_config.txt", "path to configuration file")
	input := flag.String("input", "", "telemetry CSV to analyze (default: TELEMETRY_FILE from config)")
	output := flag.String("output", "results/metrics.csv", "where to write the metric table")
	flag.Parse()

	log.Println("starting reset-computer batch analyzer (CSV → metrics)")

	// Load configuration
	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	in := *input
	if in == "" {
		in = config.Get().TelemetryFile
	}

	if err := app.RunAnalyze(in, *output); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
