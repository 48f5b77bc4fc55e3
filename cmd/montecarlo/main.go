// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"flag"
	"log"

	"github.com/relabs-tech/reset_computer/internal/app"
)

func main() {
	nRuns := flag.Int("runs", 500, "number of random trajectories")
	nSteps := flag.Int("steps", 100, "increments per trajectory")
	sigma := flag.Float64("sigma", 0.01, "standard deviation of the step-angle noise")
	seed := flag.Int64("seed", 0, "random seed (same seed reproduces the table)")
	output := flag.String("output", "", "optional CSV path for the full result table")
	flag.Parse()

	log.Println("starting reset-computer Monte Carlo evaluator")

	if err := app.RunMonteCarlo(*nRuns, *nSteps, *sigma, *seed, *output); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
