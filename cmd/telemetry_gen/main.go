// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"flag"
	"log"
	"math/rand"

	"github.com/relabs-tech/reset_computer/internal/telemetry"
)

func main() {
	domainFlag := flag.String("domain", "robot", "motion profile: robot, spacecraft, booster, gravity_rig")
	n := flag.Int("n", 1000, "number of samples")
	fps := flag.Float64("fps", 20, "sample rate")
	seed := flag.Int64("seed", 0, "random seed")
	output := flag.String("output", "data/telemetry.csv", "output CSV path")
	flag.Parse()

	log.Println("starting reset-computer telemetry generator")

	domain, err := telemetry.ParseDomain(*domainFlag)
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}

	series := telemetry.Generate(domain, *n, *fps, rand.New(rand.NewSource(*seed)))
	if err := telemetry.WriteCSV(*output, series); err != nil {
		log.Fatalf("fatal: %v", err)
	}

	log.Printf("wrote %d %s samples at %.1f fps to %s", series.Len(), domain, *fps, *output)
}
