// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package telemetry

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/relabs-tech/reset_computer/internal/quat"
)

// Domain selects the motion profile of the synthetic generator. All four
// domains share the orientation-telemetry shape; they differ only in how
// the angular-velocity pattern evolves.
type Domain string

const (
	DomainRobot      Domain = "robot"
	DomainSpacecraft Domain = "spacecraft"
	DomainBooster    Domain = "booster"
	DomainGravityRig Domain = "gravity_rig"
)

// ParseDomain maps a config/flag value onto a Domain.
func ParseDomain(s string) (Domain, error) {
	switch Domain(s) {
	case DomainRobot, DomainSpacecraft, DomainBooster, DomainGravityRig:
		return Domain(s), nil
	}
	return "", fmt.Errorf("unknown domain %q (want robot, spacecraft, booster or gravity_rig)", s)
}

// Generate integrates a domain-specific angular-velocity pattern into a
// quaternion series of n samples at fps frames per second. The rng is
// explicit so a fixed seed reproduces the trace exactly.
func Generate(domain Domain, n int, fps float64, rng *rand.Rand) Series {
	if fps <= 0 {
		fps = 1
	}
	dt := 1.0 / fps

	series := Series{HasTimestamps: true, Samples: make([]Sample, 0, n)}
	q := quat.Identity()
	for i := 0; i < n; i++ {
		t := float64(i) * dt
		wx, wy, wz := rates(domain, t, rng)

		omega := [3]float64{wx, wy, wz}
		theta := math.Sqrt(wx*wx+wy*wy+wz*wz) * dt
		if theta > 0 {
			q = quat.Normalize(quat.Mul(quat.FromAxisAngle(omega, theta), q))
		}

		series.Samples = append(series.Samples, Sample{
			Timestamp: t,
			QW:        q.W,
			QX:        q.X,
			QY:        q.Y,
			QZ:        q.Z,
		})
	}
	return series
}

// rates returns the body angular velocity (rad/s) at time t.
func rates(domain Domain, t float64, rng *rand.Rand) (wx, wy, wz float64) {
	switch domain {
	case DomainSpacecraft:
		// Slow free-tumble drift, no gravity bias.
		wx = 0.05*math.Sin(0.1*t) + 0.005*rng.NormFloat64()
		wy = 0.04*math.Cos(0.08*t) + 0.005*rng.NormFloat64()
		wz = 0.06 + 0.005*rng.NormFloat64()
	case DomainBooster:
		// Dominant roll with aerodynamic jitter.
		wx = 0.05*math.Sin(0.3*t) + 0.05*rng.NormFloat64()
		wy = 0.05*math.Cos(0.25*t) + 0.05*rng.NormFloat64()
		wz = 0.8 + 0.1*math.Sin(0.6*t) + 0.05*rng.NormFloat64()
	case DomainGravityRig:
		// Near-static bench rig, sensor noise only.
		wx = 0.01 * rng.NormFloat64()
		wy = 0.01 * rng.NormFloat64()
		wz = 0.01 * rng.NormFloat64()
	default: // DomainRobot
		wx = 0.2*math.Sin(0.5*t) + 0.03*rng.NormFloat64()
		wy = 0.15*math.Cos(0.4*t) + 0.03*rng.NormFloat64()
		wz = 0.25*math.Sin(0.2*t+0.5) + 0.03*rng.NormFloat64()
	}
	return wx, wy, wz
}
