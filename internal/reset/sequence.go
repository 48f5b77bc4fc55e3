// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package reset implements the SO(3) resetability estimator: given a
// window of small rotation increments it estimates the scale factor
// lambda = pi/theta_net, the reset residual R of the lambda-scaled motion
// applied twice, and the counterfactual benefit of issuing that reset
// instead of letting the motion continue.
package reset

import "github.com/relabs-tech/reset_computer/internal/quat"

// Increment is one axis-angle rotation step. Axis is expected unit-norm;
// ingestion points (Stream.Push, the window builder) take care of that.
type Increment struct {
	Axis  [3]float64
	Angle float64
}

// Sequence is an ordered list of increments. Order matters: rotation
// composition is non-commutative.
type Sequence []Increment

// Compose folds the sequence into a single net rotation, seeding with the
// identity and left-multiplying each increment in order. An empty sequence
// composes to the identity quaternion.
func Compose(seq Sequence) quat.Quat {
	q := quat.Identity()
	for _, inc := range seq {
		q = quat.Mul(quat.FromAxisAngle(inc.Axis, inc.Angle), q)
	}
	return quat.Normalize(q)
}

// Scaled returns a copy of seq with every angle multiplied by lam, axes
// unchanged.
func Scaled(seq Sequence, lam float64) Sequence {
	out := make(Sequence, len(seq))
	for i, inc := range seq {
		out[i] = Increment{Axis: inc.Axis, Angle: lam * inc.Angle}
	}
	return out
}

// ScaledTwice returns the lam-scaled sequence concatenated with itself,
// the "apply the scaled motion twice" command a controller would issue.
func ScaledTwice(seq Sequence, lam float64) Sequence {
	scaled := Scaled(seq, lam)
	out := make(Sequence, 0, 2*len(scaled))
	out = append(out, scaled...)
	out = append(out, scaled...)
	return out
}
