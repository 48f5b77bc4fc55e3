// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package reset

import (
	"math"

	"github.com/relabs-tech/reset_computer/internal/quat"
)

// Angles below this are treated as "no net rotation" when deriving lambda.
const thetaEps = 1e-12

// Estimate computes the resetability triple for a window of increments:
//
//	lambda   = pi / theta_net (1 when theta_net is degenerate)
//	R        = 1 - |w| of the lambda-scaled sequence applied twice
//	thetaNet = net rotation angle of the composed window (rad)
//
// R near 0 means doubling the scaled motion returns the body close to the
// identity, i.e. a good reset opportunity. The |w| uses the absolute value
// so q and -q (the same physical rotation) score identically.
//
// An empty window carries no information and returns the neutral
// (1, 1, 0); Estimate never fails.
func Estimate(seq Sequence) (lambda, r, thetaNet float64) {
	if len(seq) == 0 {
		return 1, 1, 0
	}

	qNet := Compose(seq)
	_, thetaNet = quat.ToAxisAngle(qNet)

	lambda = 1.0
	if thetaNet > thetaEps {
		lambda = math.Pi / thetaNet
	}

	q1 := Compose(Scaled(seq, lambda))
	qReset := quat.Mul(q1, q1)

	w := qReset.W
	if w > 1 {
		w = 1
	} else if w < -1 {
		w = -1
	}
	r = 1 - math.Abs(w)
	return lambda, r, thetaNet
}
