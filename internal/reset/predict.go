// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package reset

import (
	"math"

	"github.com/relabs-tech/reset_computer/internal/quat"
)

// Prediction is the counterfactual comparison of letting the current
// motion continue versus applying the lambda-scaled window twice on top of
// the current orientation. A positive BenefitDeg means the reset reduces
// the predicted angular error.
type Prediction struct {
	BenefitDeg           float64 `json:"benefit_deg"`
	ResidualNoResetDeg   float64 `json:"residual_noreset_deg"`
	ResidualWithResetDeg float64 `json:"residual_withreset_deg"`
	Lambda               float64 `json:"lambda"`
	R                    float64 `json:"r"`
	ThetaNet             float64 `json:"theta_net_rad"`
}

// Predict estimates how much a lambda-scaled reset would improve attitude
// recovery given the recent increments and the current orientation.
// An empty window predicts nothing: all zeros except lambda=1, R=1.
func Predict(seq Sequence, qCurrent quat.Quat) Prediction {
	if len(seq) == 0 {
		return Prediction{Lambda: 1, R: 1}
	}

	lam, r, thetaNet := Estimate(seq)

	// Residual if the motion continues unmodified.
	qFuture := quat.Mul(Compose(seq), qCurrent)
	_, thNoReset := quat.ToAxisAngle(qFuture)

	// Residual if the scaled window had been applied twice instead.
	qReset := quat.Mul(Compose(ScaledTwice(seq, lam)), qCurrent)
	_, thWithReset := quat.ToAxisAngle(qReset)

	return Prediction{
		BenefitDeg:           degrees(thNoReset) - degrees(thWithReset),
		ResidualNoResetDeg:   degrees(thNoReset),
		ResidualWithResetDeg: degrees(thWithReset),
		Lambda:               lam,
		R:                    r,
		ThetaNet:             thetaNet,
	}
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
