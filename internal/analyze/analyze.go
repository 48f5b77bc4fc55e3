// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package analyze slides a fixed window across a quaternion telemetry
// series and produces one resetability metric row per window position,
// plus the filtered subset of candidate reset events.
package analyze

import (
	"math"

	"github.com/relabs-tech/reset_computer/internal/quat"
	"github.com/relabs-tech/reset_computer/internal/reset"
	"github.com/relabs-tech/reset_computer/internal/telemetry"
)

// Candidate thresholds. A row is a reset candidate when the scaled-twice
// residual is small, the window actually rotated, and the counterfactual
// predicts an improvement.
const (
	CandidateMaxR        = 0.05
	CandidateMinThetaDeg = 1.0
)

// MetricRow is one window position of the analysis. PredictedBenefitDeg
// is NaN when the predictor failed for that row; the row is kept so the
// failure stays visible in the output instead of being silently dropped.
type MetricRow struct {
	Timestamp           float64 `json:"timestamp"`
	R                   float64 `json:"r"`
	ThetaNetDeg         float64 `json:"theta_net_deg"`
	PredictedBenefitDeg float64 `json:"predicted_benefit_deg"`
}

// IsCandidate reports whether row satisfies the joint R/theta/benefit
// threshold. NaN benefits never qualify.
func IsCandidate(row MetricRow) bool {
	return row.R < CandidateMaxR &&
		row.ThetaNetDeg > CandidateMinThetaDeg &&
		row.PredictedBenefitDeg > 0
}

// Analyze computes metric rows for every full window position in the
// series. Timestamps come from the series when it has them, otherwise
// they are synthesized as index/max(fps,1). Series too short to fill a
// window (len <= window+1) yield two empty slices, never an error.
//
// Each window is rebuilt from scratch; at tens-to-hundreds of samples per
// window the O(N*window) cost is not worth incremental bookkeeping.
func Analyze(series telemetry.Series, window int, fps float64) (metrics, candidates []MetricRow) {
	if window <= 0 || series.Len() == 0 {
		return nil, nil
	}

	end := series.Len() - 1
	if end <= window {
		return nil, nil
	}

	samples := series.Samples
	for i := window; i < end; i++ {
		seq := make(reset.Sequence, 0, window)
		for j := i - window; j < i; j++ {
			q1 := sampleQuat(samples[j])
			q2 := sampleQuat(samples[j+1])
			// Delta carrying sample j onto sample j+1.
			axis, angle := quat.ToAxisAngle(quat.Relative(q2, q1))
			seq = append(seq, reset.Increment{Axis: axis, Angle: angle})
		}

		_, r, thetaNet := reset.Estimate(seq)

		row := MetricRow{
			Timestamp:           timestampAt(series, i, fps),
			R:                   r,
			ThetaNetDeg:         thetaNet * 180 / math.Pi,
			PredictedBenefitDeg: safeBenefit(seq, quat.Normalize(sampleQuat(samples[i]))),
		}
		metrics = append(metrics, row)
		if IsCandidate(row) {
			candidates = append(candidates, row)
		}
	}
	return metrics, candidates
}

// safeBenefit isolates one row from predictor failure: a panic inside the
// prediction becomes a NaN benefit instead of aborting the batch.
func safeBenefit(seq reset.Sequence, qCurrent quat.Quat) (benefitDeg float64) {
	defer func() {
		if recover() != nil {
			benefitDeg = math.NaN()
		}
	}()
	return reset.Predict(seq, qCurrent).BenefitDeg
}

func sampleQuat(s telemetry.Sample) quat.Quat {
	return quat.Quat{W: s.QW, X: s.QX, Y: s.QY, Z: s.QZ}
}

func timestampAt(series telemetry.Series, i int, fps float64) float64 {
	if series.HasTimestamps {
		return series.Samples[i].Timestamp
	}
	return float64(i) / math.Max(fps, 1)
}
