// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package montecarlo characterizes the statistical behavior of the
// resetability estimator over randomized rotation trajectories.
package montecarlo

import (
	"math"
	"math/rand"

	"github.com/relabs-tech/reset_computer/internal/quat"
	"github.com/relabs-tech/reset_computer/internal/reset"
)

// Mean step angle (rad) of the random increments; the sweep varies only
// the standard deviation around it.
const stepMean = 0.02

// Result is one simulated trajectory. A run that fails internally is
// recorded as all-NaN rather than aborting the batch.
type Result struct {
	R                   float64 `json:"r"`
	ThetaNetDeg         float64 `json:"theta_net_deg"`
	PredictedBenefitDeg float64 `json:"predicted_benefit_deg"`
}

// Summary aggregates a result table; NaN rows are ignored by the means
// and the standard deviation.
type Summary struct {
	MeanR              float64 `json:"mean_r"`
	StdR               float64 `json:"std_r"`
	MeanThetaDeg       float64 `json:"mean_theta_deg"`
	MeanBenefitDeg     float64 `json:"mean_benefit_deg"`
	ResetOpportunities int     `json:"reset_opportunities"`
}

// Run simulates nRuns random trajectories of nSteps increments each and
// returns one Result per run. The generator is seeded once and every run
// draws from it in sequence, so an identical seed reproduces the table
// bit for bit. The current orientation is pinned to a small constant
// z-rotation instead of being drawn randomly, keeping the noise sweep
// independent of orientation effects.
func Run(nRuns, nSteps int, noiseSigma float64, seed int64) []Result {
	rng := rand.New(rand.NewSource(seed))
	qCurrent := quat.FromAxisAngle([3]float64{0, 0, 1}, 0.05)

	results := make([]Result, 0, nRuns)
	for run := 0; run < nRuns; run++ {
		seq := randomSequence(rng, nSteps, noiseSigma)
		results = append(results, evaluate(seq, qCurrent))
	}
	return results
}

// randomSequence draws nSteps increments: uniform random axis direction,
// angle |Normal(stepMean, sigma)| so steps are always non-negative.
func randomSequence(rng *rand.Rand, nSteps int, sigma float64) reset.Sequence {
	seq := make(reset.Sequence, 0, nSteps)
	for i := 0; i < nSteps; i++ {
		axis := [3]float64{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()}
		n := math.Sqrt(axis[0]*axis[0]+axis[1]*axis[1]+axis[2]*axis[2]) + 1e-12
		axis[0] /= n
		axis[1] /= n
		axis[2] /= n

		theta := math.Abs(stepMean + sigma*rng.NormFloat64())
		seq = append(seq, reset.Increment{Axis: axis, Angle: theta})
	}
	return seq
}

// evaluate runs estimator and predictor for one trajectory, converting
// any panic into an all-NaN row. One bad run never aborts the batch.
func evaluate(seq reset.Sequence, qCurrent quat.Quat) (res Result) {
	defer func() {
		if recover() != nil {
			res = Result{
				R:                   math.NaN(),
				ThetaNetDeg:         math.NaN(),
				PredictedBenefitDeg: math.NaN(),
			}
		}
	}()

	_, r, thetaNet := reset.Estimate(seq)
	pred := reset.Predict(seq, qCurrent)
	return Result{
		R:                   r,
		ThetaNetDeg:         thetaNet * 180 / math.Pi,
		PredictedBenefitDeg: pred.BenefitDeg,
	}
}

// Summarize computes NaN-aware summary statistics over a result table.
func Summarize(results []Result) Summary {
	var s Summary

	var sumR, sumR2, sumTheta, sumBenefit float64
	nR, nTheta, nBenefit := 0, 0, 0
	for _, res := range results {
		if !math.IsNaN(res.R) {
			sumR += res.R
			sumR2 += res.R * res.R
			nR++
			if res.R < 0.05 {
				s.ResetOpportunities++
			}
		}
		if !math.IsNaN(res.ThetaNetDeg) {
			sumTheta += res.ThetaNetDeg
			nTheta++
		}
		if !math.IsNaN(res.PredictedBenefitDeg) {
			sumBenefit += res.PredictedBenefitDeg
			nBenefit++
		}
	}

	if nR > 0 {
		s.MeanR = sumR / float64(nR)
		variance := sumR2/float64(nR) - s.MeanR*s.MeanR
		if variance > 0 {
			s.StdR = math.Sqrt(variance)
		}
	}
	if nTheta > 0 {
		s.MeanThetaDeg = sumTheta / float64(nTheta)
	}
	if nBenefit > 0 {
		s.MeanBenefitDeg = sumBenefit / float64(nBenefit)
	}
	return s
}
