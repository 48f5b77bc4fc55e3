package montecarlo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDeterministicForSeed(t *testing.T) {
	a := Run(25, 40, 0.01, 42)
	b := Run(25, 40, 0.01, 42)
	require.Equal(t, a, b, "same seed must reproduce the table exactly")
}

func TestRunSeedChangesTable(t *testing.T) {
	a := Run(10, 40, 0.01, 1)
	b := Run(10, 40, 0.01, 2)
	assert.NotEqual(t, a, b)
}

func TestRunRowPerTrajectory(t *testing.T) {
	results := Run(17, 10, 0.02, 0)
	require.Len(t, results, 17)

	for _, res := range results {
		assert.GreaterOrEqual(t, res.ThetaNetDeg, 0.0)
		assert.GreaterOrEqual(t, res.R, 0.0)
		assert.LessOrEqual(t, res.R, 1.0)
	}
}

func TestRunZeroRuns(t *testing.T) {
	assert.Empty(t, Run(0, 10, 0.01, 0))
}

func TestSummarizeIgnoresNaNRows(t *testing.T) {
	table := []Result{
		{R: 0.02, ThetaNetDeg: 10, PredictedBenefitDeg: 1},
		{R: math.NaN(), ThetaNetDeg: math.NaN(), PredictedBenefitDeg: math.NaN()},
		{R: 0.10, ThetaNetDeg: 20, PredictedBenefitDeg: -3},
	}

	s := Summarize(table)
	assert.InDelta(t, 0.06, s.MeanR, 1e-12)
	assert.InDelta(t, 0.04, s.StdR, 1e-12)
	assert.InDelta(t, 15.0, s.MeanThetaDeg, 1e-12)
	assert.InDelta(t, -1.0, s.MeanBenefitDeg, 1e-12)
	assert.Equal(t, 1, s.ResetOpportunities)
}

func TestSummarizeEmptyTable(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.MeanR)
	assert.Zero(t, s.StdR)
	assert.Zero(t, s.ResetOpportunities)
}
