package analyze

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/reset_computer/internal/quat"
	"github.com/relabs-tech/reset_computer/internal/telemetry"
)

// constantSeries returns n copies of the same (non-identity) orientation.
func constantSeries(n int) telemetry.Series {
	q := quat.FromAxisAngle([3]float64{1, 2, 3}, 0.6)
	s := telemetry.Series{Samples: make([]telemetry.Sample, n)}
	for i := range s.Samples {
		s.Samples[i] = telemetry.Sample{QW: q.W, QX: q.X, QY: q.Y, QZ: q.Z}
	}
	return s
}

// halfTurnSeries returns n samples rotating about z by pi per window
// samples, i.e. each consecutive delta is pi/window.
func halfTurnSeries(n, window int) telemetry.Series {
	s := telemetry.Series{Samples: make([]telemetry.Sample, n)}
	for i := range s.Samples {
		q := quat.FromAxisAngle([3]float64{0, 0, 1}, float64(i)*math.Pi/float64(window))
		s.Samples[i] = telemetry.Sample{QW: q.W, QX: q.X, QY: q.Y, QZ: q.Z}
	}
	return s
}

func TestAnalyzeEmptySeries(t *testing.T) {
	metrics, candidates := Analyze(telemetry.Series{}, 50, 10)
	assert.Empty(t, metrics)
	assert.Empty(t, candidates)
}

func TestAnalyzeSeriesTooShort(t *testing.T) {
	// end = len-1 must exceed window; len = window+1 is still too short.
	metrics, candidates := Analyze(constantSeries(51), 50, 10)
	assert.Empty(t, metrics)
	assert.Empty(t, candidates)

	metrics, candidates = Analyze(constantSeries(10), 50, 10)
	assert.Empty(t, metrics)
	assert.Empty(t, candidates)
}

func TestAnalyzeConstantSeries(t *testing.T) {
	const window = 50
	series := constantSeries(200)

	metrics, candidates := Analyze(series, window, 10)

	// i runs from window to end-1 inclusive, end = 199.
	require.Len(t, metrics, 199-window)
	assert.Empty(t, candidates, "a motionless series offers nothing to reset")
	for _, row := range metrics {
		assert.InDelta(t, 0.0, row.ThetaNetDeg, 1e-6)
		assert.False(t, math.IsNaN(row.PredictedBenefitDeg))
	}
}

func TestAnalyzeHalfTurnSeries(t *testing.T) {
	const window = 50
	series := halfTurnSeries(200, window)

	metrics, candidates := Analyze(series, window, 10)
	require.NotEmpty(t, metrics)

	// Every window composes to exactly pi about z, so lambda needs no
	// rescaling and the doubled motion closes: R stays at 0 throughout.
	for _, row := range metrics {
		assert.InDelta(t, 180.0, row.ThetaNetDeg, 1e-6)
		assert.Less(t, row.R, 1e-9)
	}

	// Candidate selection stays a pure filter over the metric rows.
	want := 0
	for _, row := range metrics {
		if IsCandidate(row) {
			want++
		}
	}
	assert.Len(t, candidates, want)
}

func TestAnalyzeSynthesizesTimestamps(t *testing.T) {
	const window = 10
	series := constantSeries(30) // no timestamp column

	metrics, _ := Analyze(series, window, 20)
	require.NotEmpty(t, metrics)
	assert.InDelta(t, float64(window)/20, metrics[0].Timestamp, 1e-12)
	assert.InDelta(t, float64(window+1)/20, metrics[1].Timestamp, 1e-12)
}

func TestAnalyzeUsesProvidedTimestamps(t *testing.T) {
	const window = 10
	series := constantSeries(30)
	series.HasTimestamps = true
	for i := range series.Samples {
		series.Samples[i].Timestamp = 100 + float64(i)
	}

	metrics, _ := Analyze(series, window, 20)
	require.NotEmpty(t, metrics)
	assert.Equal(t, 100+float64(window), metrics[0].Timestamp)
}

func TestIsCandidateBoundaries(t *testing.T) {
	base := MetricRow{R: 0.01, ThetaNetDeg: 5, PredictedBenefitDeg: 2}
	assert.True(t, IsCandidate(base))

	r := base
	r.R = 0.05 // threshold is strict
	assert.False(t, IsCandidate(r))

	th := base
	th.ThetaNetDeg = 1.0 // threshold is strict
	assert.False(t, IsCandidate(th))

	b := base
	b.PredictedBenefitDeg = 0
	assert.False(t, IsCandidate(b))

	nan := base
	nan.PredictedBenefitDeg = math.NaN()
	assert.False(t, IsCandidate(nan), "failed rows never qualify")
}

func TestSummarizeIgnoresNaNBenefit(t *testing.T) {
	metrics := []MetricRow{
		{R: 0.1, ThetaNetDeg: 2, PredictedBenefitDeg: 4},
		{R: 0.3, ThetaNetDeg: 4, PredictedBenefitDeg: math.NaN()},
	}

	s := Summarize(metrics, nil)
	assert.Equal(t, 2, s.Rows)
	assert.InDelta(t, 0.2, s.MeanR, 1e-12)
	assert.InDelta(t, 3.0, s.MeanThetaDeg, 1e-12)
	assert.InDelta(t, 4.0, s.MeanBenefitDeg, 1e-12, "NaN rows drop out of the benefit mean")
	assert.True(t, s.Stable)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, nil)
	assert.Zero(t, s.Rows)
	assert.Zero(t, s.MeanR)
	assert.False(t, s.Stable)
}
