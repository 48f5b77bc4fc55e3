package analyze

import "math"

// Summary condenses a metrics table for console and report output. Health
// mirrors the bench rule of thumb: mean R under 0.3 means the orientation
// is holding, above it the trace is drifting faster than resets can help.
type Summary struct {
	Rows           int     `json:"rows"`
	Candidates     int     `json:"candidates"`
	MeanR          float64 `json:"mean_r"`
	MeanThetaDeg   float64 `json:"mean_theta_deg"`
	MeanBenefitDeg float64 `json:"mean_benefit_deg"`
	Stable         bool    `json:"stable"`
}

// Summarize averages a metrics table, ignoring NaN benefits from failed
// rows. An empty table summarizes to the zero value.
func Summarize(metrics, candidates []MetricRow) Summary {
	s := Summary{Rows: len(metrics), Candidates: len(candidates)}
	if len(metrics) == 0 {
		return s
	}

	var sumR, sumTheta, sumBenefit float64
	benefitN := 0
	for _, row := range metrics {
		sumR += row.R
		sumTheta += row.ThetaNetDeg
		if !math.IsNaN(row.PredictedBenefitDeg) {
			sumBenefit += row.PredictedBenefitDeg
			benefitN++
		}
	}
	s.MeanR = sumR / float64(len(metrics))
	s.MeanThetaDeg = sumTheta / float64(len(metrics))
	if benefitN > 0 {
		s.MeanBenefitDeg = sumBenefit / float64(benefitN)
	}
	s.Stable = s.MeanR < 0.3
	return s
}
