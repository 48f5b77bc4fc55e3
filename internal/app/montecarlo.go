package app

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/relabs-tech/reset_computer/internal/montecarlo"
)

// RunMonteCarlo simulates nRuns random trajectories, prints the summary
// statistics, and optionally writes the full result table to outputPath
// (empty path skips the file).
func RunMonteCarlo(nRuns, nSteps int, noiseSigma float64, seed int64, outputPath string) error {
	log.Printf("montecarlo: %d runs of %d steps, sigma=%.4f, seed=%d", nRuns, nSteps, noiseSigma, seed)

	results := montecarlo.Run(nRuns, nSteps, noiseSigma, seed)
	s := montecarlo.Summarize(results)

	log.Printf("montecarlo: meanR=%.4f stdR=%.4f meanTheta=%.2fdeg meanBenefit=%.2fdeg resetOpportunities=%d",
		s.MeanR, s.StdR, s.MeanThetaDeg, s.MeanBenefitDeg, s.ResetOpportunities)

	if outputPath == "" {
		return nil
	}
	if err := writeResultsCSV(outputPath, results); err != nil {
		return err
	}
	log.Printf("montecarlo: results written to %s", outputPath)
	return nil
}

func writeResultsCSV(path string, results []montecarlo.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create results file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"R", "theta_net_deg", "predicted_benefit_deg"}); err != nil {
		return fmt.Errorf("failed to write results header: %w", err)
	}
	for _, res := range results {
		record := []string{
			strconv.FormatFloat(res.R, 'f', 6, 64),
			strconv.FormatFloat(res.ThetaNetDeg, 'f', 4, 64),
			strconv.FormatFloat(res.PredictedBenefitDeg, 'f', 4, 64),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write results row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush results file: %w", err)
	}
	return nil
}
