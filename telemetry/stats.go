package telemetry

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Biodiversity computes the Shannon entropy of the living species counts,
// normalized to [0,1] by the maximum entropy for the number of species
// present. Zero-count species do not contribute. A world with fewer than
// two living species scores 0.
func Biodiversity(counts []int) float64 {
	var present int
	var total float64
	for _, c := range counts {
		if c > 0 {
			present++
			total += float64(c)
		}
	}
	if present < 2 || total == 0 {
		return 0
	}

	probs := make([]float64, 0, present)
	for _, c := range counts {
		if c > 0 {
			probs = append(probs, float64(c)/total)
		}
	}

	h := stat.Entropy(probs)
	return h / math.Log(float64(present))
}

// MeanFitness averages genetic fitness values; empty input scores 0.
func MeanFitness(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	return stat.Mean(vals, nil)
}
