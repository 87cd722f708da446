package predict

import (
	"math"

	"github.com/hptimes-code/ai-crop-yield-prediction/internal/domain"
)

// Confidence bounds. Confidence never reaches certainty and never drops
// below 0.30 regardless of how far inputs stray from the optimal ranges.
const (
	MinConfidence = 0.30
	MaxConfidence = 0.95
)

// Global agronomic optima for the confidence heuristic. These are fixed
// crop-independent bands, distinct from the per-crop generation ranges.
var confidenceRanges = []struct {
	name string
	rng  domain.Range
}{
	{"ph_level", domain.Range{Min: 6.0, Max: 7.0}},
	{"organic_matter", domain.Range{Min: 2.5, Max: 5.0}},
	{"nitrogen", domain.Range{Min: 20, Max: 50}},
	{"phosphorus", domain.Range{Min: 15, Max: 40}},
	{"potassium", domain.Range{Min: 100, Max: 250}},
	{"temperature", domain.Range{Min: 15, Max: 30}},
	{"rainfall", domain.Range{Min: 500, Max: 1500}},
	{"humidity", domain.Range{Min: 50, Max: 80}},
}

// Confidence scores each factor 1.0 inside its optimal band and decays
// linearly with the relative distance outside it, averages across all 8
// factors, subtracts a noise draw, and clamps to [0.30, 0.95].
func Confidence(f domain.FeatureVector, noise Noise) float64 {
	values := f.Values()

	var score float64
	for i, cr := range confidenceRanges {
		score += factorScore(values[i], cr.rng)
	}
	base := score / float64(len(confidenceRanges))

	c := base - noise.Draw()
	return math.Min(MaxConfidence, math.Max(MinConfidence, c))
}

// factorScore is 1.0 in range, else 1 minus the relative distance outside,
// floored at 0.
func factorScore(v float64, r domain.Range) float64 {
	if r.Contains(v) {
		return 1.0
	}
	var distance float64
	if v < r.Min {
		distance = (r.Min - v) / r.Min
	} else {
		distance = (v - r.Max) / r.Max
	}
	return math.Max(0, 1-distance)
}
