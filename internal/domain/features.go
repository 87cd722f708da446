package domain

import (
	"fmt"
	"math"
)

// Fallback weather constants, substituted when the live supplier is
// unavailable. Documented interface contract, not tunables.
const (
	FallbackTemperature = 22.0  // °C
	FallbackRainfall    = 800.0 // mm, annual
	FallbackHumidity    = 65.0  // %
)

// NumFeatures is the size of the model feature vector.
const NumFeatures = 8

// FeatureVector is the ordered model input: five soil parameters followed
// by three weather parameters. The field order matches the training-table
// column order and must not change.
type FeatureVector struct {
	PH            float64 `json:"ph_level"`
	OrganicMatter float64 `json:"organic_matter"`
	Nitrogen      float64 `json:"nitrogen"`
	Phosphorus    float64 `json:"phosphorus"`
	Potassium     float64 `json:"potassium"`
	Temperature   float64 `json:"temperature"`
	Rainfall      float64 `json:"rainfall"`
	Humidity      float64 `json:"humidity"`
}

// FeatureNames returns the canonical column names in vector order.
func FeatureNames() []string {
	return []string{
		"ph_level", "organic_matter", "nitrogen", "phosphorus",
		"potassium", "temperature", "rainfall", "humidity",
	}
}

// FeatureDisplayNames returns the human-readable factor names in vector
// order, used for feature-importance output.
func FeatureDisplayNames() []string {
	return []string{
		"Ph Level", "Organic Matter", "Nitrogen", "Phosphorus",
		"Potassium", "Temperature", "Rainfall", "Humidity",
	}
}

// Values returns the features as a slice in canonical order.
func (f FeatureVector) Values() []float64 {
	return []float64{
		f.PH, f.OrganicMatter, f.Nitrogen, f.Phosphorus,
		f.Potassium, f.Temperature, f.Rainfall, f.Humidity,
	}
}

// Validate checks that every feature is a finite number.
// Returns ErrInvalidFeature naming the first offending field.
func (f FeatureVector) Validate() error {
	names := FeatureNames()
	for i, v := range f.Values() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s", ErrInvalidFeature, names[i])
		}
	}
	return nil
}

// GlobalBounds are the hard physical bounds every feature column is clipped
// to after cross-feature perturbation, regardless of crop.
var GlobalBounds = struct {
	PH            Range
	OrganicMatter Range
	Nitrogen      Range
	Phosphorus    Range
	Potassium     Range
	Temperature   Range
	Rainfall      Range
	Humidity      Range
	Yield         Range
}{
	PH:            Range{4.0, 9.0},
	OrganicMatter: Range{0.5, 10.0},
	Nitrogen:      Range{5, 100},
	Phosphorus:    Range{5, 100},
	Potassium:     Range{50, 500},
	Temperature:   Range{5, 45},
	Rainfall:      Range{200, 3000},
	Humidity:      Range{20, 100},
	Yield:         Range{0.5, 15.0},
}

// ClipGlobal clamps every feature to its global bound.
func (f FeatureVector) ClipGlobal() FeatureVector {
	return FeatureVector{
		PH:            GlobalBounds.PH.Clip(f.PH),
		OrganicMatter: GlobalBounds.OrganicMatter.Clip(f.OrganicMatter),
		Nitrogen:      GlobalBounds.Nitrogen.Clip(f.Nitrogen),
		Phosphorus:    GlobalBounds.Phosphorus.Clip(f.Phosphorus),
		Potassium:     GlobalBounds.Potassium.Clip(f.Potassium),
		Temperature:   GlobalBounds.Temperature.Clip(f.Temperature),
		Rainfall:      GlobalBounds.Rainfall.Clip(f.Rainfall),
		Humidity:      GlobalBounds.Humidity.Clip(f.Humidity),
	}
}
