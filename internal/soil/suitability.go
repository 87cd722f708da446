package soil

import (
	"fmt"
	"math"

	"github.com/hptimes-code/ai-crop-yield-prediction/internal/domain"
)

// Status grades a single parameter's fit for a crop.
type Status string

const (
	StatusOptimal    Status = "Optimal"
	StatusSuboptimal Status = "Suboptimal"
	StatusPoor       Status = "Poor"
)

// ParameterFit is one parameter's score against a crop's preferred band.
type ParameterFit struct {
	Score   float64      `json:"score"`
	Current float64      `json:"current"`
	Optimal domain.Range `json:"optimal_range"`
	Status  Status       `json:"status"`
}

// LimitingFactor marks a parameter scoring below the suitability threshold.
type LimitingFactor struct {
	Parameter Parameter    `json:"parameter"`
	Current   float64      `json:"current"`
	Needed    domain.Range `json:"needed_range"`
	Score     float64      `json:"score"`
}

// SuitabilityResult is the crop-specific soil fit analysis.
type SuitabilityResult struct {
	Crop            domain.CropType            `json:"crop"`
	OverallScore    int                        `json:"overall_suitability"`
	ParameterFits   map[Parameter]ParameterFit `json:"parameter_suitability"`
	LimitingFactors []LimitingFactor           `json:"limiting_factors"`
	Recommendations []string                   `json:"recommendations"`
}

// cropPreferences are per-crop preferred bands. Narrower and crop-shifted
// relative to the generic optimalRanges used by Analyze.
var cropPreferences = map[domain.CropType]map[Parameter]domain.Range{
	domain.CropWheat: {
		ParamPH:         {Min: 6.0, Max: 7.0},
		ParamNitrogen:   {Min: 25, Max: 45},
		ParamPhosphorus: {Min: 20, Max: 40},
		ParamPotassium:  {Min: 120, Max: 200},
	},
	domain.CropCorn: {
		ParamPH:         {Min: 6.0, Max: 6.8},
		ParamNitrogen:   {Min: 30, Max: 60},
		ParamPhosphorus: {Min: 25, Max: 45},
		ParamPotassium:  {Min: 150, Max: 250},
	},
	domain.CropRice: {
		ParamPH:         {Min: 5.5, Max: 6.5},
		ParamNitrogen:   {Min: 20, Max: 40},
		ParamPhosphorus: {Min: 15, Max: 30},
		ParamPotassium:  {Min: 100, Max: 180},
	},
	domain.CropSoybeans: {
		ParamPH:         {Min: 6.0, Max: 7.0},
		ParamNitrogen:   {Min: 15, Max: 30},
		ParamPhosphorus: {Min: 20, Max: 35},
		ParamPotassium:  {Min: 120, Max: 220},
	},
}

// suitabilityParams fixes the evaluation order.
var suitabilityParams = []Parameter{ParamPH, ParamNitrogen, ParamPhosphorus, ParamPotassium}

// Suitability scores the measured parameters against the crop's preferred
// bands. Parameters below 70 become limiting factors. Unmeasured
// parameters are skipped. Returns ErrUnsupportedCrop for unknown crops.
func Suitability(t Test, crop domain.CropType) (SuitabilityResult, error) {
	prefs, ok := cropPreferences[crop]
	if !ok {
		return SuitabilityResult{}, fmt.Errorf("suitability for %q: %w", crop, domain.ErrUnsupportedCrop)
	}

	res := SuitabilityResult{
		Crop:          crop,
		ParameterFits: make(map[Parameter]ParameterFit),
	}

	var total float64
	var count int
	for _, param := range suitabilityParams {
		v, measured := t.value(param)
		if !measured {
			continue
		}
		r := prefs[param]
		score := scoreAgainst(v, r)

		res.ParameterFits[param] = ParameterFit{
			Score:   score,
			Current: v,
			Optimal: r,
			Status:  statusFor(score),
		}
		if score < 70 {
			res.LimitingFactors = append(res.LimitingFactors, LimitingFactor{
				Parameter: param,
				Current:   v,
				Needed:    r,
				Score:     score,
			})
		}
		total += score
		count++
	}

	if count > 0 {
		res.OverallScore = int(math.Round(total / float64(count)))
	}
	res.Recommendations = suitabilityAdvice(res, crop)
	return res, nil
}

func statusFor(score float64) Status {
	switch {
	case score == 100:
		return StatusOptimal
	case score > 70:
		return StatusSuboptimal
	default:
		return StatusPoor
	}
}

func suitabilityAdvice(res SuitabilityResult, crop domain.CropType) []string {
	var advice []string

	switch {
	case res.OverallScore >= 85:
		advice = append(advice,
			fmt.Sprintf("Soil conditions are excellent for %s production", crop),
			"Maintain current soil management practices")
	case res.OverallScore >= 70:
		advice = append(advice,
			fmt.Sprintf("Soil conditions are good for %s with minor adjustments needed", crop))
	default:
		advice = append(advice,
			fmt.Sprintf("Soil requires significant improvements for optimal %s production", crop))
	}

	for _, lf := range res.LimitingFactors {
		low := lf.Current < lf.Needed.Min
		switch lf.Parameter {
		case ParamPH:
			if low {
				advice = append(advice, fmt.Sprintf("Apply lime to raise pH to %g-%g range for %s",
					lf.Needed.Min, lf.Needed.Max, crop))
			} else {
				advice = append(advice, fmt.Sprintf("Apply sulfur to lower pH to %g-%g range for %s",
					lf.Needed.Min, lf.Needed.Max, crop))
			}
		case ParamNitrogen:
			if low {
				advice = append(advice, fmt.Sprintf("Apply nitrogen fertilizer to reach %g-%g ppm for %s",
					lf.Needed.Min, lf.Needed.Max, crop))
			} else {
				advice = append(advice, fmt.Sprintf("Reduce nitrogen applications - current levels exceed %s requirements", crop))
			}
		case ParamPhosphorus:
			if low {
				advice = append(advice, fmt.Sprintf("Apply phosphorus fertilizer to reach %g-%g ppm for %s",
					lf.Needed.Min, lf.Needed.Max, crop))
			} else {
				advice = append(advice, fmt.Sprintf("Reduce phosphorus applications for %s", crop))
			}
		case ParamPotassium:
			if low {
				advice = append(advice, fmt.Sprintf("Apply potassium fertilizer to reach %g-%g ppm for %s",
					lf.Needed.Min, lf.Needed.Max, crop))
			} else {
				advice = append(advice, fmt.Sprintf("Reduce potassium applications for %s", crop))
			}
		}
	}

	switch crop {
	case domain.CropRice:
		advice = append(advice,
			"Ensure proper water management for paddy conditions",
			"Monitor for anaerobic soil conditions")
	case domain.CropSoybeans:
		advice = append(advice,
			"Consider inoculation with Rhizobia bacteria for nitrogen fixation",
			"Monitor calcium levels for pod development")
	case domain.CropCorn:
		advice = append(advice,
			"Ensure adequate drainage for corn production",
			"Plan for high nitrogen requirements during vegetative growth")
	case domain.CropWheat:
		advice = append(advice,
			"Monitor sulfur levels for protein development",
			"Ensure good soil structure for root development")
	}

	return advice
}
