package soil

import (
	"math"

	"github.com/hptimes-code/ai-crop-yield-prediction/internal/domain"
)

// Rating is the qualitative soil health grade.
type Rating string

const (
	RatingExcellent Rating = "Excellent"
	RatingGood      Rating = "Good"
	RatingFair      Rating = "Fair"
	RatingPoor      Rating = "Poor"
	RatingVeryPoor  Rating = "Very Poor"
)

// Severity grades how far a parameter is from its optimal band.
type Severity string

const (
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// Imbalance records a parameter outside its optimal band. Bound holds the
// violated range edge: the minimum for a deficiency, the maximum for an
// excess.
type Imbalance struct {
	Parameter Parameter `json:"parameter"`
	Current   float64   `json:"current"`
	Bound     float64   `json:"bound"`
	Severity  Severity  `json:"severity"`
}

// Recommendations groups soil improvement actions by urgency tier.
type Recommendations struct {
	Immediate []string `json:"immediate"`
	ShortTerm []string `json:"short_term"`
	LongTerm  []string `json:"long_term"`
}

// Analysis is the complete soil health result. Constructed fresh per call.
type Analysis struct {
	OverallScore    int                   `json:"overall_score"`
	Rating          Rating                `json:"rating"`
	ParameterScores map[Parameter]float64 `json:"parameter_scores"`
	Deficiencies    []Imbalance           `json:"deficiencies"`
	Excesses        []Imbalance           `json:"excesses"`
	Recommendations Recommendations       `json:"recommendations"`
}

// Analyze scores each measured parameter against its optimal band and
// derives the overall score, rating, imbalance lists, and tiered
// recommendations. Unmeasured parameters are excluded from the average.
func Analyze(t Test) Analysis {
	a := Analysis{ParameterScores: make(map[Parameter]float64)}

	var total float64
	var count int

	for _, param := range parameters {
		v, ok := t.value(param)
		if !ok {
			continue
		}
		r := optimalRanges[param]
		score := scoreAgainst(v, r)
		a.ParameterScores[param] = score
		total += score
		count++

		switch {
		case v < r.Min:
			a.Deficiencies = append(a.Deficiencies, Imbalance{
				Parameter: param,
				Current:   v,
				Bound:     r.Min,
				Severity:  severityFor(score),
			})
		case v > r.Max:
			a.Excesses = append(a.Excesses, Imbalance{
				Parameter: param,
				Current:   v,
				Bound:     r.Max,
				Severity:  severityFor(score),
			})
		}
	}

	if count > 0 {
		a.OverallScore = int(math.Round(total / float64(count)))
	}
	a.Rating = ratingFor(a.OverallScore)
	a.Recommendations = buildRecommendations(t, a)
	return a
}

// scoreAgainst maps a value to [0,100]: 100 inside the band, otherwise
// decaying with the deviation relative to the violated bound.
func scoreAgainst(v float64, r domain.Range) float64 {
	switch {
	case r.Contains(v):
		return 100
	case v < r.Min:
		deficit := r.Min - v
		return math.Max(0, 100-deficit/r.Min*100)
	default:
		excess := v - r.Max
		return math.Max(0, 100-excess/r.Max*100)
	}
}

func severityFor(score float64) Severity {
	if score < 50 {
		return SeverityHigh
	}
	return SeverityMedium
}

func ratingFor(score int) Rating {
	switch {
	case score >= 85:
		return RatingExcellent
	case score >= 75:
		return RatingGood
	case score >= 60:
		return RatingFair
	case score >= 40:
		return RatingPoor
	default:
		return RatingVeryPoor
	}
}
