package predict

import (
	"strings"

	"github.com/hptimes-code/ai-crop-yield-prediction/internal/domain"
)

// RiskLevel classifies the accumulated agronomic risk of an input.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// riskRule adds points and a human-readable factor when its predicate
// holds. Rules are independent; a single parameter can only match one rule
// because severe thresholds are checked before the mild ones.
type riskRule struct {
	applies func(domain.FeatureVector) bool
	points  int
	factor  string
}

var riskRules = []riskRule{
	{func(f domain.FeatureVector) bool { return f.PH < 5.5 || f.PH > 8.0 }, 2,
		"Extreme pH levels may affect nutrient availability"},
	{func(f domain.FeatureVector) bool { return (f.PH >= 5.5 && f.PH < 6.0) || (f.PH > 7.5 && f.PH <= 8.0) }, 1,
		"Suboptimal pH levels may reduce yield"},

	{func(f domain.FeatureVector) bool { return f.Temperature < 10 || f.Temperature > 35 }, 2,
		"Extreme temperatures may stress crops"},
	{func(f domain.FeatureVector) bool { return (f.Temperature >= 10 && f.Temperature < 15) || (f.Temperature > 30 && f.Temperature <= 35) }, 1,
		"Temperature outside optimal range"},

	{func(f domain.FeatureVector) bool { return f.Rainfall < 300 }, 2,
		"Insufficient rainfall may require additional irrigation"},
	{func(f domain.FeatureVector) bool { return f.Rainfall > 2000 }, 2,
		"Excessive rainfall may cause waterlogging"},
	{func(f domain.FeatureVector) bool {
		return (f.Rainfall >= 300 && f.Rainfall < 500) || (f.Rainfall > 1500 && f.Rainfall <= 2000)
	}, 1, "Rainfall outside optimal range"},

	{func(f domain.FeatureVector) bool { return f.Nitrogen < 15 }, 1,
		"Low nitrogen levels may limit growth"},
	{func(f domain.FeatureVector) bool { return f.Phosphorus < 10 }, 1,
		"Low phosphorus levels may affect root development"},
	{func(f domain.FeatureVector) bool { return f.Potassium < 80 }, 1,
		"Low potassium levels may reduce disease resistance"},
}

// AssessRisk accumulates an integer score from the threshold rules and
// maps it to Low (<2), Medium (2-3), or High (>=4). Deterministic given
// the inputs. The factor string joins every matched rule's description.
func AssessRisk(f domain.FeatureVector) (RiskLevel, string) {
	level, factors, _ := assessRiskScore(f)
	return level, factors
}

// RiskScore exposes the raw accumulated score for monotonicity checks.
func RiskScore(f domain.FeatureVector) int {
	_, _, score := assessRiskScore(f)
	return score
}

func assessRiskScore(f domain.FeatureVector) (RiskLevel, string, int) {
	var (
		score   int
		factors []string
	)
	for _, rule := range riskRules {
		if rule.applies(f) {
			score += rule.points
			factors = append(factors, rule.factor)
		}
	}

	level := RiskLow
	switch {
	case score >= 4:
		level = RiskHigh
	case score >= 2:
		level = RiskMedium
	}

	if len(factors) == 0 {
		factors = append(factors, "No significant risk factors identified")
	}
	return level, strings.Join(factors, "; "), score
}
