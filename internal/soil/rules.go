package soil

import "fmt"

// Tier orders recommendations by urgency.
type Tier string

const (
	TierImmediate Tier = "immediate"
	TierShortTerm Tier = "short_term"
	TierLongTerm  Tier = "long_term"
)

// rule is one entry of the declarative recommendation cascade: when the
// predicate holds for a test, the rendered message is appended to the
// rule's tier. Rules are evaluated in table order so output ordering is
// stable.
type rule struct {
	tier    Tier
	when    func(t Test, a Analysis) bool
	message func(t Test) string
}

func static(msg string) func(Test) string {
	return func(Test) string { return msg }
}

// soilRules is the full cascade. Unmeasured fields evaluate against
// mid-range assumptions (see Test.valueOr) so a sparse test still produces
// sensible guidance.
var soilRules = buildRuleTable()

func buildRuleTable() []rule {
	rules := []rule{
		// pH correction.
		{TierImmediate,
			func(t Test, _ Analysis) bool { return t.valueOr(ParamPH, 7.0) < 6.0 },
			func(t Test) string {
				return fmt.Sprintf("Apply lime to raise pH from %.1f to 6.0-7.0 range", t.valueOr(ParamPH, 7.0))
			}},
		{TierShortTerm,
			func(t Test, _ Analysis) bool { return t.valueOr(ParamPH, 7.0) < 6.0 },
			static("Retest pH after 3-4 months to monitor lime effectiveness")},
		{TierImmediate,
			func(t Test, _ Analysis) bool { return t.valueOr(ParamPH, 7.0) > 8.0 },
			func(t Test) string {
				return fmt.Sprintf("Apply sulfur or organic matter to lower pH from %.1f", t.valueOr(ParamPH, 7.0))
			}},
		{TierShortTerm,
			func(t Test, _ Analysis) bool { return t.valueOr(ParamPH, 7.0) > 8.0 },
			static("Consider using acidifying fertilizers")},

		// Organic matter.
		{TierImmediate,
			func(t Test, _ Analysis) bool { return t.valueOr(ParamOrganicMatter, 3.0) < 2.5 },
			static("Add compost or well-rotted manure to increase organic matter")},
		{TierLongTerm,
			func(t Test, _ Analysis) bool { return t.valueOr(ParamOrganicMatter, 3.0) < 2.5 },
			static("Implement cover cropping to build long-term organic matter")},
		{TierShortTerm,
			func(t Test, _ Analysis) bool { return t.valueOr(ParamOrganicMatter, 3.0) > 6.0 },
			static("Monitor drainage as high organic matter can retain excess water")},
	}

	// Macronutrient deficiency and excess, severity-scaled.
	for _, nutrient := range []Parameter{ParamNitrogen, ParamPhosphorus, ParamPotassium} {
		nutrient := nutrient
		r := optimalRanges[nutrient]

		rules = append(rules,
			rule{TierImmediate,
				func(t Test, _ Analysis) bool {
					v := t.valueOr(nutrient, 0)
					return v < r.Min && (r.Min-v)/r.Min*100 > 50
				},
				static(fmt.Sprintf("Apply %s fertilizer - severe deficiency detected", nutrient))},
			rule{TierShortTerm,
				func(t Test, _ Analysis) bool {
					v := t.valueOr(nutrient, 0)
					return v < r.Min && (r.Min-v)/r.Min*100 <= 50
				},
				static(fmt.Sprintf("Increase %s levels through targeted fertilization", nutrient))},
			rule{TierImmediate,
				func(t Test, _ Analysis) bool { return t.valueOr(nutrient, 0) > r.Max*1.5 },
				static(fmt.Sprintf("Reduce %s applications - excess levels detected", nutrient))},
		)
	}

	rules = append(rules,
		// Secondary nutrients.
		rule{TierShortTerm,
			func(t Test, _ Analysis) bool { return t.valueOr(ParamCalcium, 1200) < 1000 },
			static("Apply gypsum or lime to increase calcium levels")},
		rule{TierShortTerm,
			func(t Test, _ Analysis) bool { return t.valueOr(ParamMagnesium, 120) < 75 },
			static("Apply Epsom salt or dolomitic lime for magnesium")},

		// Ca:Mg balance.
		rule{TierShortTerm,
			func(t Test, _ Analysis) bool { return caMgRatio(t) > 0 && caMgRatio(t) < 3 },
			static("Calcium to magnesium ratio is low - consider calcium applications")},
		rule{TierShortTerm,
			func(t Test, _ Analysis) bool { return caMgRatio(t) > 10 },
			static("Calcium to magnesium ratio is high - consider magnesium applications")},

		// Overall condition.
		rule{TierImmediate,
			func(_ Test, a Analysis) bool { return a.OverallScore < 60 },
			static("Conduct comprehensive soil remediation program")},
		rule{TierLongTerm,
			func(_ Test, a Analysis) bool { return a.OverallScore < 60 },
			static("Implement regular soil testing schedule (every 2-3 years)")},

		// Standing long-term practices, always included.
		rule{TierLongTerm, always, static("Maintain crop rotation to preserve soil health")},
		rule{TierLongTerm, always, static("Consider precision agriculture techniques for optimal nutrient management")},
		rule{TierLongTerm, always, static("Implement sustainable farming practices to build long-term soil fertility")},
	)

	return rules
}

func always(Test, Analysis) bool { return true }

func caMgRatio(t Test) float64 {
	ca := t.valueOr(ParamCalcium, 1200)
	mg := t.valueOr(ParamMagnesium, 120)
	if ca <= 0 || mg <= 0 {
		return 0
	}
	return ca / mg
}

// buildRecommendations evaluates the cascade in table order.
func buildRecommendations(t Test, a Analysis) Recommendations {
	rec := Recommendations{
		Immediate: []string{},
		ShortTerm: []string{},
		LongTerm:  []string{},
	}
	for _, r := range soilRules {
		if !r.when(t, a) {
			continue
		}
		msg := r.message(t)
		switch r.tier {
		case TierImmediate:
			rec.Immediate = append(rec.Immediate, msg)
		case TierShortTerm:
			rec.ShortTerm = append(rec.ShortTerm, msg)
		case TierLongTerm:
			rec.LongTerm = append(rec.LongTerm, msg)
		}
	}
	return rec
}
