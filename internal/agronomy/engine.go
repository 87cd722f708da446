// Package agronomy produces operational field guidance: per-category
// recommendations (irrigation, fertilization, pest control, harvesting)
// keyed on crop and growth stage, and a weekly task schedule. All output
// is deterministic given crop, stage, and date.
package agronomy

import (
	"fmt"
	"strings"
	"time"

	"github.com/hptimes-code/ai-crop-yield-prediction/internal/domain"
)

// Priority ranks how urgently a recommendation should be acted on.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Recommendation is one category's guidance record.
type Recommendation struct {
	Action   string   `json:"action"`
	Timing   string   `json:"timing"`
	Priority Priority `json:"priority"`
	Reason   string   `json:"reason"`
	Details  []string `json:"details"`
}

// Plan groups the four recommendation categories for a farm snapshot.
type Plan struct {
	Crop        domain.CropType    `json:"crop"`
	Stage       domain.GrowthStage `json:"growth_stage"`
	Region      string             `json:"region"`
	GeneratedAt time.Time          `json:"generated_at"`

	Irrigation    Recommendation `json:"irrigation"`
	Fertilization Recommendation `json:"fertilization"`
	PestControl   Recommendation `json:"pest_control"`
	Harvesting    Recommendation `json:"harvesting"`
}

// Recommend builds the full category plan for a crop at a growth stage.
// The date drives seasonal adjustments (summer/winter irrigation detail
// sets, pest pressure by month). Returns ErrUnsupportedCrop for crops
// without a profile.
func Recommend(crop domain.CropType, stage domain.GrowthStage, date time.Time, region string) (Plan, error) {
	profile, err := domain.ProfileFor(crop)
	if err != nil {
		return Plan{}, fmt.Errorf("recommend: %w", err)
	}

	return Plan{
		Crop:          crop,
		Stage:         stage,
		Region:        region,
		GeneratedAt:   date,
		Irrigation:    irrigationAdvice(profile, stage, date),
		Fertilization: fertilizationAdvice(profile, stage),
		PestControl:   pestAdvice(profile, stage, date),
		Harvesting:    harvestAdvice(crop, stage),
	}, nil
}

// irrigationStages holds the base guidance per growth stage before
// water-need and seasonal adjustments.
var irrigationStages = map[domain.GrowthStage]Recommendation{
	domain.StageSeedling: {
		Action:   "Light, frequent watering to maintain soil moisture",
		Timing:   "Daily light irrigation or every 2-3 days",
		Priority: PriorityHigh,
		Reason:   "Critical establishment phase requiring consistent moisture",
	},
	domain.StageVegetative: {
		Action:   "Deep, less frequent watering to encourage root development",
		Timing:   "Every 3-5 days depending on soil type and weather",
		Priority: PriorityMedium,
		Reason:   "Building strong root system and vegetative growth",
	},
	domain.StageFlowering: {
		Action:   "Consistent moisture critical for flower and fruit development",
		Timing:   "Monitor soil moisture daily, irrigate as needed",
		Priority: PriorityHigh,
		Reason:   "Water stress during flowering significantly impacts yield",
	},
	domain.StageMaturity: {
		Action:   "Reduce irrigation to prevent quality issues and prepare for harvest",
		Timing:   "Minimal irrigation, only if severe drought conditions",
		Priority: PriorityLow,
		Reason:   "Excess moisture can delay harvest and reduce grain quality",
	},
}

func irrigationAdvice(p domain.Profile, stage domain.GrowthStage, date time.Time) Recommendation {
	rec, ok := irrigationStages[stage]
	if !ok {
		rec = irrigationStages[domain.StageVegetative]
	}

	// Crop thirst shifts the stage priority one notch.
	switch p.WaterNeeds {
	case domain.WaterVeryHigh:
		rec.Action += " - This crop requires abundant water"
		if rec.Priority == PriorityLow {
			rec.Priority = PriorityMedium
		}
	case domain.WaterLow:
		rec.Action += " - This crop is drought tolerant"
		if rec.Priority == PriorityHigh {
			rec.Priority = PriorityMedium
		}
	}

	switch date.Month() {
	case time.June, time.July, time.August:
		rec.Details = []string{
			"Increase irrigation frequency during hot summer months",
			"Consider early morning irrigation to reduce evaporation",
			"Monitor for signs of heat stress",
			"Mulch around plants to retain soil moisture",
		}
	case time.December, time.January, time.February:
		rec.Details = []string{
			"Reduce irrigation frequency in cooler weather",
			"Avoid overwatering in low evaporation conditions",
			"Check drainage to prevent waterlogging",
			"Monitor soil temperature before irrigating",
		}
	default:
		rec.Details = []string{
			"Monitor weather forecasts before scheduling irrigation",
			"Check soil moisture at 6-inch depth before watering",
			"Adjust timing based on recent rainfall",
			"Maintain consistent moisture levels",
		}
	}
	return rec
}

var fertilizerTimings = map[domain.GrowthStage]string{
	domain.StageSeedling:   "At planting or within 2 weeks of emergence",
	domain.StageVegetative: "Every 3-4 weeks during active growth",
	domain.StageFlowering:  "At flower initiation and early flowering",
	domain.StageMaturity:   "Final application before grain filling",
}

var fertilizerPriorities = map[domain.GrowthStage]Priority{
	domain.StageSeedling:   PriorityHigh,
	domain.StageVegetative: PriorityHigh,
	domain.StageFlowering:  PriorityMedium,
	domain.StageMaturity:   PriorityLow,
}

var fertilizerDetails = map[domain.GrowthStage][]string{
	domain.StageSeedling: {
		"Use starter fertilizer with higher phosphorus content",
		"Apply at planting or within first 2 weeks",
		"Avoid high nitrogen that can burn young plants",
		"Consider soil test results for precise application rates",
	},
	domain.StageVegetative: {
		"Apply nitrogen-rich fertilizer to promote leaf and stem growth",
		"Side-dress application recommended for row crops",
		"Split application to reduce nutrient loss",
		"Monitor plants for nitrogen deficiency signs (yellowing leaves)",
	},
	domain.StageFlowering: {
		"Switch to balanced NPK fertilizer",
		"Add micronutrients (zinc, boron, iron) if deficient",
		"Avoid excessive nitrogen that can delay flowering",
		"Apply before peak flowering for maximum benefit",
	},
	domain.StageMaturity: {
		"Reduce or eliminate nitrogen application",
		"Final potassium application to improve grain quality",
		"Avoid fertilizer that delays harvest maturity",
		"Focus on harvest preparation rather than growth",
	},
}

func fertilizationAdvice(p domain.Profile, stage domain.GrowthStage) Recommendation {
	products := p.FertilizerSchedule[stage]
	if len(products) == 0 {
		products = []string{"Balanced NPK"}
	}

	timing, ok := fertilizerTimings[stage]
	if !ok {
		timing = "As needed based on soil tests"
	}
	priority, ok := fertilizerPriorities[stage]
	if !ok {
		priority = PriorityMedium
	}

	return Recommendation{
		Action:   fmt.Sprintf("Apply %s suitable for %s stage", strings.Join(products, ", "), strings.ToLower(string(stage))),
		Timing:   timing,
		Priority: priority,
		Reason:   fmt.Sprintf("%s stage requires specific nutrients for optimal development", stage),
		Details:  fertilizerDetails[stage],
	}
}

var pestStageDetails = map[domain.GrowthStage][]string{
	domain.StageSeedling: {
		"Focus on soil-dwelling pests and cutworms",
		"Use physical barriers or targeted treatments",
		"Monitor for damping-off diseases",
		"Inspect plants every 2-3 days for early detection",
	},
	domain.StageVegetative: {
		"Scout for leaf-feeding insects and caterpillars",
		"Check undersides of leaves for eggs and larvae",
		"Monitor growth points for damage",
		"Implement beneficial insect habitat if using IPM",
	},
	domain.StageFlowering: {
		"Watch for pollinators before applying any treatments",
		"Focus on flower and developing fruit protection",
		"Monitor for disease symptoms in humid conditions",
		"Avoid spraying during peak pollinator activity",
	},
	domain.StageMaturity: {
		"Inspect for storage pest prevention",
		"Monitor grain moisture to prevent mold",
		"Scout for late-season pests that affect quality",
		"Prepare for post-harvest pest management",
	},
}

// seasonalPestRisk maps the calendar month to pest pressure: peak growing
// season is High, the shoulder months are Medium, winter is Low.
func seasonalPestRisk(m time.Month) Priority {
	switch m {
	case time.May, time.June, time.July, time.August, time.September:
		return PriorityHigh
	case time.March, time.April, time.October:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

func pestAdvice(p domain.Profile, stage domain.GrowthStage, date time.Time) Recommendation {
	risk := seasonalPestRisk(date.Month())

	watch := p.CommonPests
	if len(watch) > 2 {
		watch = watch[:2]
	}

	details := append([]string{}, pestStageDetails[stage]...)
	details = append(details, fmt.Sprintf("Common pests for %s: %s", p.Crop, strings.Join(p.CommonPests, ", ")))

	return Recommendation{
		Action:   fmt.Sprintf("Monitor for %s and other common pests", strings.Join(watch, ", ")),
		Timing:   "Weekly scouting recommended during growing season",
		Priority: risk,
		Reason:   fmt.Sprintf("Seasonal pest pressure is %s for this time of year", strings.ToLower(string(risk))),
		Details:  details,
	}
}

var harvestChecklists = map[domain.CropType][]string{
	domain.CropWheat: {
		"Check grain moisture content (target: 12-14% for storage)",
		"Test grain hardness and protein content",
		"Monitor weather forecasts for dry harvest conditions",
		"Prepare combine harvester and grain storage facilities",
	},
	domain.CropCorn: {
		"Monitor grain moisture (target: 15-20% for field drying)",
		"Check for black layer formation at kernel base",
		"Assess stalk strength to prevent lodging",
		"Prepare for grain drying if moisture is high",
	},
	domain.CropRice: {
		"Check grain filling and color change",
		"Monitor panicle moisture content",
		"Plan for proper field drying before threshing",
		"Prepare threshing and winnowing equipment",
	},
	domain.CropSoybeans: {
		"Check pod color and rattle test",
		"Monitor grain moisture (target: 13-15% for storage)",
		"Assess plant maturity uniformity across field",
		"Prepare combine settings for soybean harvest",
	},
}

func harvestAdvice(crop domain.CropType, stage domain.GrowthStage) Recommendation {
	if stage != domain.StageMaturity {
		return Recommendation{
			Action:   "Continue monitoring crop development - not ready for harvest",
			Timing:   "Harvesting typically begins when crop reaches maturity stage",
			Priority: PriorityLow,
			Reason:   fmt.Sprintf("Crop is currently in %s stage", strings.ToLower(string(stage))),
			Details: []string{
				"Monitor crop development daily",
				"Look for signs of maturity (grain color, moisture content)",
				"Prepare harvesting equipment and storage facilities",
				"Plan harvest logistics and labor requirements",
			},
		}
	}

	details := append([]string{}, harvestChecklists[crop]...)
	details = append(details,
		"Schedule harvest during optimal weather windows",
		"Coordinate labor and equipment availability",
		"Prepare post-harvest handling and storage systems",
		"Plan for immediate post-harvest field operations",
	)

	return Recommendation{
		Action:   "Crop is approaching harvest readiness - begin harvest preparations",
		Timing:   "Monitor daily for optimal harvest window",
		Priority: PriorityHigh,
		Reason:   "Proper timing is critical for maximizing yield and quality",
		Details:  details,
	}
}
