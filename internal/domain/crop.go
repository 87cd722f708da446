package domain

import (
	"fmt"
	"strings"
)

// CropType identifies one of the supported crops.
type CropType string

const (
	CropWheat    CropType = "Wheat"
	CropCorn     CropType = "Corn"
	CropRice     CropType = "Rice"
	CropSoybeans CropType = "Soybeans"
)

// CropTypes returns the supported crop types in a stable order.
func CropTypes() []CropType {
	return []CropType{CropWheat, CropCorn, CropRice, CropSoybeans}
}

// ParseCropType validates a crop type string (case-insensitive).
// Returns ErrUnsupportedCrop for anything outside the recognized set.
func ParseCropType(s string) (CropType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wheat":
		return CropWheat, nil
	case "corn":
		return CropCorn, nil
	case "rice":
		return CropRice, nil
	case "soybeans":
		return CropSoybeans, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCrop, s)
	}
}

// GrowthStage identifies a phase of the crop growth cycle. All supported
// crops share the same four-stage cycle.
type GrowthStage string

const (
	StageSeedling   GrowthStage = "Seedling"
	StageVegetative GrowthStage = "Vegetative"
	StageFlowering  GrowthStage = "Flowering"
	StageMaturity   GrowthStage = "Maturity"
)

// GrowthStages returns the growth stages in cycle order.
func GrowthStages() []GrowthStage {
	return []GrowthStage{StageSeedling, StageVegetative, StageFlowering, StageMaturity}
}

// ParseGrowthStage validates a growth stage string (case-insensitive).
func ParseGrowthStage(s string) (GrowthStage, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "seedling":
		return StageSeedling, nil
	case "vegetative":
		return StageVegetative, nil
	case "flowering":
		return StageFlowering, nil
	case "maturity":
		return StageMaturity, nil
	default:
		return "", fmt.Errorf("unknown growth stage: %q", s)
	}
}

// WaterNeed is a coarse crop water-demand classification.
type WaterNeed string

const (
	WaterLow        WaterNeed = "Low"
	WaterMedium     WaterNeed = "Medium"
	WaterMediumHigh WaterNeed = "Medium-High"
	WaterHigh       WaterNeed = "High"
	WaterVeryHigh   WaterNeed = "Very High"
)

// Range is a closed numeric interval [Min, Max].
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether v lies within the range (inclusive).
func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// Mid returns the midpoint of the range.
func (r Range) Mid() float64 { return (r.Min + r.Max) / 2 }

// Width returns the range width.
func (r Range) Width() float64 { return r.Max - r.Min }

// Clip clamps v to the range.
func (r Range) Clip(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// NPK holds one value per macronutrient (nitrogen, phosphorus, potassium).
// Units depend on context: ppm for soil targets, kg per ton of yield for
// fertilizer requirements (as N, P2O5, K2O).
type NPK struct {
	N float64
	P float64
	K float64
}

// Season names the start and end months of the crop's growing season.
type Season struct {
	Start string
	End   string
}

// Profile is the static agronomic reference record for one crop type.
// Ranges parameterize the synthetic training-data generator; Optimal*
// values anchor the deterministic yield formula; the remaining tables
// drive the recommendation engine and fertilizer planner.
type Profile struct {
	Crop CropType

	// Parameter ranges for synthetic data generation.
	PH            Range
	OrganicMatter Range
	Nitrogen      Range
	Phosphorus    Range
	Potassium     Range
	Temperature   Range
	Rainfall      Range
	Humidity      Range

	BaseYield     float64 // tons per hectare under reference conditions
	YieldVariance float64 // tons per hectare, scales generation noise

	// Optimal values for the multiplicative yield formula.
	OptimalPH          float64
	OptimalNutrients   NPK // ppm
	OptimalTemperature float64
	OptimalRainfall    float64
	OptimalHumidity    float64

	// Knowledge tables for the recommendation engine.
	GrowingSeason      Season
	WaterNeeds         WaterNeed
	FertilizerSchedule map[GrowthStage][]string
	CommonPests        []string

	// Fertilizer planning: nutrient uptake per ton of target yield,
	// expressed as kg of N / P2O5 / K2O.
	NutrientPerTon NPK
}

var profiles = map[CropType]Profile{
	CropWheat: {
		Crop:          CropWheat,
		PH:            Range{5.8, 7.2},
		OrganicMatter: Range{1.5, 6.0},
		Nitrogen:      Range{15, 60},
		Phosphorus:    Range{10, 45},
		Potassium:     Range{80, 250},
		Temperature:   Range{12, 28},
		Rainfall:      Range{400, 1200},
		Humidity:      Range{45, 75},
		BaseYield:     4.5,
		YieldVariance: 2.0,

		OptimalPH:          6.5,
		OptimalNutrients:   NPK{N: 35, P: 25, K: 150},
		OptimalTemperature: 20,
		OptimalRainfall:    600,
		OptimalHumidity:    60,

		GrowingSeason: Season{Start: "October", End: "June"},
		WaterNeeds:    WaterMedium,
		FertilizerSchedule: map[GrowthStage][]string{
			StageSeedling:   {"Phosphorus-rich starter", "Light nitrogen"},
			StageVegetative: {"High nitrogen", "Potassium"},
			StageFlowering:  {"Balanced NPK", "Micronutrients"},
			StageMaturity:   {"Minimal fertilizer", "Potassium boost"},
		},
		CommonPests:    []string{"Aphids", "Wheat rust", "Armyworms"},
		NutrientPerTon: NPK{N: 25, P: 12, K: 20},
	},
	CropCorn: {
		Crop:          CropCorn,
		PH:            Range{5.5, 7.0},
		OrganicMatter: Range{2.0, 6.5},
		Nitrogen:      Range{25, 80},
		Phosphorus:    Range{15, 50},
		Potassium:     Range{100, 300},
		Temperature:   Range{18, 32},
		Rainfall:      Range{600, 1500},
		Humidity:      Range{55, 85},
		BaseYield:     7.5,
		YieldVariance: 3.0,

		OptimalPH:          6.2,
		OptimalNutrients:   NPK{N: 50, P: 30, K: 180},
		OptimalTemperature: 25,
		OptimalRainfall:    900,
		OptimalHumidity:    70,

		GrowingSeason: Season{Start: "April", End: "October"},
		WaterNeeds:    WaterHigh,
		FertilizerSchedule: map[GrowthStage][]string{
			StageSeedling:   {"Starter fertilizer", "Phosphorus"},
			StageVegetative: {"Heavy nitrogen", "Side-dress application"},
			StageFlowering:  {"Balanced fertilizer", "Zinc supplement"},
			StageMaturity:   {"Minimal nitrogen", "Potassium"},
		},
		CommonPests:    []string{"Corn borer", "Rootworm", "Fall armyworm"},
		NutrientPerTon: NPK{N: 22, P: 10, K: 18},
	},
	CropRice: {
		Crop:          CropRice,
		PH:            Range{5.0, 6.8},
		OrganicMatter: Range{2.5, 7.0},
		Nitrogen:      Range{20, 50},
		Phosphorus:    Range{8, 35},
		Potassium:     Range{90, 220},
		Temperature:   Range{22, 38},
		Rainfall:      Range{800, 2500},
		Humidity:      Range{65, 95},
		BaseYield:     5.8,
		YieldVariance: 2.5,

		OptimalPH:          5.8,
		OptimalNutrients:   NPK{N: 30, P: 20, K: 130},
		OptimalTemperature: 30,
		OptimalRainfall:    1500,
		OptimalHumidity:    80,

		GrowingSeason: Season{Start: "May", End: "October"},
		WaterNeeds:    WaterVeryHigh,
		FertilizerSchedule: map[GrowthStage][]string{
			StageSeedling:   {"Nitrogen-phosphorus", "Transplanting fertilizer"},
			StageVegetative: {"Split nitrogen application", "Potassium"},
			StageFlowering:  {"Panicle initiation fertilizer", "Micronutrients"},
			StageMaturity:   {"Final potassium", "Harvest preparation"},
		},
		CommonPests:    []string{"Rice blast", "Brown planthopper", "Stem borer"},
		NutrientPerTon: NPK{N: 20, P: 8, K: 15},
	},
	CropSoybeans: {
		Crop:          CropSoybeans,
		PH:            Range{5.8, 7.2},
		OrganicMatter: Range{2.0, 5.5},
		// Nitrogen range and targets are low: soybeans fix their own N.
		Nitrogen:      Range{10, 35},
		Phosphorus:    Range{12, 40},
		Potassium:     Range{90, 280},
		Temperature:   Range{16, 30},
		Rainfall:      Range{500, 1300},
		Humidity:      Range{50, 80},
		BaseYield:     3.2,
		YieldVariance: 1.5,

		OptimalPH:          6.8,
		OptimalNutrients:   NPK{N: 20, P: 25, K: 160},
		OptimalTemperature: 23,
		OptimalRainfall:    750,
		OptimalHumidity:    65,

		GrowingSeason: Season{Start: "May", End: "September"},
		WaterNeeds:    WaterMediumHigh,
		FertilizerSchedule: map[GrowthStage][]string{
			StageSeedling:   {"Starter phosphorus", "Inoculant"},
			StageVegetative: {"Light nitrogen", "Potassium"},
			StageFlowering:  {"Calcium", "Boron supplement"},
			StageMaturity:   {"Final potassium", "Harvest timing"},
		},
		CommonPests:    []string{"Soybean aphid", "Bean leaf beetle", "White mold"},
		NutrientPerTon: NPK{N: 5, P: 8, K: 12},
	},
}

// ProfileFor returns the static profile for a crop type.
func ProfileFor(crop CropType) (Profile, error) {
	p, ok := profiles[crop]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnsupportedCrop, crop)
	}
	return p, nil
}
