package agronomy

import (
	"fmt"
	"time"

	"github.com/hptimes-code/ai-crop-yield-prediction/internal/domain"
)

// weekDays fixes output order Monday through Sunday.
var weekDays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// stageTasks are the recurring field tasks per growth stage, distributed
// round-robin across the week.
var stageTasks = map[domain.GrowthStage][]string{
	domain.StageSeedling: {
		"Check soil moisture and irrigate if needed",
		"Scout for emerging pests and diseases",
		"Monitor germination rates",
		"Check for weed emergence",
		"Record growth measurements",
	},
	domain.StageVegetative: {
		"Deep watering if needed",
		"Side-dress fertilizer application",
		"Comprehensive pest scouting",
		"Weed control activities",
		"Canopy management",
		"Soil cultivation if needed",
	},
	domain.StageFlowering: {
		"Monitor soil moisture daily",
		"Check for flower damage or disease",
		"Pollinator-friendly pest management",
		"Nutrient deficiency assessment",
		"Weather monitoring for harvest planning",
	},
	domain.StageMaturity: {
		"Daily maturity assessment",
		"Grain moisture testing",
		"Harvest equipment preparation",
		"Weather forecast monitoring",
		"Storage facility preparation",
		"Harvest scheduling",
	},
}

// WeeklySchedule distributes the stage's tasks across Monday-Sunday in
// round-robin order. Rice in its water-intensive early stages gets paddy
// checks on Monday and Friday. Returns ErrUnsupportedCrop for crops
// without a profile.
func WeeklySchedule(crop domain.CropType, stage domain.GrowthStage) (map[time.Weekday][]string, error) {
	if _, err := domain.ProfileFor(crop); err != nil {
		return nil, fmt.Errorf("weekly schedule: %w", err)
	}

	tasks, ok := stageTasks[stage]
	if !ok {
		tasks = stageTasks[domain.StageVegetative]
	}

	schedule := make(map[time.Weekday][]string, len(weekDays))
	for _, day := range weekDays {
		schedule[day] = []string{}
	}
	for i, task := range tasks {
		day := weekDays[i%len(weekDays)]
		schedule[day] = append(schedule[day], task)
	}

	if crop == domain.CropRice && (stage == domain.StageSeedling || stage == domain.StageVegetative) {
		schedule[time.Monday] = append(schedule[time.Monday], "Check water level in paddy fields")
		schedule[time.Friday] = append(schedule[time.Friday], "Monitor water quality and algae growth")
	}

	return schedule, nil
}
