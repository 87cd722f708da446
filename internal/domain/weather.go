package domain

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// Weather is a current-conditions record from the external supplier.
type Weather struct {
	Location       string    `json:"location"`
	Country        string    `json:"country,omitempty"`
	Temperature    float64   `json:"temperature"`  // °C
	FeelsLike      float64   `json:"feels_like"`   // °C
	Humidity       float64   `json:"humidity"`     // %
	Pressure       float64   `json:"pressure"`     // hPa
	WindSpeed      float64   `json:"wind_speed"`   // m/s
	RainfallAnnual float64   `json:"rainfall_annual"` // mm, estimated
	Description    string    `json:"description"`
	ObservedAt     time.Time `json:"observed_at"`
}

// WeatherProvider supplies current conditions for a location.
type WeatherProvider interface {
	Current(ctx context.Context, location string) (Weather, error)
}

// FallbackWeather returns the documented substitute record used when the
// live supplier is unavailable.
func FallbackWeather(location string) Weather {
	return Weather{
		Location:       location,
		Temperature:    FallbackTemperature,
		Humidity:       FallbackHumidity,
		RainfallAnnual: FallbackRainfall,
		Description:    "fallback conditions",
		ObservedAt:     clock.Now(),
	}
}

// ResolveWeather fetches current conditions, substituting the fallback
// record when the provider is nil or fails. The second return value is true
// when live data was obtained; false means the caller should surface a
// fallback warning. Supplier failure is never an error here.
func ResolveWeather(ctx context.Context, provider WeatherProvider, location string, logger *slog.Logger) (Weather, bool) {
	if provider == nil {
		return FallbackWeather(location), false
	}

	w, err := provider.Current(ctx, location)
	if err != nil {
		logger.Warn("weather fetch failed, using fallback values",
			"location", location,
			"error", err,
		)
		return FallbackWeather(location), false
	}
	return w, true
}

// ImpactLevel grades how current weather suits a crop.
type ImpactLevel string

const (
	ImpactFavorable   ImpactLevel = "Favorable"
	ImpactModerate    ImpactLevel = "Moderate"
	ImpactUnfavorable ImpactLevel = "Unfavorable"
)

// CropImpact is a per-crop weather impact assessment.
type CropImpact struct {
	Crop              CropType    `json:"crop"`
	Impact            ImpactLevel `json:"impact"`
	TemperatureImpact string      `json:"temperature_impact"` // Optimal, Suboptimal, Poor
	HumidityImpact    string      `json:"humidity_impact"`    // Good, Suboptimal
	Recommendation    string      `json:"recommendation"`
}

// Per-crop comfort bands for impact grading. Narrower than the generation
// ranges: these describe conditions for active growth, not survivable ones.
var impactConditions = map[CropType]struct{ temp, humidity Range }{
	CropWheat:    {temp: Range{15, 25}, humidity: Range{50, 70}},
	CropCorn:     {temp: Range{20, 30}, humidity: Range{60, 80}},
	CropRice:     {temp: Range{25, 35}, humidity: Range{70, 90}},
	CropSoybeans: {temp: Range{20, 28}, humidity: Range{55, 75}},
}

// AssessImpact grades current weather against every supported crop.
func AssessImpact(w Weather) []CropImpact {
	impacts := make([]CropImpact, 0, len(CropTypes()))
	for _, crop := range CropTypes() {
		impacts = append(impacts, assessCropImpact(crop, w))
	}
	return impacts
}

func assessCropImpact(crop CropType, w Weather) CropImpact {
	cond := impactConditions[crop]

	tempImpact := "Suboptimal"
	switch {
	case cond.temp.Contains(w.Temperature):
		tempImpact = "Optimal"
	case w.Temperature < cond.temp.Min-5 || w.Temperature > cond.temp.Max+5:
		tempImpact = "Poor"
	}

	humImpact := "Suboptimal"
	if cond.humidity.Contains(w.Humidity) {
		humImpact = "Good"
	}

	overall := ImpactModerate
	switch {
	case tempImpact == "Optimal" && humImpact == "Good":
		overall = ImpactFavorable
	case tempImpact == "Poor":
		overall = ImpactUnfavorable
	}

	return CropImpact{
		Crop:              crop,
		Impact:            overall,
		TemperatureImpact: tempImpact,
		HumidityImpact:    humImpact,
		Recommendation:    weatherGuidance(crop, w, overall),
	}
}

// weatherGuidance builds up to three scripted advisories for the conditions.
func weatherGuidance(crop CropType, w Weather, impact ImpactLevel) string {
	var out []string
	desc := strings.ToLower(w.Description)

	if strings.Contains(desc, "rain") {
		out = append(out, "Monitor for waterlogging and fungal diseases", "Ensure proper drainage in fields")
	}
	switch {
	case w.Temperature > 30:
		out = append(out, "Consider additional irrigation during hot weather", "Monitor plants for heat stress")
	case w.Temperature < 15:
		out = append(out, "Protect crops from potential frost damage", "Consider covering sensitive plants")
	}
	switch {
	case w.Humidity > 80:
		out = append(out, "Increase ventilation to prevent fungal growth", "Monitor for pest activity in high humidity")
	case w.Humidity < 50:
		out = append(out, "Consider supplemental irrigation", "Monitor soil moisture levels closely")
	}
	if impact == ImpactUnfavorable {
		out = append(out, "Consider postponing field activities for "+string(crop), "Implement protective measures immediately")
	}
	if len(out) == 0 {
		out = append(out, "Weather conditions are favorable for normal farming activities")
	}
	if len(out) > 3 {
		out = out[:3]
	}
	return strings.Join(out, " | ")
}

// WeatherAlert is a weather warning derived from current conditions.
type WeatherAlert struct {
	Type            string   `json:"type"`
	Severity        string   `json:"severity"`
	Message         string   `json:"message"`
	Recommendations []string `json:"recommendations"`
}

// DeriveAlerts produces heat, frost, and heavy-rain alerts from a weather
// record. Returns an empty slice when no thresholds are crossed.
func DeriveAlerts(w Weather) []WeatherAlert {
	var alerts []WeatherAlert

	switch {
	case w.Temperature > 35:
		alerts = append(alerts, WeatherAlert{
			Type:     "Heat Warning",
			Severity: "High",
			Message:  "Extreme heat conditions. Take precautions for crops and livestock.",
			Recommendations: []string{
				"Increase irrigation",
				"Provide shade for animals",
				"Avoid field work during peak hours",
			},
		})
	case w.Temperature < 5:
		alerts = append(alerts, WeatherAlert{
			Type:     "Frost Alert",
			Severity: "High",
			Message:  "Freezing temperatures expected. Protect sensitive crops.",
			Recommendations: []string{
				"Cover tender plants",
				"Use frost protection methods",
				"Harvest mature crops",
			},
		})
	}

	desc := strings.ToLower(w.Description)
	if strings.Contains(desc, "heavy rain") || strings.Contains(desc, "thunderstorm") {
		alerts = append(alerts, WeatherAlert{
			Type:     "Heavy Rain Warning",
			Severity: "Medium",
			Message:  "Heavy rainfall expected. Prepare for potential flooding.",
			Recommendations: []string{
				"Check drainage systems",
				"Secure loose equipment",
				"Monitor soil erosion",
			},
		})
	}

	return alerts
}
