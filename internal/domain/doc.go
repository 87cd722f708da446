// Package domain models the agronomic reference data shared by the yield
// prediction, soil analysis, and recommendation components.
//
// # Supported Crops
//
// Four crop types are supported: Wheat, Corn, Rice, and Soybeans. Each has a
// static [Profile] holding the parameter ranges used for synthetic training
// data, the optimal values the yield formula is anchored on, and the
// knowledge tables (growth stages, fertilizer schedule, common pests, water
// needs) that drive the recommendation engine. Profiles are immutable after
// process start and are looked up by [ParseCropType] / [ProfileFor].
//
// Unknown crop types are a hard error ([ErrUnsupportedCrop]) in every
// component. There is deliberately no silent default crop.
//
// # Feature Vector
//
// A prediction input is an ordered set of 8 scalars:
//
//	ph_level        soil pH                  (unitless, ~4.0–9.0)
//	organic_matter  soil organic matter      (%, ~0.5–10.0)
//	nitrogen        plant-available N        (ppm)
//	phosphorus      plant-available P        (ppm)
//	potassium       plant-available K        (ppm)
//	temperature     season mean temperature  (°C)
//	rainfall        annual rainfall          (mm)
//	humidity        relative humidity        (%)
//
// All 8 must be present and finite before prediction. When live weather is
// unavailable the documented fallback constants apply: 22.0 °C, 800 mm,
// 65 % humidity.
//
// # Weather Supplier
//
// Live weather is an external collaborator behind the [WeatherProvider]
// interface. Supplier failure is not an error for callers: [ResolveWeather]
// substitutes the fallback constants and reports the degradation so the
// caller can surface a warning (graceful degradation, same policy as any
// other enrichment in this codebase).
package domain
