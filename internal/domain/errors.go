package domain

import "errors"

// Sentinel errors for the component contracts. Callers match with errors.Is;
// sites that raise them wrap with context (crop type, field name).
var (
	// ErrUnsupportedCrop indicates a crop type outside the recognized set.
	ErrUnsupportedCrop = errors.New("unsupported crop type")

	// ErrInvalidFeature indicates a feature value that is missing, NaN, or
	// outside the representable numeric range.
	ErrInvalidFeature = errors.New("invalid feature value")

	// ErrModelNotReady indicates a predict call before training completed.
	ErrModelNotReady = errors.New("model not trained yet")

	// ErrWeatherUnavailable indicates the external weather supplier failed
	// or timed out. Recovered locally by substituting fallback values.
	ErrWeatherUnavailable = errors.New("weather data unavailable")
)
