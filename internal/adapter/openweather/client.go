// Package openweather implements domain.WeatherProvider against the
// OpenWeather current-conditions API.
package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/hptimes-code/ai-crop-yield-prediction/internal/domain"
)

// Client implements domain.WeatherProvider using the OpenWeather API.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates an OpenWeather current-conditions client.
func NewClient(apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://api.openweathermap.org/data/2.5",
		logger:  logger,
	}
}

// Current fetches current conditions for a city name or "city,country" query.
func (c *Client) Current(ctx context.Context, location string) (domain.Weather, error) {
	params := url.Values{
		"q":     {location},
		"appid": {c.apiKey},
		"units": {"metric"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/weather?"+params.Encode(), nil)
	if err != nil {
		return domain.Weather{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Weather{}, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return domain.Weather{}, fmt.Errorf("openweather API error: status %d: %s", resp.StatusCode, body)
	}

	var owResp response
	if err := json.NewDecoder(resp.Body).Decode(&owResp); err != nil {
		return domain.Weather{}, fmt.Errorf("decode response: %w", err)
	}

	w := domain.Weather{
		Location:       owResp.Name,
		Country:        owResp.Sys.Country,
		Temperature:    owResp.Main.Temp,
		FeelsLike:      owResp.Main.FeelsLike,
		Humidity:       owResp.Main.Humidity,
		Pressure:       owResp.Main.Pressure,
		WindSpeed:      owResp.Wind.Speed,
		RainfallAnnual: estimateAnnualRainfall(owResp.Rain.OneHour),
		ObservedAt:     domain.Now(),
	}
	if len(owResp.Weather) > 0 {
		w.Description = owResp.Weather[0].Description
	}
	return w, nil
}

// estimateAnnualRainfall extrapolates an annual total from the observed
// hourly rate, bounded to agronomically plausible values. The API only
// reports instantaneous precipitation; callers treat this as a coarse
// estimate, not a measurement.
func estimateAnnualRainfall(hourlyMM float64) float64 {
	if hourlyMM <= 0 {
		return 800 // continental average when no rain is falling
	}
	// Assume roughly 500 rain-hours per year at the observed intensity.
	est := hourlyMM * 500
	if est < 200 {
		est = 200
	}
	if est > 3000 {
		est = 3000
	}
	return est
}

// OpenWeather API response types.

type response struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  float64 `json:"humidity"`
		Pressure  float64 `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Rain struct {
		OneHour float64 `json:"1h"`
	} `json:"rain"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}
