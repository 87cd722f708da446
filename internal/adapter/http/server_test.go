package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hptimes-code/ai-crop-yield-prediction/internal/domain"
	"github.com/hptimes-code/ai-crop-yield-prediction/internal/model"
	"github.com/hptimes-code/ai-crop-yield-prediction/internal/observability"
	"github.com/hptimes-code/ai-crop-yield-prediction/internal/predict"
	"github.com/hptimes-code/ai-crop-yield-prediction/internal/synthdata"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubWeather struct {
	weather domain.Weather
	err     error
}

func (s *stubWeather) Current(context.Context, string) (domain.Weather, error) {
	return s.weather, s.err
}

// newTestServer builds a server backed by real models for the given crops.
func newTestServer(t *testing.T, weather domain.WeatherProvider, crops ...domain.CropType) *Server {
	t.Helper()
	store := model.NewStore()
	gen := synthdata.NewGenerator(synthdata.DefaultSeed)
	for _, crop := range crops {
		samples, err := gen.Generate(crop, 120)
		require.NoError(t, err)
		m, err := model.Train(crop, samples, model.DefaultForestConfig())
		require.NoError(t, err)
		store.Put(crop, m)
	}

	metrics := observability.NewMetricsForTesting()
	predictor := predict.New(store, predict.FixedNoise(0), nil, discardLogger(), metrics)
	return NewServer(":0", predictor, weather, store, discardLogger(), metrics)
}

func doJSON(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestHealthEndpoints(t *testing.T) {
	t.Run("healthz", func(t *testing.T) {
		s := newTestServer(t, nil, domain.CropWheat)
		rec := doJSON(t, s, http.MethodGet, "/healthz", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
	})

	t.Run("readyz reflects model store state", func(t *testing.T) {
		notReady := newTestServer(t, nil, domain.CropWheat) // three crops missing
		rec := doJSON(t, notReady, http.MethodGet, "/readyz", "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		ready := newTestServer(t, nil, domain.CropTypes()...)
		rec = doJSON(t, ready, http.MethodGet, "/readyz", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ready"}`, rec.Body.String())
	})

	t.Run("metrics endpoint is wired", func(t *testing.T) {
		s := newTestServer(t, nil, domain.CropWheat)
		rec := doJSON(t, s, http.MethodGet, "/metrics", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestPredictionsEndpoint(t *testing.T) {
	body := `{
		"crop_type": "wheat",
		"farm_area_ha": 2,
		"ph_level": 6.5,
		"organic_matter": 3.5,
		"nitrogen": 35,
		"phosphorus": 25,
		"potassium": 180,
		"temperature": 22,
		"rainfall": 900,
		"humidity": 65
	}`

	t.Run("happy path", func(t *testing.T) {
		s := newTestServer(t, nil, domain.CropWheat)
		rec := doJSON(t, s, http.MethodPost, "/v1/predictions", body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp struct {
			predict.Prediction
			WeatherLive bool `json:"weather_live"`
		}
		decodeBody(t, rec, &resp)
		assert.Equal(t, domain.CropWheat, resp.Crop)
		assert.Greater(t, resp.YieldPerHa, 0.0)
		assert.InDelta(t, resp.YieldPerHa*2, resp.TotalYield, 1e-9)
		assert.False(t, resp.WeatherLive)
	})

	t.Run("live weather fills missing climate fields", func(t *testing.T) {
		weather := &stubWeather{weather: domain.Weather{
			Location:       "Ames",
			Temperature:    24,
			Humidity:       60,
			RainfallAnnual: 850,
		}}
		s := newTestServer(t, weather, domain.CropWheat)

		partial := `{
			"crop_type": "wheat",
			"location": "Ames",
			"ph_level": 6.5,
			"organic_matter": 3.5,
			"nitrogen": 35,
			"phosphorus": 25,
			"potassium": 180
		}`
		rec := doJSON(t, s, http.MethodPost, "/v1/predictions", partial)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp struct {
			WeatherLive   bool               `json:"weather_live"`
			WeatherImpact *domain.CropImpact `json:"weather_impact"`
		}
		decodeBody(t, rec, &resp)
		assert.True(t, resp.WeatherLive)
		require.NotNil(t, resp.WeatherImpact)
		assert.Equal(t, domain.CropWheat, resp.WeatherImpact.Crop)
	})

	t.Run("weather provider failure falls back silently", func(t *testing.T) {
		weather := &stubWeather{err: errors.New("api down")}
		s := newTestServer(t, weather, domain.CropWheat)

		partial := `{"crop_type": "wheat", "location": "Ames", "ph_level": 6.5,
			"organic_matter": 3.5, "nitrogen": 35, "phosphorus": 25, "potassium": 180}`
		rec := doJSON(t, s, http.MethodPost, "/v1/predictions", partial)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			WeatherLive bool `json:"weather_live"`
		}
		decodeBody(t, rec, &resp)
		assert.False(t, resp.WeatherLive)
	})

	t.Run("malformed body", func(t *testing.T) {
		s := newTestServer(t, nil, domain.CropWheat)
		rec := doJSON(t, s, http.MethodPost, "/v1/predictions", "{not json")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown crop", func(t *testing.T) {
		s := newTestServer(t, nil, domain.CropWheat)
		rec := doJSON(t, s, http.MethodPost, "/v1/predictions",
			strings.Replace(body, "wheat", "barley", 1))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("untrained crop is service unavailable", func(t *testing.T) {
		s := newTestServer(t, nil, domain.CropWheat)
		rec := doJSON(t, s, http.MethodPost, "/v1/predictions",
			strings.Replace(body, "wheat", "rice", 1))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestSoilEndpoints(t *testing.T) {
	s := newTestServer(t, nil, domain.CropWheat)

	t.Run("analysis", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/v1/soil/analysis",
			`{"ph": 6.5, "nitrogen": 35, "phosphorus": 25, "potassium": 180}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			OverallScore int    `json:"overall_score"`
			Rating       string `json:"rating"`
		}
		decodeBody(t, rec, &resp)
		assert.Equal(t, 100, resp.OverallScore)
		assert.Equal(t, "Excellent", resp.Rating)
	})

	t.Run("suitability", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/v1/soil/suitability",
			`{"crop_type": "rice", "soil": {"ph": 6.0, "nitrogen": 30, "phosphorus": 20, "potassium": 150}}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Crop         string `json:"crop"`
			OverallScore int    `json:"overall_suitability"`
		}
		decodeBody(t, rec, &resp)
		assert.Equal(t, "Rice", resp.Crop)
		assert.Equal(t, 100, resp.OverallScore)
	})

	t.Run("fertilizer plan", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/v1/soil/fertilizer-plan",
			`{"crop_type": "wheat", "target_yield": 5, "soil": {"nitrogen": 35, "phosphorus": 25, "potassium": 180}}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			TargetYield float64 `json:"target_yield"`
			Schedule    map[string]struct {
				Timing string `json:"timing"`
			} `json:"application_schedule"`
		}
		decodeBody(t, rec, &resp)
		assert.Equal(t, 5.0, resp.TargetYield)
		assert.Len(t, resp.Schedule, 4)
	})

	t.Run("fertilizer plan rejects zero target", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/v1/soil/fertilizer-plan",
			`{"crop_type": "wheat", "target_yield": 0}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("suitability unknown crop", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/v1/soil/suitability",
			`{"crop_type": "barley"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRecommendationsEndpoint(t *testing.T) {
	s := newTestServer(t, nil, domain.CropWheat)

	t.Run("plan with weekly schedule", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/v1/recommendations",
			`{"crop_type": "rice", "growth_stage": "maturity", "date": "2025-07-15", "include_weekly_schedule": true}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp struct {
			Crop       string `json:"crop"`
			Harvesting struct {
				Priority string `json:"priority"`
			} `json:"harvesting"`
			WeeklySchedule map[string][]string `json:"weekly_schedule"`
		}
		decodeBody(t, rec, &resp)
		assert.Equal(t, "Rice", resp.Crop)
		assert.Equal(t, "High", resp.Harvesting.Priority)
		require.Len(t, resp.WeeklySchedule, 7)
		assert.NotEmpty(t, resp.WeeklySchedule["Monday"])
	})

	t.Run("schedule omitted unless requested", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/v1/recommendations",
			`{"crop_type": "wheat", "growth_stage": "seedling"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "weekly_schedule")
	})

	t.Run("invalid date", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/v1/recommendations",
			`{"crop_type": "wheat", "growth_stage": "seedling", "date": "July 15"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid stage", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/v1/recommendations",
			`{"crop_type": "wheat", "growth_stage": "sprouting"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestWeatherEndpoint(t *testing.T) {
	t.Run("live provider", func(t *testing.T) {
		weather := &stubWeather{weather: domain.Weather{
			Location:       "Ames",
			Temperature:    24,
			Humidity:       60,
			RainfallAnnual: 850,
		}}
		s := newTestServer(t, weather, domain.CropWheat)

		rec := doJSON(t, s, http.MethodGet, "/v1/weather?location=Ames", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Live    bool                `json:"live"`
			Weather domain.Weather      `json:"weather"`
			Impacts []domain.CropImpact `json:"impacts"`
		}
		decodeBody(t, rec, &resp)
		assert.True(t, resp.Live)
		assert.Equal(t, "Ames", resp.Weather.Location)
		assert.Len(t, resp.Impacts, 4)
	})

	t.Run("fallback on provider failure", func(t *testing.T) {
		s := newTestServer(t, &stubWeather{err: errors.New("api down")}, domain.CropWheat)

		rec := doJSON(t, s, http.MethodGet, "/v1/weather?location=Ames", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Live    bool           `json:"live"`
			Weather domain.Weather `json:"weather"`
		}
		decodeBody(t, rec, &resp)
		assert.False(t, resp.Live)
		assert.Equal(t, domain.FallbackTemperature, resp.Weather.Temperature)
	})

	t.Run("missing location", func(t *testing.T) {
		s := newTestServer(t, nil, domain.CropWheat)
		rec := doJSON(t, s, http.MethodGet, "/v1/weather", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
