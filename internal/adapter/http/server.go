// Package http exposes the prediction, soil, and recommendation APIs plus
// the operational health, readiness, and metrics endpoints.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hptimes-code/ai-crop-yield-prediction/internal/agronomy"
	"github.com/hptimes-code/ai-crop-yield-prediction/internal/domain"
	"github.com/hptimes-code/ai-crop-yield-prediction/internal/observability"
	"github.com/hptimes-code/ai-crop-yield-prediction/internal/predict"
	"github.com/hptimes-code/ai-crop-yield-prediction/internal/soil"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the JSON API and operational endpoints.
type Server struct {
	httpServer *http.Server
	predictor  *predict.Predictor
	weather    domain.WeatherProvider
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer wires all routes. A nil weather provider means climate
// features fall back to the documented defaults.
func NewServer(addr string, predictor *predict.Predictor, weather domain.WeatherProvider, ready ReadinessChecker, logger *slog.Logger, metrics *observability.Metrics) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		predictor: predictor,
		weather:   weather,
		logger:    logger,
		metrics:   metrics,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /v1/predictions", s.handlePredict)
	mux.HandleFunc("POST /v1/soil/analysis", s.handleSoilAnalysis)
	mux.HandleFunc("POST /v1/soil/suitability", s.handleSuitability)
	mux.HandleFunc("POST /v1/soil/fertilizer-plan", s.handleFertilizerPlan)
	mux.HandleFunc("POST /v1/recommendations", s.handleRecommendations)
	mux.HandleFunc("GET /v1/weather", s.handleWeather)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// predictionRequest carries pointer climate fields so absent values can be
// filled from live weather (or the fallback constants) rather than read as
// zero.
type predictionRequest struct {
	Crop          string   `json:"crop_type"`
	FarmAreaHa    float64  `json:"farm_area_ha"`
	Location      string   `json:"location,omitempty"`
	PH            float64  `json:"ph_level"`
	OrganicMatter float64  `json:"organic_matter"`
	Nitrogen      float64  `json:"nitrogen"`
	Phosphorus    float64  `json:"phosphorus"`
	Potassium     float64  `json:"potassium"`
	Temperature   *float64 `json:"temperature,omitempty"`
	Rainfall      *float64 `json:"rainfall,omitempty"`
	Humidity      *float64 `json:"humidity,omitempty"`
}

type predictionResponse struct {
	predict.Prediction
	WeatherLive   bool                `json:"weather_live"`
	WeatherImpact *domain.CropImpact  `json:"weather_impact,omitempty"`
	Alerts        []domain.WeatherAlert `json:"weather_alerts,omitempty"`
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req predictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	crop, err := domain.ParseCropType(req.Crop)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	features := domain.FeatureVector{
		PH:            req.PH,
		OrganicMatter: req.OrganicMatter,
		Nitrogen:      req.Nitrogen,
		Phosphorus:    req.Phosphorus,
		Potassium:     req.Potassium,
		Temperature:   domain.FallbackTemperature,
		Rainfall:      domain.FallbackRainfall,
		Humidity:      domain.FallbackHumidity,
	}

	resp := predictionResponse{}

	// Climate fields come from the request when present, from the weather
	// supplier when a location is given, otherwise from the fallbacks.
	needsWeather := req.Location != "" && (req.Temperature == nil || req.Rainfall == nil || req.Humidity == nil)
	if needsWeather {
		weather, live := domain.ResolveWeather(r.Context(), s.weather, req.Location, s.logger)
		s.recordWeatherOutcome(live)
		resp.WeatherLive = live
		if live {
			features.Temperature = weather.Temperature
			features.Rainfall = weather.RainfallAnnual
			features.Humidity = weather.Humidity
			for _, impact := range domain.AssessImpact(weather) {
				if impact.Crop == crop {
					impact := impact
					resp.WeatherImpact = &impact
					break
				}
			}
			resp.Alerts = domain.DeriveAlerts(weather)
		}
	}
	if req.Temperature != nil {
		features.Temperature = *req.Temperature
	}
	if req.Rainfall != nil {
		features.Rainfall = *req.Rainfall
	}
	if req.Humidity != nil {
		features.Humidity = *req.Humidity
	}

	result, err := s.predictor.Predict(r.Context(), crop, features, req.FarmAreaHa)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	resp.Prediction = result
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSoilAnalysis(w http.ResponseWriter, r *http.Request) {
	var test soil.Test
	if err := json.NewDecoder(r.Body).Decode(&test); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.metrics.SoilAnalysesTotal.Inc()
	writeJSON(w, http.StatusOK, soil.Analyze(test))
}

type suitabilityRequest struct {
	Crop string    `json:"crop_type"`
	Soil soil.Test `json:"soil"`
}

func (s *Server) handleSuitability(w http.ResponseWriter, r *http.Request) {
	var req suitabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	crop, err := domain.ParseCropType(req.Crop)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := soil.Suitability(req.Soil, crop)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.metrics.SoilAnalysesTotal.Inc()
	writeJSON(w, http.StatusOK, result)
}

type fertilizerRequest struct {
	Crop        string    `json:"crop_type"`
	Soil        soil.Test `json:"soil"`
	TargetYield float64   `json:"target_yield"`
}

func (s *Server) handleFertilizerPlan(w http.ResponseWriter, r *http.Request) {
	var req fertilizerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	crop, err := domain.ParseCropType(req.Crop)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	plan, err := soil.FertilizerPlan(req.Soil, crop, req.TargetYield)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

type recommendationRequest struct {
	Crop           string `json:"crop_type"`
	Stage          string `json:"growth_stage"`
	Region         string `json:"region,omitempty"`
	Date           string `json:"date,omitempty"` // RFC 3339 date; defaults to today
	WeeklySchedule bool   `json:"include_weekly_schedule,omitempty"`
}

type recommendationResponse struct {
	agronomy.Plan
	WeeklySchedule map[string][]string `json:"weekly_schedule,omitempty"`
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var req recommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	crop, err := domain.ParseCropType(req.Crop)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	stage, err := domain.ParseGrowthStage(req.Stage)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	date := domain.Now()
	if req.Date != "" {
		date, err = time.Parse("2006-01-02", req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
			return
		}
	}

	plan, err := agronomy.Recommend(crop, stage, date, req.Region)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	resp := recommendationResponse{Plan: plan}
	if req.WeeklySchedule {
		schedule, err := agronomy.WeeklySchedule(crop, stage)
		if err != nil {
			s.writeDomainError(w, err)
			return
		}
		resp.WeeklySchedule = make(map[string][]string, len(schedule))
		for day, tasks := range schedule {
			resp.WeeklySchedule[day.String()] = tasks
		}
	}

	s.metrics.RecommendationsTotal.Inc()
	writeJSON(w, http.StatusOK, resp)
}

type weatherResponse struct {
	Weather domain.Weather        `json:"weather"`
	Live    bool                  `json:"live"`
	Impacts []domain.CropImpact   `json:"impacts"`
	Alerts  []domain.WeatherAlert `json:"alerts"`
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	if location == "" {
		writeError(w, http.StatusBadRequest, "location query parameter is required")
		return
	}

	weather, live := domain.ResolveWeather(r.Context(), s.weather, location, s.logger)
	s.recordWeatherOutcome(live)

	writeJSON(w, http.StatusOK, weatherResponse{
		Weather: weather,
		Live:    live,
		Impacts: domain.AssessImpact(weather),
		Alerts:  domain.DeriveAlerts(weather),
	})
}

func (s *Server) recordWeatherOutcome(live bool) {
	if live {
		s.metrics.WeatherRequests.WithLabelValues("success").Inc()
	} else {
		s.metrics.WeatherRequests.WithLabelValues("fallback").Inc()
	}
}

// writeDomainError maps domain sentinels to HTTP status codes.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnsupportedCrop), errors.Is(err, domain.ErrInvalidFeature):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrModelNotReady):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		s.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort health response
}
