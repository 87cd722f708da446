package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// prediction service.
type Metrics struct {
	PredictionsTotal   *prometheus.CounterVec // labels: crop, risk_level
	PredictionErrors   prometheus.Counter
	PredictionDuration prometheus.Histogram
	ModelReady         prometheus.Gauge
	TrainingDuration   *prometheus.HistogramVec // label: crop

	SoilAnalysesTotal    prometheus.Counter
	RecommendationsTotal prometheus.Counter

	// Weather supplier metrics.
	WeatherRequests *prometheus.CounterVec // labels: outcome={success,error,fallback}
	WeatherCache    *prometheus.CounterVec // labels: result={hit,miss}

	// Prediction event publishing metrics.
	EventsPublished prometheus.Counter
	PublishErrors   prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.PredictionsTotal,
		m.PredictionErrors,
		m.PredictionDuration,
		m.ModelReady,
		m.TrainingDuration,
		m.SoilAnalysesTotal,
		m.RecommendationsTotal,
		m.WeatherRequests,
		m.WeatherCache,
		m.EventsPublished,
		m.PublishErrors,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering the collectors,
// avoiding "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		PredictionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crop_yield",
			Name:      "predictions_total",
			Help:      "Yield predictions served, by crop and risk level.",
		}, []string{"crop", "risk_level"}),
		PredictionErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crop_yield",
			Name:      "prediction_errors_total",
			Help:      "Prediction requests rejected with a typed error.",
		}),
		PredictionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "crop_yield",
			Name:      "prediction_duration_seconds",
			Help:      "Duration of a single prediction call.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		ModelReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "crop_yield",
			Name:      "model_ready",
			Help:      "1 once every crop model has been trained.",
		}),
		TrainingDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "crop_yield",
			Name:      "training_duration_seconds",
			Help:      "Duration of a per-crop model training run.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"crop"}),
		SoilAnalysesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crop_yield",
			Name:      "soil_analyses_total",
			Help:      "Soil health and suitability analyses served.",
		}),
		RecommendationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crop_yield",
			Name:      "recommendations_total",
			Help:      "Recommendation sets served.",
		}),
		WeatherRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crop_yield",
			Name:      "weather_requests_total",
			Help:      "Weather supplier requests by outcome.",
		}, []string{"outcome"}),
		WeatherCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crop_yield",
			Name:      "weather_cache_total",
			Help:      "Weather cache lookups by result.",
		}, []string{"result"}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crop_yield",
			Name:      "prediction_events_published_total",
			Help:      "Prediction events written to the sink topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crop_yield",
			Name:      "prediction_event_publish_errors_total",
			Help:      "Failed prediction event publishes.",
		}),
	}
}
