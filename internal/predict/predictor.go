// Package predict serves yield predictions from the fitted per-crop
// models, along with a confidence heuristic, a rule-based risk assessment,
// and the model's feature-importance ranking.
package predict

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/hptimes-code/ai-crop-yield-prediction/internal/domain"
	"github.com/hptimes-code/ai-crop-yield-prediction/internal/model"
	"github.com/hptimes-code/ai-crop-yield-prediction/internal/observability"
	"github.com/hptimes-code/ai-crop-yield-prediction/internal/synthdata"
)

// FactorWeight is one entry of the feature-importance ranking.
type FactorWeight struct {
	Factor string  `json:"factor"`
	Weight float64 `json:"weight"`
}

// Prediction is the complete result of one predict call. Constructed fresh
// per call, never retained.
type Prediction struct {
	Crop              domain.CropType      `json:"crop_type"`
	Features          domain.FeatureVector `json:"features"`
	FarmAreaHa        float64              `json:"farm_area_ha"`
	YieldPerHa        float64              `json:"yield_per_ha"`
	TotalYield        float64              `json:"total_yield"`
	Confidence        float64              `json:"confidence"`
	RiskLevel         RiskLevel            `json:"risk_level"`
	RiskFactors       string               `json:"risk_factors"`
	FeatureImportance []FactorWeight       `json:"feature_importance"`
	PredictedAt       time.Time            `json:"predicted_at"`
}

// EventSink receives successful predictions for downstream consumers.
type EventSink interface {
	Publish(ctx context.Context, p Prediction) error
}

// Predictor runs the stored scaler+forest pair for a crop and derives the
// confidence, risk, and importance fields.
type Predictor struct {
	store   *model.Store
	noise   Noise
	sink    EventSink
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Predictor. Pass a nil sink to disable event publishing.
func New(store *model.Store, noise Noise, sink EventSink, logger *slog.Logger, metrics *observability.Metrics) *Predictor {
	return &Predictor{
		store:   store,
		noise:   noise,
		sink:    sink,
		logger:  logger,
		metrics: metrics,
	}
}

// Predict scales the feature vector with the crop's fitted scaler, runs the
// forest, and assembles the full prediction record. farmArea scales the
// per-hectare yield to a farm total; values <= 0 default to one hectare.
func (p *Predictor) Predict(ctx context.Context, crop domain.CropType, features domain.FeatureVector, farmArea float64) (Prediction, error) {
	start := time.Now()

	if err := features.Validate(); err != nil {
		p.metrics.PredictionErrors.Inc()
		return Prediction{}, err
	}

	m, err := p.store.Get(crop)
	if err != nil {
		p.metrics.PredictionErrors.Inc()
		return Prediction{}, err
	}

	if farmArea <= 0 {
		farmArea = 1.0
	}

	yieldPerHa := math.Max(0, m.Forest.Predict(m.Scaler.Transform(features.Values())))

	riskLevel, riskFactors := AssessRisk(features)

	result := Prediction{
		Crop:              crop,
		Features:          features,
		FarmAreaHa:        farmArea,
		YieldPerHa:        yieldPerHa,
		TotalYield:        math.Max(0, yieldPerHa*farmArea),
		Confidence:        Confidence(features, p.noise),
		RiskLevel:         riskLevel,
		RiskFactors:       riskFactors,
		FeatureImportance: rankImportances(m.Forest.Importances()),
		PredictedAt:       domain.Now(),
	}

	p.metrics.PredictionsTotal.WithLabelValues(string(crop), string(riskLevel)).Inc()
	p.metrics.PredictionDuration.Observe(time.Since(start).Seconds())

	p.publish(ctx, result)

	return result, nil
}

// publish forwards the prediction to the sink, best effort. A sink failure
// never fails the prediction.
func (p *Predictor) publish(ctx context.Context, result Prediction) {
	if p.sink == nil {
		return
	}
	if err := p.sink.Publish(ctx, result); err != nil {
		p.metrics.PublishErrors.Inc()
		p.logger.Warn("prediction event publish failed",
			"crop", result.Crop,
			"error", err,
		)
		return
	}
	p.metrics.EventsPublished.Inc()
}

// rankImportances relabels the forest's per-feature importances with
// display names and sorts them descending.
func rankImportances(weights []float64) []FactorWeight {
	names := domain.FeatureDisplayNames()
	ranked := make([]FactorWeight, 0, len(weights))
	for i, w := range weights {
		ranked = append(ranked, FactorWeight{Factor: names[i], Weight: w})
	}
	sort.SliceStable(ranked, func(a, b int) bool { return ranked[a].Weight > ranked[b].Weight })
	return ranked
}

// Retrain regenerates one crop's training data and swaps in a freshly
// fitted model. The swap is wholesale: a concurrent Predict sees either
// the old or the new model, never a mix.
func (p *Predictor) Retrain(crop domain.CropType, samples int, seed uint64) error {
	if _, err := domain.ProfileFor(crop); err != nil {
		return err
	}
	if samples <= 0 {
		return fmt.Errorf("retrain %s: sample count must be positive, got %d", crop, samples)
	}

	gen := synthdata.NewGenerator(seed)
	table, err := gen.Generate(crop, samples)
	if err != nil {
		return err
	}

	m, err := model.Train(crop, table, model.DefaultForestConfig())
	if err != nil {
		return err
	}
	p.store.Put(crop, m)

	p.logger.Info("crop model retrained", "crop", crop, "samples", samples, "mae", m.MAE, "r2", m.R2)
	return nil
}
