package model

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/hptimes-code/ai-crop-yield-prediction/internal/domain"
	"github.com/hptimes-code/ai-crop-yield-prediction/internal/observability"
	"github.com/hptimes-code/ai-crop-yield-prediction/internal/synthdata"
)

// TrainedModel is the fitted state for one crop: the scaler and forest,
// plus holdout metrics captured at fit time. Immutable after training;
// replaced wholesale on retrain.
type TrainedModel struct {
	Crop      domain.CropType
	Scaler    Scaler
	Forest    *Forest
	MAE       float64
	R2        float64
	Samples   int
	TrainedAt time.Time
}

// Train fits a scaler and forest for one crop from labeled samples.
// The table is shuffled deterministically from cfg.Seed and split 80/20;
// the scaler is fitted on the training split only and holdout MAE/R² are
// computed on the remaining 20%.
func Train(crop domain.CropType, samples []synthdata.Sample, cfg ForestConfig) (*TrainedModel, error) {
	if len(samples) < 10 {
		return nil, fmt.Errorf("train %s: need at least 10 samples, got %d", crop, len(samples))
	}

	x := make([][]float64, len(samples))
	y := make([]float64, len(samples))
	for i, s := range samples {
		x[i] = s.Features.Values()
		y[i] = s.YieldTonsPerHa
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	perm := rng.Perm(len(x))
	cut := len(x) - len(x)/5

	trainX := make([][]float64, 0, cut)
	trainY := make([]float64, 0, cut)
	testX := make([][]float64, 0, len(x)-cut)
	testY := make([]float64, 0, len(x)-cut)
	for i, p := range perm {
		if i < cut {
			trainX = append(trainX, x[p])
			trainY = append(trainY, y[p])
		} else {
			testX = append(testX, x[p])
			testY = append(testY, y[p])
		}
	}

	scaler, err := FitScaler(trainX)
	if err != nil {
		return nil, fmt.Errorf("train %s: %w", crop, err)
	}

	forest, err := TrainForest(scaler.TransformAll(trainX), trainY, cfg)
	if err != nil {
		return nil, fmt.Errorf("train %s: %w", crop, err)
	}

	mae, r2 := evaluate(forest, scaler, testX, testY)

	return &TrainedModel{
		Crop:      crop,
		Scaler:    scaler,
		Forest:    forest,
		MAE:       mae,
		R2:        r2,
		Samples:   len(samples),
		TrainedAt: domain.Now(),
	}, nil
}

// evaluate computes holdout MAE and R².
func evaluate(f *Forest, s Scaler, testX [][]float64, testY []float64) (mae, r2 float64) {
	if len(testX) == 0 {
		return 0, 0
	}

	var absSum, mean float64
	preds := make([]float64, len(testX))
	for i, row := range testX {
		preds[i] = f.Predict(s.Transform(row))
		absSum += math.Abs(preds[i] - testY[i])
		mean += testY[i]
	}
	mae = absSum / float64(len(testX))
	mean /= float64(len(testY))

	var ssRes, ssTot float64
	for i := range testY {
		ssRes += (testY[i] - preds[i]) * (testY[i] - preds[i])
		ssTot += (testY[i] - mean) * (testY[i] - mean)
	}
	if ssTot > 0 {
		r2 = 1 - ssRes/ssTot
	}
	return mae, r2
}

// TrainAll generates the full synthetic table and fits every crop's model,
// fanning out one goroutine per crop (the per-crop pipelines share no
// mutable state) and joining before returning. The store is only updated
// for crops that trained successfully.
func TrainAll(gen *synthdata.Generator, perCrop int, cfg ForestConfig, store *Store, logger *slog.Logger, metrics *observability.Metrics) error {
	samples, err := gen.GenerateAll(perCrop)
	if err != nil {
		return fmt.Errorf("generate training data: %w", err)
	}

	byCrop := make(map[domain.CropType][]synthdata.Sample)
	for _, s := range samples {
		byCrop[s.Crop] = append(byCrop[s.Crop], s)
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for _, crop := range domain.CropTypes() {
		wg.Add(1)
		go func(crop domain.CropType) {
			defer wg.Done()

			start := time.Now()
			m, err := Train(crop, byCrop[crop], cfg)
			if err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
				return
			}
			metrics.TrainingDuration.WithLabelValues(string(crop)).Observe(time.Since(start).Seconds())
			logger.Info("crop model trained",
				"crop", crop,
				"samples", m.Samples,
				"mae", m.MAE,
				"r2", m.R2,
				"duration", time.Since(start),
			)
			store.Put(crop, m)
		}(crop)
	}
	wg.Wait()

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	metrics.ModelReady.Set(1)
	return nil
}
