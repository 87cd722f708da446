package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/hptimes-code/ai-crop-yield-prediction/internal/adapter/http"
	kafkaadapter "github.com/hptimes-code/ai-crop-yield-prediction/internal/adapter/kafka"
	"github.com/hptimes-code/ai-crop-yield-prediction/internal/adapter/openweather"
	"github.com/hptimes-code/ai-crop-yield-prediction/internal/config"
	"github.com/hptimes-code/ai-crop-yield-prediction/internal/domain"
	"github.com/hptimes-code/ai-crop-yield-prediction/internal/model"
	"github.com/hptimes-code/ai-crop-yield-prediction/internal/observability"
	"github.com/hptimes-code/ai-crop-yield-prediction/internal/predict"
	"github.com/hptimes-code/ai-crop-yield-prediction/internal/synthdata"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	// Initialize weather supplier (feature-flagged via OPENWEATHER_ENABLED /
	// OPENWEATHER_API_KEY). Nil provider means documented fallbacks.
	var weather domain.WeatherProvider
	if cfg.OpenWeatherEnabled {
		client := openweather.NewClient(cfg.OpenWeatherKey, cfg.OpenWeatherTimeout, logger)
		weather = openweather.NewCachedProvider(client, cfg.WeatherCacheSize, cfg.WeatherCacheTTL, metrics)
		logger.Info("openweather supplier enabled",
			"cache_size", cfg.WeatherCacheSize, "cache_ttl", cfg.WeatherCacheTTL, "timeout", cfg.OpenWeatherTimeout)
	} else {
		logger.Info("openweather supplier disabled, using fallback climate values")
	}

	// Optional prediction event publishing.
	var sink predict.EventSink
	var publisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		publisher = kafkaadapter.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		sink = publisher
		logger.Info("prediction event publishing enabled", "topic", cfg.KafkaTopic)
	}

	store := model.NewStore()

	// Fit one model per crop before serving. Readiness stays false until
	// every crop is trained.
	gen := synthdata.NewGenerator(cfg.TrainSeed)
	forestCfg := model.DefaultForestConfig()
	forestCfg.Seed = cfg.TrainSeed
	if err := model.TrainAll(gen, cfg.TrainSamples, forestCfg, store, logger, metrics); err != nil {
		logger.Error("model training failed", "error", err)
		os.Exit(1)
	}

	predictor := predict.New(store, predict.NewUniformNoise(), sink, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, predictor, weather, store, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
