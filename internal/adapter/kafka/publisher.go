// Package kafka publishes prediction events to a Kafka topic for
// downstream consumers. Publishing is optional and best effort; the
// predictor treats sink failures as warnings.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/hptimes-code/ai-crop-yield-prediction/internal/predict"
)

// Publisher produces prediction events to a Kafka topic.
// It implements predict.EventSink.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the prediction events topic.
func NewPublisher(brokers []string, topic string, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// Publish serializes one prediction and writes it keyed by crop so a
// partition sees a single crop's events in order.
func (p *Publisher) Publish(ctx context.Context, pred predict.Prediction) error {
	msg, err := serializeToMessage(pred)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a prediction into a Kafka message.
func serializeToMessage(pred predict.Prediction) (kafkago.Message, error) {
	data, err := json.Marshal(pred)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize prediction: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(pred.Crop),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "risk_level", Value: []byte(pred.RiskLevel)},
			{Key: "predicted_at", Value: []byte(pred.PredictedAt.Format(time.RFC3339))},
		},
	}, nil
}
