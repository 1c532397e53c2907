package pubsub

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
)

// kafkaWatermillPublisher implements the Publisher interface using Watermill
// with Kafka. Publishing is fire-and-forget from the gate's point of view; a
// failed publish never blocks or fails a guarded run.
type kafkaWatermillPublisher struct {
	logger         *slog.Logger
	kafkaPublisher message.Publisher
}

// NewKafkaWatermillPublisher creates a Kafka-backed run event publisher.
func NewKafkaWatermillPublisher(logger *slog.Logger, brokers []string) (*kafkaWatermillPublisher, error) {
	if logger == nil {
		return nil, fmt.Errorf("nil logger not allowed")
	}
	if len(brokers) == 0 {
		return nil, fmt.Errorf("empty broker list not allowed")
	}

	publisher, err := kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:   brokers,
			Marshaler: kafka.DefaultMarshaler{},
		},
		watermill.NewStdLogger(false, false),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka publisher: %w", err)
	}
	return &kafkaWatermillPublisher{
		logger:         logger,
		kafkaPublisher: publisher,
	}, nil
}

func (p *kafkaWatermillPublisher) Publish(_ context.Context, topic string, msg []byte) error {
	watermillMsg := message.NewMessage(watermill.NewUUID(), msg)
	return p.kafkaPublisher.Publish(topic, watermillMsg)
}

func (p *kafkaWatermillPublisher) Close(_ context.Context) error {
	return p.kafkaPublisher.Close()
}
