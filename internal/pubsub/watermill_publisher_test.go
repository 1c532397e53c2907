//go:build integration
// +build integration

package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/kafka"
)

// WatermillPublisherTestSuite encapsulates the test suite for the Watermill
// Kafka run event publisher
type WatermillPublisherTestSuite struct {
	suite.Suite
	ctx            context.Context
	kafkaContainer *kafka.KafkaContainer
	brokers        []string
	logger         *slog.Logger
	publisher      *kafkaWatermillPublisher
}

// SetupSuite starts the Kafka container before all tests
func (s *WatermillPublisherTestSuite) SetupSuite() {
	s.ctx = context.Background()

	var err error
	s.kafkaContainer, err = kafka.Run(
		s.ctx,
		"confluentinc/cp-kafka:7.4.1",
		kafka.WithClusterID("test-cluster"),
	)
	s.Require().NoError(err, "Failed to start Kafka container")

	s.brokers, err = s.kafkaContainer.Brokers(s.ctx)
	s.Require().NoError(err, "Failed to get Kafka brokers")
	s.Require().NotEmpty(s.brokers, "Kafka brokers should not be empty")

	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	s.publisher, err = NewKafkaWatermillPublisher(s.logger, s.brokers)
	s.Require().NoError(err, "Failed to create Kafka publisher")
}

// TearDownSuite stops the Kafka container after all tests
func (s *WatermillPublisherTestSuite) TearDownSuite() {
	if s.publisher != nil {
		s.Require().NoError(s.publisher.Close(s.ctx), "Failed to close publisher")
	}
	if s.kafkaContainer != nil {
		s.Require().NoError(s.kafkaContainer.Terminate(s.ctx), "Failed to terminate Kafka container")
	}
}

// TestPublishRunEvent tests publishing a single run event
func (s *WatermillPublisherTestSuite) TestPublishRunEvent() {
	event := JobRunEvent{
		Key:      "job-x",
		Instance: "instance-1",
		Action:   ActionCompleted,
		At:       time.Now().UTC(),
	}
	msg, err := json.Marshal(event)
	s.Require().NoError(err, "Failed to marshal run event")

	err = s.publisher.Publish(s.ctx, TopicJobRuns, msg)
	s.Require().NoError(err, "Failed to publish run event")
}

// TestPublishRunLifecycle tests publishing a full run lifecycle
func (s *WatermillPublisherTestSuite) TestPublishRunLifecycle() {
	for _, action := range []string{ActionStarted, ActionSkipped, ActionFailed, ActionCompleted} {
		event := JobRunEvent{
			Key:      "job-y",
			Instance: "instance-1",
			Action:   action,
			At:       time.Now().UTC(),
		}
		msg, err := json.Marshal(event)
		s.Require().NoError(err, "Failed to marshal run event")

		err = s.publisher.Publish(s.ctx, TopicJobRuns, msg)
		s.Require().NoError(err, "Failed to publish run event")
	}
}

// TestNewKafkaWatermillPublisherValidation tests constructor validation
func (s *WatermillPublisherTestSuite) TestNewKafkaWatermillPublisherValidation() {
	_, err := NewKafkaWatermillPublisher(nil, s.brokers)
	s.Require().Error(err, "nil logger should be rejected")

	_, err = NewKafkaWatermillPublisher(s.logger, nil)
	s.Require().Error(err, "empty broker list should be rejected")
}

// Run the test suite
func TestWatermillPublisherSuite(t *testing.T) {
	suite.Run(t, new(WatermillPublisherTestSuite))
}
