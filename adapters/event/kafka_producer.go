package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/devconnector-profile/internal/config"
	"github.com/khoahotran/devconnector-profile/internal/domain/profile"
	"github.com/khoahotran/devconnector-profile/pkg/logger"
)

const TopicProfileEvents = "profile.events"

type KafkaProducerClient struct {
	ProfileEventsWriter *kafka.Writer
	logger              logger.Logger
}

// NewKafkaProducerClient builds an async writer: WriteMessages only enqueues, and
// delivery failures are reported to the log from the completion callback.
func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	// writer 'profile.events', keyed by owner so one owner's events stay ordered
	profileWriter := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        TopicProfileEvents,
		Balancer:     &kafka.Hash{},
		Async:        true,
		BatchTimeout: 50 * time.Millisecond,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Error("Failed to deliver profile events", err, zap.Int("count", len(messages)))
			}
		},
	}

	log.Info("Initialize Kafka Producers successfully.", zap.Strings("brokers", brokers))

	return &KafkaProducerClient{
		ProfileEventsWriter: profileWriter,
		logger:              log,
	}, nil
}

func encodeProfileEvent(evt profile.Event) (kafka.Message, error) {
	value, err := json.Marshal(evt)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal profile event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(evt.OwnerID.String()),
		Value: value,
		Time:  evt.OccurredAt,
	}, nil
}

// DecodeProfileEvent is the consumer-side counterpart of the producer encoding.
func DecodeProfileEvent(msg kafka.Message) (profile.Event, error) {
	var evt profile.Event
	if err := json.Unmarshal(msg.Value, &evt); err != nil {
		return profile.Event{}, fmt.Errorf("unmarshal profile event: %w", err)
	}
	return evt, nil
}

func (c *KafkaProducerClient) PublishProfileEvent(ctx context.Context, evt profile.Event) error {
	msg, err := encodeProfileEvent(evt)
	if err != nil {
		return err
	}
	return c.ProfileEventsWriter.WriteMessages(ctx, msg)
}

func (c *KafkaProducerClient) Close() {
	if c.ProfileEventsWriter != nil {
		if err := c.ProfileEventsWriter.Close(); err != nil {
			c.logger.Error("Failed to close Kafka writer", err)
		}
	}
	c.logger.Info("Closed Kafka Producers")
}

// NoopPublisher drops every event. Used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishProfileEvent(context.Context, profile.Event) error { return nil }
