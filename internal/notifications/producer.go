package notifications

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"railbook/internal/shared/config"
	"railbook/pkg/logger"

	"github.com/IBM/sarama"
)

// Publisher delivers booking events to downstream consumers
type Publisher interface {
	PublishBookingEvent(ctx context.Context, event *BookingEvent) error
	Close() error
}

// KafkaProducerConfig contains configuration for the Kafka booking event producer
type KafkaProducerConfig struct {
	Brokers          []string
	Topic            string
	RetryMax         int
	Timeout          time.Duration
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
	MaxMessageBytes  int
}

// NewKafkaProducerConfig derives producer settings from the application config
func NewKafkaProducerConfig(cfg config.KafkaConfig) *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:          cfg.Brokers,
		Topic:            cfg.Topic,
		RetryMax:         cfg.RetryMax,
		Timeout:          cfg.Timeout,
		RequiredAcks:     sarama.WaitForAll, // Wait for all in-sync replicas
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
		MaxMessageBytes:  1000000, // 1MB
	}
}

func (c *KafkaProducerConfig) saramaConfig() *sarama.Config {
	sc := sarama.NewConfig()

	sc.Producer.Return.Successes = true
	sc.Producer.Return.Errors = true
	sc.Producer.RequiredAcks = c.RequiredAcks
	sc.Producer.Compression = c.CompressionType
	sc.Producer.Retry.Max = c.RetryMax
	sc.Producer.Timeout = c.Timeout
	sc.Producer.Idempotent = c.IdempotentWrites
	sc.Producer.MaxMessageBytes = c.MaxMessageBytes
	if c.IdempotentWrites {
		sc.Net.MaxOpenRequests = 1
	}

	// Hash on the PNR so events of one booking stay ordered
	sc.Producer.Partitioner = sarama.NewHashPartitioner
	return sc
}

// KafkaPublisher publishes booking events with a synchronous producer
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
}

// NewKafkaPublisher connects to the configured brokers
func NewKafkaPublisher(cfg *KafkaProducerConfig) (*KafkaPublisher, error) {
	producer, err := sarama.NewSyncProducer(cfg.Brokers, cfg.saramaConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}
	p := NewKafkaPublisherWithProducer(producer, cfg.Topic)
	p.log.Info("Kafka booking event producer created", "brokers", cfg.Brokers, "topic", cfg.Topic)
	return p, nil
}

// NewKafkaPublisherWithProducer wraps an existing producer
func NewKafkaPublisherWithProducer(producer sarama.SyncProducer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic, log: logger.GetDefault()}
}

// PublishBookingEvent sends a single event keyed by PNR
func (kp *KafkaPublisher) PublishBookingEvent(ctx context.Context, event *BookingEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	value, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     kp.topic,
		Key:       sarama.StringEncoder(event.GetPartitionKey()),
		Value:     sarama.ByteEncoder(value),
		Headers:   createHeaders(event),
		Timestamp: event.OccurredAt,
	}

	partition, offset, err := kp.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send booking event to Kafka: %w", err)
	}

	kp.log.DebugContext(ctx, "Booking event published",
		"topic", kp.topic,
		"partition", partition,
		"offset", offset,
		"type", event.Type,
		"pnr", event.PNR,
	)
	return nil
}

func createHeaders(event *BookingEvent) []sarama.RecordHeader {
	return []sarama.RecordHeader{
		{Key: []byte("event_id"), Value: []byte(event.ID.String())},
		{Key: []byte("event_type"), Value: []byte(event.Type)},
		{Key: []byte("user_id"), Value: []byte(strconv.FormatInt(event.UserID, 10))},
		{Key: []byte("version"), Value: []byte("1.0")},
		{Key: []byte("producer"), Value: []byte("railbook-bookings")},
	}
}

// Close closes the Kafka producer
func (kp *KafkaPublisher) Close() error {
	if kp.producer == nil {
		return nil
	}
	if err := kp.producer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka producer: %w", err)
	}
	kp.log.Info("Kafka booking event producer closed")
	return nil
}

// NoopPublisher drops every event. Used when Kafka is disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishBookingEvent(context.Context, *BookingEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }

// New returns a Kafka publisher when enabled, otherwise a NoopPublisher
func New(cfg config.KafkaConfig) (Publisher, error) {
	if !cfg.Enabled {
		return NoopPublisher{}, nil
	}
	return NewKafkaPublisher(NewKafkaProducerConfig(cfg))
}
