package bookingevents

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/IBM/sarama"
)

// Producer interface defines the contract for publishing booking events
type Producer interface {
	PublishBookingEvent(ctx context.Context, event *BookingEvent) error
	Close() error
	HealthCheck(ctx context.Context) error
}

// KafkaProducerConfig contains configuration for the Kafka booking event producer
type KafkaProducerConfig struct {
	Brokers          []string
	BookingTopic     string
	RetryMax         int
	TimeoutMs        int
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
	MaxMessageBytes  int
}

// DefaultKafkaProducerConfig returns a default producer configuration
func DefaultKafkaProducerConfig() *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:          []string{"localhost:9092"},
		BookingTopic:     "booking-events",
		RetryMax:         3,
		TimeoutMs:        10000,             // 10 seconds
		RequiredAcks:     sarama.WaitForAll, // Wait for all in-sync replicas
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
		MaxMessageBytes:  1000000, // 1MB
	}
}

// KafkaBookingProducer handles publishing booking events to Kafka
type KafkaBookingProducer struct {
	producer sarama.SyncProducer
	config   *KafkaProducerConfig
}

// NewKafkaBookingProducer creates a new Kafka booking event producer
func NewKafkaBookingProducer(config *KafkaProducerConfig) (Producer, error) {
	saramaConfig := sarama.NewConfig()

	// Producer configuration
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = config.IdempotentWrites
	saramaConfig.Producer.MaxMessageBytes = config.MaxMessageBytes

	// Enable idempotent producer
	if config.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	// Use hash partitioner for consistent routing based on owner
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	log.Printf("📤 Kafka booking event producer created successfully")
	return &KafkaBookingProducer{
		producer: producer,
		config:   config,
	}, nil
}

// PublishBookingEvent publishes a single booking event to Kafka
func (kbp *KafkaBookingProducer) PublishBookingEvent(ctx context.Context, event *BookingEvent) error {
	messageBytes, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     kbp.config.BookingTopic,
		Key:       sarama.StringEncoder(event.GetPartitionKey()),
		Value:     sarama.ByteEncoder(messageBytes),
		Headers:   kbp.createHeaders(event),
		Timestamp: event.OccurredAt,
	}

	partition, offset, err := kbp.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send booking event to Kafka: %w", err)
	}

	log.Printf("📤 Booking event published - Topic: %s, Partition: %d, Offset: %d, Type: %s, Booking: %s",
		kbp.config.BookingTopic, partition, offset, event.Type, event.BookingID)

	return nil
}

// createHeaders creates Kafka headers for booking events
func (kbp *KafkaBookingProducer) createHeaders(event *BookingEvent) []sarama.RecordHeader {
	return []sarama.RecordHeader{
		{Key: []byte("event_type"), Value: []byte(event.Type)},
		{Key: []byte("booking_id"), Value: []byte(event.BookingID)},
		{Key: []byte("owner_id"), Value: []byte(event.OwnerID)},
		{Key: []byte("version"), Value: []byte("1.0")},
		{Key: []byte("producer"), Value: []byte("rently-bookings")},
		{Key: []byte("occurred_at"), Value: []byte(event.OccurredAt.Format(time.RFC3339))},
	}
}

// Close closes the Kafka producer
func (kbp *KafkaBookingProducer) Close() error {
	if kbp.producer != nil {
		if err := kbp.producer.Close(); err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
		log.Printf("📤 Kafka booking event producer closed")
	}
	return nil
}

// HealthCheck performs a health check on the Kafka producer
func (kbp *KafkaBookingProducer) HealthCheck(ctx context.Context) error {
	if kbp.producer == nil {
		return fmt.Errorf("health check failed - producer is nil")
	}
	if kbp.config.BookingTopic == "" {
		return fmt.Errorf("health check failed - booking topic not configured")
	}
	return nil
}

// NoopProducer is used when Kafka is disabled. Events are dropped with a log
// line so the booking flow keeps working in development environments.
type NoopProducer struct{}

func NewNoopProducer() Producer {
	return &NoopProducer{}
}

func (np *NoopProducer) PublishBookingEvent(ctx context.Context, event *BookingEvent) error {
	log.Printf("📤 Kafka disabled, dropping booking event - Type: %s, Booking: %s", event.Type, event.BookingID)
	return nil
}

func (np *NoopProducer) Close() error { return nil }

func (np *NoopProducer) HealthCheck(ctx context.Context) error { return nil }
