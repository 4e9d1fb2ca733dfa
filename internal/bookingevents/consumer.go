package bookingevents

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"rently/internal/shared/utils/constants"
	"rently/pkg/cache"

	"github.com/IBM/sarama"
)

// Consumer interface defines the contract for consuming booking events
type Consumer interface {
	StartConsumers(ctx context.Context, numWorkers int) error
	Stop() error
	HealthCheck(ctx context.Context) error
}

type ConsumerConfig struct {
	Brokers              []string
	GroupID              string
	Topics               []string
	SessionTimeoutMs     int
	HeartbeatMs          int
	RetryBackoffMs       int
	MaxProcessingTime    time.Duration
	AutoCommit           bool
	OffsetOldest         bool
	MaxRetries           int
	RetryBackoffDuration time.Duration
}

func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:              []string{"localhost:9092"},
		GroupID:              "rently-analytics",
		Topics:               []string{"booking-events"},
		SessionTimeoutMs:     30000,
		HeartbeatMs:          3000,
		RetryBackoffMs:       100,
		MaxProcessingTime:    1 * time.Minute,
		AutoCommit:           true,
		OffsetOldest:         false,
		MaxRetries:           3,
		RetryBackoffDuration: time.Second,
	}
}

// KafkaBookingConsumer invalidates cached owner reports whenever a booking
// event arrives, so the next report request re-aggregates fresh data.
type KafkaBookingConsumer struct {
	consumerGroup sarama.ConsumerGroup
	config        *ConsumerConfig
	cacheService  cache.Service
	topics        []string
	ctx           context.Context
	cancel        context.CancelFunc
}

func NewKafkaBookingConsumer(config *ConsumerConfig, cacheService cache.Service) (Consumer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Consumer.Group.Session.Timeout = time.Duration(config.SessionTimeoutMs) * time.Millisecond
	saramaConfig.Consumer.Group.Heartbeat.Interval = time.Duration(config.HeartbeatMs) * time.Millisecond
	saramaConfig.Consumer.Retry.Backoff = time.Duration(config.RetryBackoffMs) * time.Millisecond
	saramaConfig.Consumer.MaxProcessingTime = config.MaxProcessingTime
	saramaConfig.Consumer.Return.Errors = true

	if config.OffsetOldest {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	}

	if config.AutoCommit {
		saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
		saramaConfig.Consumer.Offsets.AutoCommit.Interval = 1 * time.Second
	}

	consumerGroup, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &KafkaBookingConsumer{
		consumerGroup: consumerGroup,
		config:        config,
		cacheService:  cacheService,
		topics:        config.Topics,
		ctx:           ctx,
		cancel:        cancel,
	}, nil
}

func (kbc *KafkaBookingConsumer) StartConsumers(ctx context.Context, numWorkers int) error {
	log.Printf("📥 Starting %d booking event consumer workers for topics: %v", numWorkers, kbc.topics)

	// Start error handler goroutine
	go kbc.handleErrors()

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			kbc.runWorker(ctx, workerID)
		}(i)
	}

	log.Printf("📥 All %d booking event consumer workers started", numWorkers)
	return nil
}

func (kbc *KafkaBookingConsumer) runWorker(ctx context.Context, workerID int) {
	handler := &consumerGroupHandler{
		consumer: kbc,
		workerID: workerID,
	}

	for {
		select {
		case <-ctx.Done():
			log.Printf("📥 Worker %d shutting down", workerID)
			return
		default:
			err := kbc.consumerGroup.Consume(ctx, kbc.topics, handler)
			if err != nil {
				log.Printf("📥 Worker %d error consuming messages: %v", workerID, err)
				time.Sleep(time.Second)
			}
		}
	}
}

func (kbc *KafkaBookingConsumer) handleErrors() {
	for err := range kbc.consumerGroup.Errors() {
		log.Printf("📥 Consumer group error: %v", err)
	}
}

func (kbc *KafkaBookingConsumer) Stop() error {
	log.Println("📥 Stopping booking event consumer...")
	kbc.cancel()

	if err := kbc.consumerGroup.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}

	log.Println("📥 Booking event consumer stopped")
	return nil
}

func (kbc *KafkaBookingConsumer) HealthCheck(ctx context.Context) error {
	select {
	case <-kbc.ctx.Done():
		return fmt.Errorf("consumer context is cancelled")
	default:
		if kbc.cacheService == nil {
			return fmt.Errorf("cache service not configured")
		}
		return nil
	}
}

type consumerGroupHandler struct {
	consumer *KafkaBookingConsumer
	workerID int
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Printf("📥 Worker %d: Consumer group session started", h.workerID)
	return nil
}

func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Printf("📥 Worker %d: Consumer group session ended", h.workerID)
	return nil
}

func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}

			err := h.processMessage(session.Context(), message)
			if err != nil {
				log.Printf("📥 Worker %d: Error processing message: %v", h.workerID, err)
			} else {
				session.MarkMessage(message, "")
			}

		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *consumerGroupHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	var event BookingEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal booking event: %w", err)
	}

	if event.OwnerID == "" {
		log.Printf("📥 Worker %d: Booking event without owner ID, skipping", h.workerID)
		return nil
	}

	// Bust every cached report for the owner; the next report request will
	// re-aggregate from the database.
	pattern := constants.BuildOwnerAnalyticsPattern(event.OwnerID)
	if err := h.executeWithRetry(ctx, pattern); err != nil {
		return err
	}

	log.Printf("📥 Worker %d: Invalidated reports for owner %s after %s event",
		h.workerID, event.OwnerID, event.Type)
	return nil
}

func (h *consumerGroupHandler) executeWithRetry(ctx context.Context, pattern string) error {
	maxRetries := h.consumer.config.MaxRetries
	backoff := h.consumer.config.RetryBackoffDuration

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := h.consumer.cacheService.DeletePattern(ctx, pattern)
		if err == nil {
			return nil
		}

		if attempt == maxRetries {
			log.Printf("📥 Worker %d: Failed to invalidate cache after %d attempts: %v", h.workerID, maxRetries, err)
			return err
		}

		// Exponential backoff
		delay := backoff * time.Duration(1<<attempt)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}
