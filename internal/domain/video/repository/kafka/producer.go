// Package kafka contains Kafka repository implementations
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"

	"github.com/Conte777/TubeFlow/config"
	"github.com/Conte777/TubeFlow/internal/domain/video/deps"
	"github.com/Conte777/TubeFlow/internal/domain/video/dto"
)

// Producer implements deps.DownloadEventPublisher
type Producer struct {
	producer sarama.SyncProducer
	topic    string
	logger   zerolog.Logger
}

// NewProducer creates a new Kafka producer that implements deps.DownloadEventPublisher
func NewProducer(cfg *config.KafkaConfig, logger zerolog.Logger) (*Producer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Compression = sarama.CompressionSnappy

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Info().Strs("brokers", cfg.Brokers).Str("topic", cfg.Topic).Msg("Kafka producer initialized successfully")

	return NewProducerWithClient(producer, cfg.Topic, logger), nil
}

// NewProducerWithClient wraps an existing sarama producer
func NewProducerWithClient(producer sarama.SyncProducer, topic string, logger zerolog.Logger) *Producer {
	return &Producer{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// PublishDownloadEvent sends a download event keyed by request ID
func (p *Producer) PublishDownloadEvent(ctx context.Context, event *dto.DownloadEvent) error {
	jsonData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event to JSON: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.RequestID),
		Value: sarama.ByteEncoder(jsonData),
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		p.logger.Error().Err(err).Str("topic", p.topic).Msg("Failed to send Kafka message")
		return err
	}

	p.logger.Debug().
		Str("topic", p.topic).
		Str("request_id", event.RequestID).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("Download event published")

	return nil
}

// Close closes the Kafka producer
func (p *Producer) Close() error {
	if p.producer == nil {
		return nil
	}
	if err := p.producer.Close(); err != nil {
		p.logger.Error().Err(err).Msg("Failed to close Kafka producer")
		return err
	}
	p.logger.Info().Msg("Kafka producer closed successfully")
	return nil
}

// NopPublisher drops events when Kafka is not configured
type NopPublisher struct{}

// PublishDownloadEvent implements deps.DownloadEventPublisher interface
func (NopPublisher) PublishDownloadEvent(context.Context, *dto.DownloadEvent) error {
	return nil
}

var (
	_ deps.DownloadEventPublisher = (*Producer)(nil)
	_ deps.DownloadEventPublisher = NopPublisher{}
)
