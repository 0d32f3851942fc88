// Package kafka publishes deduplicated news batches to Kafka topics.
package kafka

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"newsflow/types"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

// ProducerConfig holds Kafka producer configuration
type ProducerConfig struct {
	Brokers      []string
	TopicNews    string
	TopicRawNews string
}

// Producer publishes news messages with delivery confirmation. SendMessage
// blocks until the broker acks (acks=all), so a returned nil error means the
// message was delivered.
type Producer struct {
	producer     sarama.SyncProducer
	topicNews    string
	topicRawNews string
}

// NewProducer creates a Kafka producer connected to the given brokers
func NewProducer(cfg ProducerConfig) (*Producer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_6_0_0
	saramaConfig.ClientID = "news-polling-service"
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	log.Printf("Initialized Kafka producer with brokers: %v", cfg.Brokers)
	return &Producer{
		producer:     producer,
		topicNews:    cfg.TopicNews,
		topicRawNews: cfg.TopicRawNews,
	}, nil
}

// newProducerWithClient wires a preconstructed sarama producer; used by tests
func newProducerWithClient(p sarama.SyncProducer, topicNews, topicRawNews string) *Producer {
	return &Producer{producer: p, topicNews: topicNews, topicRawNews: topicRawNews}
}

// NewMessage builds the publish envelope for one batch
func NewMessage(batch *types.NewsBatch) *types.NewsMessage {
	return &types.NewsMessage{
		MessageID:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Source:       batch.Metadata.Source,
		Country:      batch.Metadata.Country,
		Category:     batch.Metadata.Category,
		Articles:     batch.Articles,
		TotalResults: batch.TotalResults,
	}
}

// messageKey partitions messages by source and minute bucket
func messageKey(msg *types.NewsMessage) string {
	return fmt.Sprintf("%s_%s", msg.Source, msg.Timestamp.Format("20060102_1504"))
}

// SendNewsMessage publishes a message to the given topic, defaulting to the
// main news topic when topic is empty.
func (p *Producer) SendNewsMessage(msg *types.NewsMessage, topic string) error {
	if topic == "" {
		topic = p.topicNews
	}

	value, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal news message: %w", err)
	}

	key := messageKey(msg)
	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	log.Printf("Sent news message to topic %q key %q (partition=%d offset=%d)", topic, key, partition, offset)
	return nil
}

// SendRawBatch publishes a fetched batch to the raw-news topic
func (p *Producer) SendRawBatch(batch *types.NewsBatch) error {
	return p.SendNewsMessage(NewMessage(batch), p.topicRawNews)
}

// Close shuts the producer down, flushing buffered messages
func (p *Producer) Close() error {
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("error closing producer: %w", err)
	}
	log.Println("Kafka producer closed")
	return nil
}
