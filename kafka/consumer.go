package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/IBM/sarama"

	"newsflow/types"
)

// BatchHandler processes one decoded news message. Returning an error leaves
// the offset unmarked so the message is redelivered.
type BatchHandler func(ctx context.Context, msg *types.NewsMessage) error

// ConsumerConfig holds Kafka consumer configuration
type ConsumerConfig struct {
	Brokers []string
	Topic   string
	GroupID string
	Handler BatchHandler
}

// Consumer reads published news messages back off Kafka. The polling service
// itself is write-only; the consumer backs the tail tool and downstream
// debugging.
type Consumer struct {
	group   sarama.ConsumerGroup
	topic   string
	groupID string
	handler BatchHandler
}

// NewConsumer creates a consumer group member for the given topic
func NewConsumer(cfg ConsumerConfig) (*Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_6_0_0
	saramaConfig.ClientID = "news-polling-service"
	saramaConfig.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, saramaConfig)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		group:   group,
		topic:   cfg.Topic,
		groupID: cfg.GroupID,
		handler: cfg.Handler,
	}, nil
}

// Run consumes until ctx is cancelled. It blocks; run it in a goroutine if
// the caller has other work.
func (c *Consumer) Run(ctx context.Context) error {
	go func() {
		for err := range c.group.Errors() {
			log.Printf("Kafka consumer error: %v", err)
		}
	}()

	handler := &groupHandler{handler: c.handler}
	log.Printf("Kafka consumer started (group: %s, topic: %s)", c.groupID, c.topic)

	for {
		if err := c.group.Consume(ctx, []string{c.topic}, handler); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// Close shuts down the consumer group
func (c *Consumer) Close() error {
	return c.group.Close()
}

// groupHandler implements sarama.ConsumerGroupHandler
type groupHandler struct {
	handler BatchHandler
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}

			var msg types.NewsMessage
			if err := json.Unmarshal(message.Value, &msg); err != nil {
				// Skip undecodable payloads; redelivery would not help
				log.Printf("Warning: skipping undecodable message at offset %d: %v", message.Offset, err)
				session.MarkMessage(message, "")
				continue
			}

			if err := h.handler(session.Context(), &msg); err != nil {
				log.Printf("Failed to handle message %s: %v", msg.MessageID, err)
				continue
			}
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}
