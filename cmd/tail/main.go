// Command tail follows a news topic and prints a summary of every published
// message. Useful for checking what the polling service is emitting without a
// full downstream consumer.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"newsflow/config"
	"newsflow/kafka"
	"newsflow/types"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	brokers := flag.String("brokers", strings.Join(cfg.KafkaBootstrapServers, ","), "comma-separated Kafka brokers")
	topic := flag.String("topic", cfg.KafkaTopicRawNews, "topic to follow")
	group := flag.String("group", "newsflow-tail", "consumer group id")
	titles := flag.Int("titles", 3, "article titles to print per message")
	flag.Parse()

	consumer, err := kafka.NewConsumer(kafka.ConsumerConfig{
		Brokers: strings.Split(*brokers, ","),
		Topic:   *topic,
		GroupID: *group,
		Handler: printMessage(*titles),
	})
	if err != nil {
		log.Fatalf("Failed to create consumer: %v", err)
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := consumer.Run(ctx); err != nil {
		log.Fatalf("Consumer error: %v", err)
	}
}

func printMessage(maxTitles int) kafka.BatchHandler {
	return func(_ context.Context, msg *types.NewsMessage) error {
		scope := msg.Country
		if msg.Category != "" {
			scope += "/" + msg.Category
		}
		fmt.Printf("%s  %s  %s  %d articles (id %s)\n",
			msg.Timestamp.Format("15:04:05"), msg.Source, scope, len(msg.Articles), msg.MessageID)

		for i, article := range msg.Articles {
			if i >= maxTitles {
				fmt.Printf("    ... %d more\n", len(msg.Articles)-maxTitles)
				break
			}
			marker := " "
			if article.Scraped != nil {
				marker = "*"
			}
			fmt.Printf("  %s %s (%s)\n", marker, article.Title, article.Source.Name)
		}
		return nil
	}
}
