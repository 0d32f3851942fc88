package types

import "time"

// NewsMessage is the envelope published to Kafka for one batch of articles
type NewsMessage struct {
	MessageID    string         `json:"message_id"`
	Timestamp    time.Time      `json:"timestamp"`
	Source       string         `json:"source"`
	Country      string         `json:"country,omitempty"`
	Category     string         `json:"category,omitempty"`
	Articles     []*NewsArticle `json:"articles"`
	TotalResults int            `json:"total_results"`
}
