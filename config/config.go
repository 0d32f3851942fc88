package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"newsflow/types"
)

// Config holds all environment-sourced settings for the polling service
type Config struct {
	// NewsAPI
	NewsAPIKey     string
	NewsAPIBaseURL string

	// Kafka
	KafkaBootstrapServers []string
	KafkaTopicNews        string
	KafkaTopicRawNews     string

	// Redis deduplication
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	DedupKeyPrefix  string
	DedupTTL        time.Duration

	// Article scraping
	EnableScraping  bool
	ScrapingTimeout time.Duration
	ScrapingRetries int
	ScrapingDelay   time.Duration
	ScrapeWorkers   int

	// Polling
	Polling types.PollingJobConfig

	// Optional RSS feed URLs polled alongside the news API
	RSSFeeds []string

	// Optional S3 batch archival
	S3Bucket string
	S3Region string
	S3Prefix string

	// Optional admin HTTP API; empty disables it
	AdminPort string
}

// Load reads configuration from environment variables, applying defaults
// matching the service's documented behaviour.
func Load() Config {
	cfg := Config{
		NewsAPIKey:            os.Getenv("NEWS_API_KEY"),
		NewsAPIBaseURL:        getEnvOrDefault("NEWS_API_BASE_URL", "https://newsapi.org/v2"),
		KafkaBootstrapServers: splitList(getEnvOrDefault("KAFKA_BOOTSTRAP_SERVERS", "localhost:9092")),
		KafkaTopicNews:        getEnvOrDefault("KAFKA_TOPIC_NEWS", "news-articles"),
		KafkaTopicRawNews:     getEnvOrDefault("KAFKA_TOPIC_RAW_NEWS", "raw-news"),
		RedisAddr:             getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:         os.Getenv("REDIS_PASSWORD"),
		RedisDB:               getEnvInt("REDIS_DB", 0),
		DedupKeyPrefix:        getEnvOrDefault("REDIS_DEDUP_KEY_PREFIX", "news:dedup"),
		DedupTTL:              time.Duration(getEnvInt("REDIS_DEDUP_TTL_HOURS", 24)) * time.Hour,
		EnableScraping:        getEnvBool("ENABLE_ARTICLE_SCRAPING", true),
		ScrapingTimeout:       time.Duration(getEnvInt("SCRAPING_TIMEOUT", 10)) * time.Second,
		ScrapingRetries:       getEnvInt("SCRAPING_MAX_RETRIES", 3),
		ScrapingDelay:         getEnvDuration("SCRAPING_RATE_LIMIT_DELAY", 500*time.Millisecond),
		ScrapeWorkers:         getEnvInt("SCRAPE_WORKERS", 1),
		RSSFeeds:              splitList(os.Getenv("RSS_FEEDS")),
		S3Bucket:              strings.TrimSpace(os.Getenv("S3_BUCKET")),
		S3Region:              strings.TrimSpace(os.Getenv("S3_REGION")),
		S3Prefix:              strings.Trim(strings.TrimSpace(os.Getenv("S3_PREFIX")), "/"),
		AdminPort:             os.Getenv("ADMIN_PORT"),
	}

	cfg.Polling = types.DefaultPollingJobConfig()
	cfg.Polling.IntervalMinutes = getEnvInt("POLLING_INTERVAL_MINUTES", cfg.Polling.IntervalMinutes)
	cfg.Polling.MaxArticles = getEnvInt("MAX_ARTICLES_PER_REQUEST", cfg.Polling.MaxArticles)
	if v := splitList(os.Getenv("POLLING_COUNTRIES")); len(v) > 0 {
		cfg.Polling.Countries = v
	}
	if v := splitList(os.Getenv("POLLING_CATEGORIES")); len(v) > 0 {
		cfg.Polling.Categories = v
	}

	return cfg
}

// Validate checks required settings. A missing API key is fatal at startup.
func (c Config) Validate() error {
	if c.NewsAPIKey == "" {
		return fmt.Errorf("NEWS_API_KEY environment variable is required")
	}
	if c.Polling.IntervalMinutes <= 0 {
		return fmt.Errorf("polling interval must be positive, got %d", c.Polling.IntervalMinutes)
	}
	return nil
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

// getEnvDuration reads a float number of seconds, e.g. "0.5"
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil && f >= 0 {
			return time.Duration(f * float64(time.Second))
		}
	}
	return defaultVal
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
