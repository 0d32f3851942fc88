package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NEWS_API_KEY", "test-key")

	cfg := Load()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if cfg.NewsAPIBaseURL != "https://newsapi.org/v2" {
		t.Errorf("base URL = %q", cfg.NewsAPIBaseURL)
	}
	if len(cfg.KafkaBootstrapServers) != 1 || cfg.KafkaBootstrapServers[0] != "localhost:9092" {
		t.Errorf("brokers = %v", cfg.KafkaBootstrapServers)
	}
	if cfg.DedupKeyPrefix != "news:dedup" {
		t.Errorf("dedup prefix = %q", cfg.DedupKeyPrefix)
	}
	if cfg.DedupTTL != 24*time.Hour {
		t.Errorf("dedup TTL = %s, want 24h", cfg.DedupTTL)
	}
	if !cfg.EnableScraping {
		t.Error("scraping should default to enabled")
	}
	if cfg.ScrapingDelay != 500*time.Millisecond {
		t.Errorf("scraping delay = %s, want 500ms", cfg.ScrapingDelay)
	}
	if cfg.Polling.IntervalMinutes != 15 || cfg.Polling.MaxArticles != 100 {
		t.Errorf("polling defaults = %+v", cfg.Polling)
	}
	if len(cfg.Polling.Countries) == 0 || len(cfg.Polling.Categories) == 0 {
		t.Error("polling countries/categories should have defaults")
	}
	if len(cfg.RSSFeeds) != 0 {
		t.Errorf("RSS feeds should default empty, got %v", cfg.RSSFeeds)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("NEWS_API_KEY", "test-key")
	t.Setenv("KAFKA_BOOTSTRAP_SERVERS", "kafka1:9092, kafka2:9092")
	t.Setenv("REDIS_DEDUP_TTL_HOURS", "48")
	t.Setenv("SCRAPING_RATE_LIMIT_DELAY", "1.5")
	t.Setenv("POLLING_COUNTRIES", "us,de")
	t.Setenv("RSS_FEEDS", "https://example.com/feed.xml")
	t.Setenv("ENABLE_ARTICLE_SCRAPING", "false")

	cfg := Load()

	if len(cfg.KafkaBootstrapServers) != 2 || cfg.KafkaBootstrapServers[1] != "kafka2:9092" {
		t.Errorf("brokers = %v, want trimmed two-element list", cfg.KafkaBootstrapServers)
	}
	if cfg.DedupTTL != 48*time.Hour {
		t.Errorf("dedup TTL = %s, want 48h", cfg.DedupTTL)
	}
	if cfg.ScrapingDelay != 1500*time.Millisecond {
		t.Errorf("scraping delay = %s, want 1.5s", cfg.ScrapingDelay)
	}
	if len(cfg.Polling.Countries) != 2 || cfg.Polling.Countries[1] != "de" {
		t.Errorf("countries = %v", cfg.Polling.Countries)
	}
	if len(cfg.RSSFeeds) != 1 {
		t.Errorf("RSS feeds = %v", cfg.RSSFeeds)
	}
	if cfg.EnableScraping {
		t.Error("scraping should be disabled")
	}
}

func TestValidateRequiresAPIKey(t *testing.T) {
	t.Setenv("NEWS_API_KEY", "")

	cfg := Load()
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing API key")
	}
}
