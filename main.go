package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"newsflow/api"
	"newsflow/common"
	"newsflow/config"
	"newsflow/deduplication"
	"newsflow/kafka"
	"newsflow/newsapi"
	"newsflow/poller"
	"newsflow/scraper"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := buildSeenStore(cfg)

	producer, err := kafka.NewProducer(kafka.ProducerConfig{
		Brokers:      cfg.KafkaBootstrapServers,
		TopicNews:    cfg.KafkaTopicNews,
		TopicRawNews: cfg.KafkaTopicRawNews,
	})
	if err != nil {
		log.Fatalf("Failed to connect to Kafka: %v", err)
	}

	var scr poller.Scraper
	if cfg.EnableScraping {
		scr = scraper.New(scraper.Config{
			Timeout:    cfg.ScrapingTimeout,
			MaxRetries: cfg.ScrapingRetries,
			RateDelay:  cfg.ScrapingDelay,
			Workers:    cfg.ScrapeWorkers,
		})
	}

	svc := poller.New(poller.Options{
		Job:      cfg.Polling,
		News:     newsapi.New(cfg.NewsAPIKey, cfg.NewsAPIBaseURL),
		RSSFeeds: cfg.RSSFeeds,
		Store:    store,
		DedupTTL: cfg.DedupTTL,
		Scraper:  scr,
		Producer: producer,
		Archiver: buildArchiver(ctx, cfg),
	})
	defer svc.Close()

	if cfg.AdminPort != "" {
		go serveAdminAPI(ctx, cfg.AdminPort, svc)
	}

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Polling service error: %v", err)
	}
}

// buildSeenStore connects to Redis, or falls back to the in-process store
// when no Redis address is configured. An unreachable configured Redis is
// fatal: silently running without cross-restart dedup would republish
// everything on the next cycle.
func buildSeenStore(cfg config.Config) deduplication.SeenStore {
	if cfg.RedisAddr == "" {
		log.Println("Warning: REDIS_ADDR not set, using in-memory dedup cache (not shared across restarts)")
		return deduplication.NewMemoryStore(cfg.DedupKeyPrefix, cfg.DedupTTL)
	}

	store, err := deduplication.NewRedisStore(deduplication.RedisConfig{
		Addr:      cfg.RedisAddr,
		Password:  cfg.RedisPassword,
		DB:        cfg.RedisDB,
		KeyPrefix: cfg.DedupKeyPrefix,
		TTL:       cfg.DedupTTL,
	})
	if err != nil {
		log.Fatalf("Failed to connect to Redis at %s: %v", cfg.RedisAddr, err)
	}
	log.Printf("Connected to Redis at %s (dedup TTL %s)", cfg.RedisAddr, cfg.DedupTTL)
	return store
}

// buildArchiver returns an S3 batch archiver when S3_BUCKET is set, nil
// otherwise. Archival is best-effort; a failed client setup only disables it.
func buildArchiver(ctx context.Context, cfg config.Config) poller.Archiver {
	if cfg.S3Bucket == "" {
		return nil
	}

	s3c, err := common.NewS3(ctx, common.S3Config{Region: cfg.S3Region})
	if err != nil {
		log.Printf("Warning: S3 archival disabled, client setup failed: %v", err)
		return nil
	}
	log.Printf("Archiving published batches to s3://%s/%s", cfg.S3Bucket, cfg.S3Prefix)
	return common.NewBatchArchiver(s3c, cfg.S3Bucket, cfg.S3Prefix)
}

// serveAdminAPI runs the admin HTTP surface until ctx is cancelled
func serveAdminAPI(ctx context.Context, port string, svc *poller.Service) {
	router := api.NewRouter(api.Deps{
		Filter:      svc.Filter(),
		TriggerPoll: svc.TriggerPoll,
	})

	srv := &http.Server{Addr: ":" + port, Handler: router}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()

	log.Printf("Starting admin API server on :%s", port)
	log.Println("API endpoints available:")
	log.Println("  GET    /api/health")
	log.Println("  GET    /api/dedup/stats")
	log.Println("  DELETE /api/dedup/clear")
	log.Println("  POST   /api/poll")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("Admin API server error: %v", err)
	}
}
