// Package poller runs the periodic fetch → dedup → scrape → publish cycle.
package poller

import (
	"context"
	"fmt"
	"log"
	"time"

	"newsflow/deduplication"
	"newsflow/newsapi"
	"newsflow/rssfeeds"
	"newsflow/types"
)

// Service owns one polling pipeline. Cycles run strictly one at a time: the
// next tick waits until the previous cycle finished.
type Service struct {
	job      types.PollingJobConfig
	news     *newsapi.Client
	rssFeeds []string
	filter   *deduplication.Filter
	store    deduplication.SeenStore
	scraper  Scraper
	producer Publisher
	archiver Archiver
	pollNow  chan struct{}
}

// Scraper is what the service needs from the enrichment side; nil disables
// scraping for the whole service lifetime.
type Scraper interface {
	ScrapeArticles(ctx context.Context, articles []*types.NewsArticle) []*types.NewsArticle
	Close()
}

// Publisher is what the service needs from the Kafka side
type Publisher interface {
	SendRawBatch(batch *types.NewsBatch) error
	Close() error
}

// Archiver optionally persists published batches; nil disables archival
type Archiver interface {
	Archive(ctx context.Context, batch *types.NewsBatch) error
}

// Options collects the service's collaborators
type Options struct {
	Job      types.PollingJobConfig
	News     *newsapi.Client
	RSSFeeds []string
	Store    deduplication.SeenStore
	DedupTTL time.Duration
	Scraper  Scraper
	Producer Publisher
	Archiver Archiver
}

// New assembles a polling service
func New(opts Options) *Service {
	return &Service{
		job:      opts.Job,
		news:     opts.News,
		rssFeeds: opts.RSSFeeds,
		filter:   deduplication.NewFilter(opts.Store, opts.DedupTTL),
		store:    opts.Store,
		scraper:  opts.Scraper,
		producer: opts.Producer,
		archiver: opts.Archiver,
		pollNow:  make(chan struct{}, 1),
	}
}

// TriggerPoll asks the running loop for an extra cycle. Non-blocking: while a
// trigger is already pending, further calls coalesce into it.
func (s *Service) TriggerPoll() {
	select {
	case s.pollNow <- struct{}{}:
	default:
	}
}

// Filter exposes the duplicate filter for the admin API
func (s *Service) Filter() *deduplication.Filter {
	return s.filter
}

// RunOnce executes a single polling cycle to completion
func (s *Service) RunOnce(ctx context.Context) error {
	log.Println("Starting news polling cycle")
	start := time.Now()

	batches := s.news.NewsForPolling(ctx, s.job)
	if len(s.rssFeeds) > 0 {
		batches = append(batches, rssfeeds.BatchesForPolling(ctx, s.rssFeeds, s.job.MaxArticles)...)
	}
	if len(batches) == 0 {
		return fmt.Errorf("no batches fetched this cycle")
	}

	totalBefore, totalAfter, totalScraped := 0, 0, 0

	for _, batch := range batches {
		totalBefore += len(batch.Articles)

		unique := s.filter.FilterDuplicates(ctx, batch.Articles)
		batch.Articles = unique
		batch.TotalResults = len(unique)
		totalAfter += len(unique)

		if s.scraper != nil && len(unique) > 0 {
			s.scraper.ScrapeArticles(ctx, unique)
			for _, article := range unique {
				if article.Scraped != nil {
					totalScraped++
				}
			}
		}

		if len(unique) == 0 {
			log.Printf("No unique articles for: %s - %s", batch.Metadata.Country, batch.Metadata.Category)
			continue
		}

		if err := s.producer.SendRawBatch(batch); err != nil {
			log.Printf("Failed to send news data to Kafka: %v", err)
			continue
		}
		log.Printf("Sent %d unique articles to Kafka: %s - %s",
			len(unique), batch.Metadata.Country, batch.Metadata.Category)

		if s.archiver != nil {
			if err := s.archiver.Archive(ctx, batch); err != nil {
				log.Printf("Warning: batch archival failed: %v", err)
			}
		}
	}

	log.Printf("Completed news polling cycle in %s. Processed %d batches", time.Since(start).Round(time.Millisecond), len(batches))
	log.Printf("Articles: %d total, %d unique, %d duplicates filtered", totalBefore, totalAfter, totalBefore-totalAfter)
	if s.scraper != nil && totalScraped > 0 {
		log.Printf("Article scraping: %d articles successfully scraped", totalScraped)
	}

	if stats, err := s.filter.Stats(ctx); err == nil {
		log.Printf("Dedup stats: %d cached keys under %q", stats.TotalKeys, stats.KeyPrefix)
	}
	return nil
}

// Run polls immediately, then on every interval tick until ctx is cancelled.
// Cycle errors are logged; only cancellation stops the loop.
func (s *Service) Run(ctx context.Context) error {
	interval := time.Duration(s.job.IntervalMinutes) * time.Minute

	log.Println("Starting News Polling Service")
	log.Printf("Polling interval: %d minutes", s.job.IntervalMinutes)
	log.Printf("Countries: %v", s.job.Countries)
	log.Printf("Categories: %v", s.job.Categories)
	if s.scraper != nil {
		log.Println("Article scraping enabled")
	} else {
		log.Println("Article scraping disabled")
	}

	if err := s.RunOnce(ctx); err != nil {
		log.Printf("Error during news polling: %v", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.RunOnce(ctx); err != nil {
				log.Printf("Error during news polling: %v", err)
			}
		case <-s.pollNow:
			log.Println("Manual poll requested")
			if err := s.RunOnce(ctx); err != nil {
				log.Printf("Error during news polling: %v", err)
			}
		case <-ctx.Done():
			log.Println("Shutting down News Polling Service")
			return ctx.Err()
		}
	}
}

// Close releases the service's collaborators
func (s *Service) Close() {
	if s.producer != nil {
		if err := s.producer.Close(); err != nil {
			log.Printf("Error closing Kafka producer: %v", err)
		}
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("Error closing dedup store: %v", err)
		}
	}
	if s.scraper != nil {
		s.scraper.Close()
	}
	log.Println("News Polling Service stopped")
}
