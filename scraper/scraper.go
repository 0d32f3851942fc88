package scraper

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"newsflow/types"
)

// Delay between retry attempts for a single URL
const retryDelay = 1 * time.Second

// Browser-like headers sent with every page fetch
var defaultHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.5",
}

// Config holds scraper settings
type Config struct {
	// Timeout bounds each page fetch attempt
	Timeout time.Duration
	// MaxRetries is the number of fetch attempts per URL
	MaxRetries int
	// RateDelay is the pause applied per worker after every article,
	// success or not, to bound the request rate against source sites
	RateDelay time.Duration
	// Workers sizes the scraping worker pool; 1 reproduces strictly
	// sequential pacing
	Workers int
	// Strategies overrides the default extraction chain (mainly for tests)
	Strategies []Strategy
}

// Scraper fetches article pages and enriches articles with extracted full
// text. One Scraper owns one HTTP client for its whole lifetime.
type Scraper struct {
	client     *http.Client
	strategies []Strategy
	timeout    time.Duration
	maxRetries int
	rateDelay  time.Duration
	workers    int
}

// New creates a scraper, applying defaults for unset config fields
func New(cfg Config) *Scraper {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RateDelay < 0 {
		cfg.RateDelay = 0
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Strategies == nil {
		cfg.Strategies = DefaultStrategies()
	}

	return &Scraper{
		client:     &http.Client{},
		strategies: cfg.Strategies,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		rateDelay:  cfg.RateDelay,
		workers:    cfg.Workers,
	}
}

// isValidURL requires a scheme and a host
func isValidURL(raw string) bool {
	if raw == "" {
		return false
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return parsed.Scheme != "" && parsed.Host != ""
}

// fetchPage retrieves the page body with bounded retries. The first
// successful 2xx response with a body wins.
func (s *Scraper) fetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(retryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		body, err := s.fetchOnce(ctx, pageURL)
		if err == nil {
			return body, nil
		}
		lastErr = err
		log.Printf("Fetch attempt %d/%d failed for %s: %v", attempt, s.maxRetries, pageURL, err)

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("all %d fetch attempts failed: %w", s.maxRetries, lastErr)
}

func (s *Scraper) fetchOnce(ctx context.Context, pageURL string) ([]byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	for key, value := range defaultHeaders {
		req.Header.Set(key, value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// ScrapeArticle fetches one URL and runs the extraction chain. A nil result
// with nil error means extraction degraded gracefully to nothing.
func (s *Scraper) ScrapeArticle(ctx context.Context, pageURL string) (*types.ScrapedContent, error) {
	if !isValidURL(pageURL) {
		return nil, fmt.Errorf("invalid URL: %q", pageURL)
	}

	body, err := s.fetchPage(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}

	result := ExtractContent(pageURL, body, s.strategies)
	if result == nil {
		log.Printf("Failed to extract content from %s", pageURL)
		return nil, nil
	}

	log.Printf("Successfully scraped %s using %s", pageURL, result.Scraper)
	return result, nil
}

// ScrapeArticles enriches the batch in place using a bounded worker pool.
// One output per input: an article whose URL is invalid, whose fetch exhausts
// retries, or whose extraction misses is passed through unchanged. The rate
// delay is enforced per worker after every article regardless of outcome.
func (s *Scraper) ScrapeArticles(ctx context.Context, articles []*types.NewsArticle) []*types.NewsArticle {
	if len(articles) == 0 {
		return articles
	}

	var successes, failures int64
	jobs := make(chan *types.NewsArticle, len(articles))
	var wg sync.WaitGroup

	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for article := range jobs {
				if s.scrapeInto(ctx, article) {
					atomic.AddInt64(&successes, 1)
				} else {
					atomic.AddInt64(&failures, 1)
				}

				select {
				case <-time.After(s.rateDelay):
				case <-ctx.Done():
				}
			}
		}()
	}

	for _, article := range articles {
		jobs <- article
	}
	close(jobs)
	wg.Wait()

	log.Printf("Article scraping completed: %d successful, %d failed", successes, failures)
	return articles
}

// scrapeInto attaches extracted content to the article, reporting success
func (s *Scraper) scrapeInto(ctx context.Context, article *types.NewsArticle) bool {
	if article == nil {
		return false
	}
	if article.URL == "" {
		log.Printf("Warning: article missing URL: %s", article.Title)
		return false
	}

	scraped, err := s.ScrapeArticle(ctx, article.URL)
	if err != nil {
		log.Printf("Warning: %v", err)
		return false
	}
	if scraped == nil {
		return false
	}

	article.Scraped = scraped
	return true
}

// Close releases the scraper's network resources
func (s *Scraper) Close() {
	s.client.CloseIdleConnections()
}
