package types

import "time"

// NewsSource identifies the outlet an article came from
type NewsSource struct {
	ID   *string `json:"id"`
	Name string  `json:"name"`
}

// NewsArticle represents a single article as returned by the aggregation API.
// Scraped is attached by the scraper when full-text enrichment succeeds; it is
// the only field this pipeline mutates.
type NewsArticle struct {
	Source      NewsSource      `json:"source"`
	Author      string          `json:"author,omitempty"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	URL         string          `json:"url"`
	URLToImage  string          `json:"urlToImage,omitempty"`
	PublishedAt *time.Time      `json:"publishedAt,omitempty"`
	Content     string          `json:"content,omitempty"`
	Scraped     *ScrapedContent `json:"scraped_content,omitempty"`
}

// Scraper identifiers recorded on ScrapedContent, in priority order
const (
	ScraperReadability = "readability"
	ScraperHeuristic   = "heuristic"
	ScraperMarkup      = "markup"
)

// ScrapedContent holds full-text content extracted from an article's page
type ScrapedContent struct {
	URL           string     `json:"url"`
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	Author        string     `json:"author,omitempty"`
	PublishedDate *time.Time `json:"published_date,omitempty"`
	Summary       string     `json:"summary,omitempty"`
	Keywords      []string   `json:"keywords,omitempty"`
	ScrapedAt     time.Time  `json:"scraped_at"`
	Scraper       string     `json:"scraper"`
}

// BatchMetadata identifies the origin of a fetched batch. It is attached by
// the fetch side and passed through to the publisher unchanged.
type BatchMetadata struct {
	Source   string `json:"source"`
	Country  string `json:"country,omitempty"`
	Category string `json:"category,omitempty"`
}

// NewsBatch is one API response worth of articles plus origin metadata
type NewsBatch struct {
	Status       string         `json:"status"`
	TotalResults int            `json:"totalResults"`
	Articles     []*NewsArticle `json:"articles"`
	Metadata     BatchMetadata  `json:"_metadata"`
}

// PollingJobConfig controls which headline queries a polling cycle issues
type PollingJobConfig struct {
	Countries       []string
	Categories      []string
	IntervalMinutes int
	MaxArticles     int
}

// DefaultPollingJobConfig returns the standard country/category matrix
func DefaultPollingJobConfig() PollingJobConfig {
	return PollingJobConfig{
		Countries:       []string{"us", "gb", "ca", "au"},
		Categories:      []string{"business", "technology", "science", "health"},
		IntervalMinutes: 15,
		MaxArticles:     100,
	}
}
