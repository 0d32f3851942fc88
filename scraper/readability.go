package scraper

import (
	"bytes"
	"fmt"
	"net/url"
	"time"

	"newsflow/types"

	readability "github.com/go-shiori/go-readability"
)

// ReadabilityStrategy extracts article content using go-readability's
// content-density heuristics and page metadata. Best signal-to-noise of the
// chain, so it runs first.
type ReadabilityStrategy struct{}

// Name implements Strategy
func (s *ReadabilityStrategy) Name() string { return types.ScraperReadability }

// Extract implements Strategy
func (s *ReadabilityStrategy) Extract(pageURL string, body []byte) (*types.ScrapedContent, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid page URL: %w", err)
	}

	article, err := readability.FromReader(bytes.NewReader(body), parsed)
	if err != nil {
		return nil, fmt.Errorf("readability extraction failed: %w", err)
	}

	content := cleanText(article.TextContent)
	if content == "" {
		return nil, nil
	}

	return &types.ScrapedContent{
		URL:           pageURL,
		Title:         cleanText(article.Title),
		Content:       content,
		Author:        cleanText(article.Byline),
		PublishedDate: article.PublishedTime,
		Summary:       cleanText(article.Excerpt),
		ScrapedAt:     time.Now(),
	}, nil
}
