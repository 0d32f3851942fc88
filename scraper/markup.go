package scraper

import (
	"bytes"
	"fmt"
	"time"

	"newsflow/types"

	"github.com/PuerkitoBio/goquery"
)

// Elements stripped before probing for content
const chromeSelectors = "script, style, nav, header, footer, aside"

// Content containers probed in order; the first with non-empty text wins
var contentSelectors = []string{
	"article",
	`[role="main"]`,
	".content",
	".article-content",
	".post-content",
	".entry-content",
	"main",
}

// MarkupStrategy is the last-resort extractor: strip page chrome, probe a
// fixed list of content containers, and fall back to whole-page text when
// none match.
type MarkupStrategy struct{}

// Name implements Strategy
func (s *MarkupStrategy) Name() string { return types.ScraperMarkup }

// Extract implements Strategy
func (s *MarkupStrategy) Extract(pageURL string, body []byte) (*types.ScrapedContent, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc.Find(chromeSelectors).Remove()

	var content string
	for _, selector := range contentSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		if content = cleanText(sel.Text()); content != "" {
			break
		}
	}
	if content == "" {
		content = cleanText(doc.Text())
	}
	if content == "" {
		return nil, nil
	}

	var title string
	for _, selector := range []string{"title", "h1", "h2"} {
		if title = cleanText(doc.Find(selector).First().Text()); title != "" {
			break
		}
	}

	return &types.ScrapedContent{
		URL:       pageURL,
		Title:     title,
		Content:   content,
		ScrapedAt: time.Now(),
	}, nil
}
