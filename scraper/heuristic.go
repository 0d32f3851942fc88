package scraper

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"newsflow/types"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
)

// Paragraphs shorter than this are treated as navigation/caption noise
const minParagraphLen = 60

// HeuristicStrategy targets news-article-shaped pages: it reads bylines and
// publish dates from the usual metadata locations, derives keywords from meta
// tags and builds the body from substantial paragraphs.
type HeuristicStrategy struct{}

// Name implements Strategy
func (s *HeuristicStrategy) Name() string { return types.ScraperHeuristic }

// Extract implements Strategy
func (s *HeuristicStrategy) Extract(pageURL string, body []byte) (*types.ScrapedContent, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	paragraphs := collectParagraphs(doc)
	if len(paragraphs) == 0 {
		return nil, nil
	}

	result := &types.ScrapedContent{
		URL:           pageURL,
		Title:         findTitle(doc),
		Content:       strings.Join(paragraphs, " "),
		Author:        findByline(doc),
		PublishedDate: findPublishDate(doc),
		Summary:       paragraphs[0],
		Keywords:      findKeywords(doc),
		ScrapedAt:     time.Now(),
	}
	return result, nil
}

func collectParagraphs(doc *goquery.Document) []string {
	var paragraphs []string
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		text := cleanText(sel.Text())
		if len(text) >= minParagraphLen {
			paragraphs = append(paragraphs, text)
		}
	})
	return paragraphs
}

func findTitle(doc *goquery.Document) string {
	if og := doc.Find(`meta[property="og:title"]`).First().AttrOr("content", ""); og != "" {
		return cleanText(og)
	}
	if h1 := cleanText(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	return cleanText(doc.Find("title").First().Text())
}

// Byline locations, most specific first
var bylineSelectors = []string{
	`meta[name="author"]`,
	`[rel="author"]`,
	".byline",
	".author",
}

func findByline(doc *goquery.Document) string {
	for _, selector := range bylineSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		value := sel.AttrOr("content", "")
		if value == "" {
			value = sel.Text()
		}
		if cleaned := cleanText(value); cleaned != "" {
			return cleaned
		}
	}
	return ""
}

// Publish-date locations, most specific first
var dateSelectors = []struct {
	selector string
	attr     string
}{
	{`meta[property="article:published_time"]`, "content"},
	{`meta[name="date"]`, "content"},
	{`meta[itemprop="datePublished"]`, "content"},
	{"time", "datetime"},
}

func findPublishDate(doc *goquery.Document) *time.Time {
	for _, candidate := range dateSelectors {
		raw := doc.Find(candidate.selector).First().AttrOr(candidate.attr, "")
		if raw == "" {
			continue
		}
		if parsed, err := dateparse.ParseAny(raw); err == nil {
			return &parsed
		}
	}
	return nil
}

func findKeywords(doc *goquery.Document) []string {
	raw := doc.Find(`meta[name="keywords"]`).First().AttrOr("content", "")
	if raw == "" {
		return nil
	}
	var keywords []string
	for _, kw := range strings.Split(raw, ",") {
		if cleaned := cleanText(kw); cleaned != "" {
			keywords = append(keywords, cleaned)
		}
	}
	return keywords
}
