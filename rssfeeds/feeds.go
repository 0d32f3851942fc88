// Package rssfeeds is a secondary article source: configured RSS/Atom feeds
// are mapped into the same NewsBatch shape the aggregation API produces, so
// dedup, scraping and publishing treat both sources identically.
package rssfeeds

import (
	"context"
	"fmt"
	"log"
	"time"

	"newsflow/types"

	"github.com/mmcdole/gofeed"
)

// FetchFeed retrieves and parses one feed, returning up to maxCount articles.
// The feed title becomes the source name for dedup purposes.
func FetchFeed(ctx context.Context, feedURL string, maxCount int) ([]*types.NewsArticle, error) {
	parser := gofeed.NewParser()
	feed, err := parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	count := len(feed.Items)
	if maxCount > 0 && count > maxCount {
		count = maxCount
	}

	articles := make([]*types.NewsArticle, 0, count)
	for i := 0; i < count; i++ {
		item := feed.Items[i]

		var publishedAt *time.Time
		if item.PublishedParsed != nil {
			publishedAt = item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			publishedAt = item.UpdatedParsed
		}

		author := ""
		if item.Author != nil {
			author = item.Author.Name
		}

		articles = append(articles, &types.NewsArticle{
			Source:      types.NewsSource{Name: feed.Title},
			Author:      author,
			Title:       item.Title,
			Description: item.Description,
			URL:         item.Link,
			PublishedAt: publishedAt,
		})
	}
	return articles, nil
}

// BatchesForPolling fetches every configured feed as its own batch. Failures
// are logged and skipped, mirroring the news API polling behaviour.
func BatchesForPolling(ctx context.Context, feedURLs []string, maxArticles int) []*types.NewsBatch {
	var batches []*types.NewsBatch

	for _, feedURL := range feedURLs {
		articles, err := FetchFeed(ctx, feedURL, maxArticles)
		if err != nil {
			log.Printf("Failed to fetch RSS feed %s: %v", feedURL, err)
			continue
		}

		category := ""
		if len(articles) > 0 {
			category = articles[0].Source.Name
		}
		batches = append(batches, &types.NewsBatch{
			Status:       "ok",
			TotalResults: len(articles),
			Articles:     articles,
			Metadata:     types.BatchMetadata{Source: "rss", Category: category},
		})
		log.Printf("Fetched %d articles from RSS feed %s", len(articles), feedURL)
	}
	return batches
}
