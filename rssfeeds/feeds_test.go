package rssfeeds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
	<title>Example Wire</title>
	<link>https://example.com</link>
	<item>
		<title>First Item</title>
		<link>https://example.com/1</link>
		<description>Summary one</description>
		<pubDate>Fri, 01 Mar 2024 10:00:00 GMT</pubDate>
		<author>alice@example.com (Alice)</author>
	</item>
	<item>
		<title>Second Item</title>
		<link>https://example.com/2</link>
		<description>Summary two</description>
	</item>
	<item>
		<title>Third Item</title>
		<link>https://example.com/3</link>
	</item>
</channel>
</rss>`

func newFeedServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bad" {
			http.Error(w, "gone", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleFeed))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFetchFeedMapsItems(t *testing.T) {
	server := newFeedServer(t)

	articles, err := FetchFeed(context.Background(), server.URL+"/feed.xml", 2)
	if err != nil {
		t.Fatalf("fetch feed failed: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected maxCount to cap at 2 articles, got %d", len(articles))
	}

	first := articles[0]
	if first.Source.Name != "Example Wire" {
		t.Fatalf("feed title should become source name, got %q", first.Source.Name)
	}
	if first.Title != "First Item" || first.URL != "https://example.com/1" {
		t.Fatalf("unexpected mapping: %+v", first)
	}
	if first.PublishedAt == nil {
		t.Fatal("expected pubDate parsed")
	}
	if first.Author != "Alice" {
		t.Fatalf("unexpected author %q", first.Author)
	}

	if articles[1].PublishedAt != nil {
		t.Fatal("item without dates should have nil publishedAt")
	}
}

func TestBatchesForPollingSkipsFailingFeeds(t *testing.T) {
	server := newFeedServer(t)

	batches := BatchesForPolling(context.Background(), []string{
		server.URL + "/feed.xml",
		server.URL + "/bad",
	}, 10)

	if len(batches) != 1 {
		t.Fatalf("expected failing feed to be skipped, got %d batches", len(batches))
	}

	batch := batches[0]
	if batch.Metadata.Source != "rss" {
		t.Fatalf("unexpected metadata source %q", batch.Metadata.Source)
	}
	if batch.TotalResults != 3 || len(batch.Articles) != 3 {
		t.Fatalf("unexpected batch size: totalResults=%d articles=%d", batch.TotalResults, len(batch.Articles))
	}
}
