// Package newsapi wraps the external news aggregation API. It is a thin
// request/response mapping layer; the pipeline only depends on the NewsBatch
// shape it produces.
package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"newsflow/types"
)

const (
	endpointTopHeadlines = "/top-headlines"
	endpointEverything   = "/everything"
	endpointSources      = "/sources"

	requestTimeout = 30 * time.Second
	// Pause between category requests to stay under API rate limits
	interRequestDelay = 100 * time.Millisecond
	maxPageSize       = 100
)

// Client calls a NewsAPI-compatible aggregation service
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// apiError mirrors the API's error response body
type apiError struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// New creates a client for the given base URL, e.g. "https://newsapi.org/v2"
func New(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	params.Set("apiKey", c.apiKey)
	reqURL := c.baseURL + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	// The API reports errors in-band with status "error"
	var errResp apiError
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Status == "error" {
		return nil, fmt.Errorf("news API error: %s", errResp.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return body, nil
}

func (c *Client) getBatch(ctx context.Context, endpoint string, params url.Values) (*types.NewsBatch, error) {
	body, err := c.get(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}

	var batch types.NewsBatch
	if err := json.Unmarshal(body, &batch); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &batch, nil
}

// TopHeadlines fetches headlines for a country and optional category
func (c *Client) TopHeadlines(ctx context.Context, country, category string, pageSize int) (*types.NewsBatch, error) {
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	params := url.Values{}
	params.Set("country", country)
	params.Set("pageSize", strconv.Itoa(pageSize))
	if category != "" {
		params.Set("category", category)
	}
	return c.getBatch(ctx, endpointTopHeadlines, params)
}

// Everything searches all indexed articles for a query
func (c *Client) Everything(ctx context.Context, query, language, sortBy string, pageSize int) (*types.NewsBatch, error) {
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	if language == "" {
		language = "en"
	}
	if sortBy == "" {
		sortBy = "publishedAt"
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("language", language)
	params.Set("sortBy", sortBy)
	params.Set("pageSize", strconv.Itoa(pageSize))
	return c.getBatch(ctx, endpointEverything, params)
}

// SourcesResponse lists the outlets the API can serve
type SourcesResponse struct {
	Status  string `json:"status"`
	Sources []struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Category string `json:"category"`
		Language string `json:"language"`
		Country  string `json:"country"`
	} `json:"sources"`
}

// Sources fetches available news sources, optionally filtered
func (c *Client) Sources(ctx context.Context, category, language, country string) (*SourcesResponse, error) {
	params := url.Values{}
	if category != "" {
		params.Set("category", category)
	}
	if language != "" {
		params.Set("language", language)
	}
	if country != "" {
		params.Set("country", country)
	}

	body, err := c.get(ctx, endpointSources, params)
	if err != nil {
		return nil, err
	}

	var resp SourcesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode sources: %w", err)
	}
	return &resp, nil
}

// NewsForPolling fetches one batch per country (general headlines) plus one
// per country×category, tagging each batch's metadata. Individual request
// failures are logged and skipped; the cycle keeps whatever it got.
func (c *Client) NewsForPolling(ctx context.Context, job types.PollingJobConfig) []*types.NewsBatch {
	var batches []*types.NewsBatch

	for _, country := range job.Countries {
		general, err := c.TopHeadlines(ctx, country, "", job.MaxArticles)
		if err != nil {
			log.Printf("Failed to fetch general headlines for %s: %v", country, err)
		} else {
			general.Metadata = types.BatchMetadata{Source: "top_headlines", Country: country}
			batches = append(batches, general)
			log.Printf("Fetched %d general headlines for %s", general.TotalResults, country)
		}

		for _, category := range job.Categories {
			batch, err := c.TopHeadlines(ctx, country, category, job.MaxArticles)
			if err != nil {
				log.Printf("Failed to fetch %s headlines for %s: %v", category, country, err)
				continue
			}
			batch.Metadata = types.BatchMetadata{Source: "top_headlines", Country: country, Category: category}
			batches = append(batches, batch)
			log.Printf("Fetched %d %s headlines for %s", batch.TotalResults, category, country)

			select {
			case <-time.After(interRequestDelay):
			case <-ctx.Done():
				return batches
			}
		}
	}
	return batches
}
