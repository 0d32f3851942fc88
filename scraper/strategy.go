package scraper

import (
	"log"

	"newsflow/types"
)

// Strategy attempts to pull structured article content out of raw page markup.
// Implementations are best-effort: an error or empty content simply means "no
// result" and the next strategy in the chain gets a turn.
type Strategy interface {
	Name() string
	Extract(pageURL string, body []byte) (*types.ScrapedContent, error)
}

// DefaultStrategies returns the extraction chain in priority order:
// structured-content extraction first, site-pattern heuristics second, generic
// markup probing last.
func DefaultStrategies() []Strategy {
	return []Strategy{
		&ReadabilityStrategy{},
		&HeuristicStrategy{},
		&MarkupStrategy{},
	}
}

// ExtractContent runs the strategies in order and returns the first result
// with non-empty cleaned content, or nil when every strategy comes up empty.
// Strategy failures never propagate as errors.
func ExtractContent(pageURL string, body []byte, strategies []Strategy) *types.ScrapedContent {
	for _, strategy := range strategies {
		result, err := strategy.Extract(pageURL, body)
		if err != nil {
			log.Printf("Strategy %s failed for %s: %v", strategy.Name(), pageURL, err)
			continue
		}
		if result == nil || result.Content == "" {
			continue
		}
		result.Scraper = strategy.Name()
		return result
	}
	return nil
}
