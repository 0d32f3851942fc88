package deduplication

import (
	"context"
	"log"
	"time"

	"newsflow/types"
)

// DefaultTTL is the rolling window during which a seen article stays a duplicate
const DefaultTTL = 24 * time.Hour

// Filter removes previously-seen articles from incoming batches using a
// SeenStore keyed by the title+source fingerprint.
type Filter struct {
	store SeenStore
	ttl   time.Duration
}

// NewFilter creates a duplicate filter over the given store. A ttl of zero or
// less means seen records expire immediately, so every article is novel.
func NewFilter(store SeenStore, ttl time.Duration) *Filter {
	return &Filter{store: store, ttl: ttl}
}

// IsDuplicate checks whether an article has been seen within the TTL window.
// A store error fails open: the article is treated as new so that cache
// unavailability never blocks the pipeline.
func (f *Filter) IsDuplicate(ctx context.Context, title, source string) bool {
	exists, err := f.store.Exists(ctx, Fingerprint(title, source))
	if err != nil {
		log.Printf("Warning: dedup store check failed, treating as new: %v", err)
		return false
	}
	return exists
}

// MarkSeen records an article as seen, resetting its TTL window. Errors are
// logged and swallowed: failing to record must not drop the article.
func (f *Filter) MarkSeen(ctx context.Context, article *types.NewsArticle) {
	record := SeenRecord{
		Title:  article.Title,
		Source: article.Source.Name,
		SeenAt: time.Now(),
		Data:   article,
	}
	fp := Fingerprint(article.Title, article.Source.Name)
	if err := f.store.MarkSeen(ctx, fp, record, f.ttl); err != nil {
		log.Printf("Warning: failed to mark article as seen: %v", err)
	}
}

// FilterDuplicates returns the articles not seen within the TTL window,
// preserving their relative order, and marks each survivor as seen. Articles
// without a title or source name cannot be fingerprinted and are dropped with
// a warning.
func (f *Filter) FilterDuplicates(ctx context.Context, articles []*types.NewsArticle) []*types.NewsArticle {
	if len(articles) == 0 {
		return nil
	}

	unique := make([]*types.NewsArticle, 0, len(articles))
	duplicates := 0

	for _, article := range articles {
		if article == nil || article.Title == "" || article.Source.Name == "" {
			log.Printf("Warning: skipping article missing title or source")
			continue
		}

		if f.IsDuplicate(ctx, article.Title, article.Source.Name) {
			duplicates++
			continue
		}

		f.MarkSeen(ctx, article)
		unique = append(unique, article)
	}

	if duplicates > 0 {
		log.Printf("Filtered out %d duplicate articles", duplicates)
	}
	log.Printf("Returning %d unique articles from %d total", len(unique), len(articles))
	return unique
}

// Stats exposes the backing store's counters for the admin API
func (f *Filter) Stats(ctx context.Context) (Stats, error) {
	return f.store.Stats(ctx)
}

// Clear wipes the dedup namespace; administrative reset only
func (f *Filter) Clear(ctx context.Context) (int64, error) {
	return f.store.Clear(ctx)
}
