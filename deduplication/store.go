package deduplication

import (
	"context"
	"time"

	"newsflow/types"
)

// SeenRecord is what a store keeps for each fingerprint
type SeenRecord struct {
	Title  string             `json:"title"`
	Source string             `json:"source"`
	SeenAt time.Time          `json:"seen_at"`
	Data   *types.NewsArticle `json:"data,omitempty"`
}

// Stats describes the current state of a seen-store namespace. Counts are
// approximate: they are not transactionally consistent with concurrent writes.
type Stats struct {
	TotalKeys  int           `json:"total_dedup_keys"`
	KeyPrefix  string        `json:"dedup_prefix"`
	TTL        time.Duration `json:"-"`
	TTLHours   float64       `json:"ttl_hours"`
	SampleKeys []string      `json:"sample_keys,omitempty"`
}

// SeenStore is the capability the duplicate filter needs from its backing
// store. Implementations must treat expired entries as absent and be safe for
// concurrent use.
type SeenStore interface {
	// Exists reports whether a non-expired record exists for the fingerprint.
	Exists(ctx context.Context, fingerprint string) (bool, error)
	// MarkSeen inserts or overwrites the record, resetting its TTL window.
	MarkSeen(ctx context.Context, fingerprint string, record SeenRecord, ttl time.Duration) error
	// Stats returns approximate counts for the store's namespace.
	Stats(ctx context.Context) (Stats, error)
	// Clear removes every record under the store's namespace and returns how
	// many were deleted. Administrative use only.
	Clear(ctx context.Context) (int64, error)
	Close() error
}
