package common

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"newsflow/types"
)

// objectStore is the slice of S3 the archiver uses
type objectStore interface {
	Put(ctx context.Context, bucket, key string, body io.Reader, contentType string) error
	Exists(ctx context.Context, bucket, key string) (bool, error)
}

// BatchArchiver writes published batches to S3 as JSON, one object per batch.
// Archival is best-effort: callers log failures and keep going.
type BatchArchiver struct {
	store  objectStore
	bucket string
	prefix string
	now    func() time.Time
}

// NewBatchArchiver creates an archiver targeting bucket with an optional key
// prefix (no leading/trailing slashes required).
func NewBatchArchiver(s3c *S3, bucket, prefix string) *BatchArchiver {
	return newBatchArchiverWithStore(s3c, bucket, prefix)
}

// newBatchArchiverWithStore wires any object store; used by tests
func newBatchArchiverWithStore(store objectStore, bucket, prefix string) *BatchArchiver {
	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	return &BatchArchiver{store: store, bucket: bucket, prefix: prefix, now: time.Now}
}

// Archive stores the batch under raw/<source>-<country>-<category>-<ts>.json.
// An object already present under the key is left alone, so re-running a
// cycle within the same second does not overwrite the earlier archive.
func (a *BatchArchiver) Archive(ctx context.Context, batch *types.NewsBatch) error {
	if batch == nil {
		return nil
	}

	body, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal batch: %w", err)
	}

	key := a.prefix + "raw/" + batchKey(batch.Metadata, a.now().UTC())
	if exists, err := a.store.Exists(ctx, a.bucket, key); err == nil && exists {
		return nil
	}
	if err := a.store.Put(ctx, a.bucket, key, bytes.NewReader(body), "application/json"); err != nil {
		return fmt.Errorf("archive batch to s3: %w", err)
	}
	return nil
}

func batchKey(meta types.BatchMetadata, ts time.Time) string {
	parts := []string{meta.Source}
	if meta.Country != "" {
		parts = append(parts, meta.Country)
	}
	if meta.Category != "" {
		parts = append(parts, meta.Category)
	}
	parts = append(parts, ts.Format("20060102T150405Z"))
	return sanitizeKey(strings.Join(parts, "-")) + ".json"
}

// sanitizeKey keeps object names to a safe character set
func sanitizeKey(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
