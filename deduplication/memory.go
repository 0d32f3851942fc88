package deduplication

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	record    SeenRecord
	expiresAt time.Time
}

// MemoryStore is an in-process SeenStore. It keeps the same query-time expiry
// contract as the Redis store: an expired key behaves as absent, with no
// background sweep guaranteed. Useful when Redis is not available and in tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	prefix  string
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory seen-store
func NewMemoryStore(keyPrefix string, ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		prefix:  keyPrefix,
		ttl:     ttl,
		now:     time.Now,
	}
}

// TTL returns the configured rolling dedup window
func (m *MemoryStore) TTL() time.Duration {
	return m.ttl
}

// Exists reports whether a non-expired record exists for the fingerprint
func (m *MemoryStore) Exists(_ context.Context, fingerprint string) (bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[fingerprint]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return m.now().Before(entry.expiresAt), nil
}

// MarkSeen inserts or overwrites the record with expiry now+ttl. A
// non-positive ttl produces an entry that is already expired.
func (m *MemoryStore) MarkSeen(_ context.Context, fingerprint string, record SeenRecord, ttl time.Duration) error {
	m.mu.Lock()
	m.entries[fingerprint] = memoryEntry{record: record, expiresAt: m.now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

// Stats counts non-expired entries. Expired leftovers are dropped lazily here
// since this is the one place that walks the whole map anyway.
func (m *MemoryStore) Stats(_ context.Context) (Stats, error) {
	now := m.now()
	stats := Stats{KeyPrefix: m.prefix, TTL: m.ttl, TTLHours: m.ttl.Hours()}

	m.mu.Lock()
	defer m.mu.Unlock()
	for fp, entry := range m.entries {
		if !now.Before(entry.expiresAt) {
			delete(m.entries, fp)
			continue
		}
		if len(stats.SampleKeys) < maxSampleKeys {
			stats.SampleKeys = append(stats.SampleKeys, m.prefix+":"+fp)
		}
		stats.TotalKeys++
	}
	return stats, nil
}

// Clear removes all entries and returns how many were present
func (m *MemoryStore) Clear(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := int64(len(m.entries))
	m.entries = make(map[string]memoryEntry)
	return n, nil
}

// Close is a no-op for the in-memory store
func (m *MemoryStore) Close() error { return nil }
