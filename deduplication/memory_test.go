package deduplication

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreExpiryIsQueryTime(t *testing.T) {
	now := time.Now()
	store := NewMemoryStore("news:dedup", time.Minute)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	if err := store.MarkSeen(ctx, "fp1", SeenRecord{Title: "t", Source: "s", SeenAt: now}, time.Minute); err != nil {
		t.Fatalf("mark seen failed: %v", err)
	}

	exists, err := store.Exists(ctx, "fp1")
	if err != nil || !exists {
		t.Fatalf("expected fp1 present before expiry, exists=%v err=%v", exists, err)
	}

	// Advance past the TTL without any sweep running
	now = now.Add(2 * time.Minute)
	exists, err = store.Exists(ctx, "fp1")
	if err != nil {
		t.Fatalf("exists failed: %v", err)
	}
	if exists {
		t.Fatal("expected fp1 absent after expiry")
	}
}

func TestMemoryStoreMarkSeenResetsTTL(t *testing.T) {
	now := time.Now()
	store := NewMemoryStore("news:dedup", time.Minute)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	record := SeenRecord{Title: "t", Source: "s", SeenAt: now}
	store.MarkSeen(ctx, "fp1", record, time.Minute)

	// Half the window later, re-mark; the window restarts (last-write-wins)
	now = now.Add(30 * time.Second)
	store.MarkSeen(ctx, "fp1", record, time.Minute)

	now = now.Add(45 * time.Second)
	exists, _ := store.Exists(ctx, "fp1")
	if !exists {
		t.Fatal("expected fp1 still present after TTL reset")
	}
}

func TestMemoryStoreStatsAndClear(t *testing.T) {
	store := NewMemoryStore("news:dedup", time.Hour)
	ctx := context.Background()

	for _, fp := range []string{"a", "b", "c"} {
		store.MarkSeen(ctx, fp, SeenRecord{SeenAt: time.Now()}, time.Hour)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.TotalKeys != 3 {
		t.Fatalf("expected 3 keys, got %d", stats.TotalKeys)
	}
	if stats.KeyPrefix != "news:dedup" {
		t.Fatalf("unexpected prefix %q", stats.KeyPrefix)
	}

	deleted, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if deleted != 3 {
		t.Fatalf("expected 3 deleted, got %d", deleted)
	}

	stats, _ = store.Stats(ctx)
	if stats.TotalKeys != 0 {
		t.Fatalf("expected empty store after clear, got %d", stats.TotalKeys)
	}
}
