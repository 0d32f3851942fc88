package deduplication

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	connectTimeout = 5 * time.Second
	scanBatchSize  = 500
	maxSampleKeys  = 5
)

// RedisConfig configures the Redis-backed seen-store
type RedisConfig struct {
	Addr     string // e.g. localhost:6379
	Password string
	DB       int
	// KeyPrefix namespaces all dedup keys, e.g. "news:dedup"
	KeyPrefix string
	// TTL is the rolling window after which a seen article is forgotten
	TTL time.Duration
}

// RedisStore is a Redis-backed SeenStore. Each fingerprint maps to a JSON
// SeenRecord stored with a per-key TTL, so expiry is handled by Redis itself.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStoreFromEnv creates a RedisStore using environment variables
// REDIS_ADDR, REDIS_PASSWORD, REDIS_DB, REDIS_DEDUP_KEY_PREFIX and
// REDIS_DEDUP_TTL_HOURS.
func NewRedisStoreFromEnv() (*RedisStore, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	db := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			db = n
		}
	}
	prefix := os.Getenv("REDIS_DEDUP_KEY_PREFIX")
	if prefix == "" {
		prefix = "news:dedup"
	}
	ttl := DefaultTTL
	if v := os.Getenv("REDIS_DEDUP_TTL_HOURS"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil && hours >= 0 {
			ttl = time.Duration(hours) * time.Hour
		}
	}

	cfg := RedisConfig{Addr: addr, Password: os.Getenv("REDIS_PASSWORD"), DB: db, KeyPrefix: prefix, TTL: ttl}
	return NewRedisStore(cfg)
}

// NewRedisStore creates a RedisStore and verifies connectivity
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return &RedisStore{client: client, prefix: cfg.KeyPrefix, ttl: cfg.TTL}, nil
}

// TTL returns the configured rolling dedup window
func (r *RedisStore) TTL() time.Duration {
	return r.ttl
}

func (r *RedisStore) key(fingerprint string) string {
	return r.prefix + ":" + fingerprint
}

// Exists reports whether a non-expired record exists for the fingerprint.
// Expired keys have already been dropped by Redis.
func (r *RedisStore) Exists(ctx context.Context, fingerprint string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(fingerprint)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}

// MarkSeen stores the record under the fingerprint with the given TTL.
// Re-marking an already seen fingerprint resets its expiry window. A ttl of
// zero or less means the record is expired on arrival, so the key is removed
// instead: passing it to SET would make the key permanent.
func (r *RedisStore) MarkSeen(ctx context.Context, fingerprint string, record SeenRecord, ttl time.Duration) error {
	if ttl <= 0 {
		if err := r.client.Del(ctx, r.key(fingerprint)).Err(); err != nil {
			return fmt.Errorf("redis del: %w", err)
		}
		return nil
	}
	value, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal seen record: %w", err)
	}
	if err := r.client.Set(ctx, r.key(fingerprint), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Stats counts keys under the prefix via SCAN. The count is approximate with
// respect to concurrent writes.
func (r *RedisStore) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{KeyPrefix: r.prefix, TTL: r.ttl, TTLHours: r.ttl.Hours()}
	pattern := r.prefix + ":*"

	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return stats, fmt.Errorf("redis scan: %w", err)
		}
		for _, k := range keys {
			if len(stats.SampleKeys) < maxSampleKeys {
				stats.SampleKeys = append(stats.SampleKeys, k)
			}
		}
		stats.TotalKeys += len(keys)
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return stats, nil
}

// Clear deletes every key under the prefix and returns the deleted count
func (r *RedisStore) Clear(ctx context.Context) (int64, error) {
	pattern := r.prefix + ":*"
	var deleted int64

	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return deleted, fmt.Errorf("redis scan: %w", err)
		}
		if len(keys) > 0 {
			n, err := r.client.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, fmt.Errorf("redis del: %w", err)
			}
			deleted += n
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return deleted, nil
}

// Close closes the underlying Redis client
func (r *RedisStore) Close() error {
	return r.client.Close()
}
