package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces translation entries so one Redis instance can
// serve other tools without key collisions.
const DefaultKeyPrefix = "sitetrans:"

// opTimeout bounds a single Redis round trip. A slow or unreachable cache
// should degrade a run to cache-miss speed, not stall it.
const opTimeout = 5 * time.Second

// RedisCache stores translations in Redis so that repeated runs, or several
// build hosts translating the same site, share one translation memory.
//
// Keys are the source strings themselves, qualified with a prefix. Callers
// translating more than one language pair against the same instance should
// derive the prefix with PairPrefix so entries from different pairs never
// shadow each other.
type RedisCache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// RedisConfig configures a Redis-backed cache.
type RedisConfig struct {
	// URL is a redis:// connection string, e.g. "redis://localhost:6379/0".
	URL string
	// TTL is the entry lifetime in seconds. Zero or negative keeps entries forever.
	TTL int
	// KeyPrefix qualifies every key. Empty means DefaultKeyPrefix.
	KeyPrefix string
}

// PairPrefix returns a key prefix scoped to one language pair, letting a
// shared Redis instance hold several translation memories side by side.
func PairPrefix(source, target string) string {
	return DefaultKeyPrefix + strings.ToLower(source) + ":" + strings.ToLower(target) + ":"
}

// NewRedisCache connects to Redis and verifies the connection with a ping
// before the first document is processed.
func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, err
	}
	return NewRedisCacheFromClient(rdb, cfg.TTL, cfg.KeyPrefix), nil
}

// NewRedisCacheFromClient wraps an existing client, leaving its lifecycle to
// the caller.
func NewRedisCacheFromClient(rdb *redis.Client, ttlSeconds int, keyPrefix string) *RedisCache {
	c := &RedisCache{rdb: rdb, prefix: keyPrefix}
	if c.prefix == "" {
		c.prefix = DefaultKeyPrefix
	}
	if ttlSeconds > 0 {
		c.ttl = time.Duration(ttlSeconds) * time.Second
	}
	return c
}

// Get looks up a translation. Connection failures count as misses, so a
// broken cache costs provider calls rather than failing the run.
func (c *RedisCache) Get(key string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	val, err := c.rdb.Get(ctx, c.prefix+key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Set stores a translation under the configured TTL.
func (c *RedisCache) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return c.rdb.Set(ctx, c.prefix+key, value, c.ttl).Err()
}

// Ping checks that Redis is reachable.
func (c *RedisCache) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return c.rdb.Ping(ctx).Err()
}

// Close releases the underlying connection.
func (c *RedisCache) Close() error {
	return c.rdb.Close()
}

var _ TranslationCache = (*RedisCache)(nil)
