package remote

import (
	"context"
	"crypto/tls"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/botirk38/semanticsim/types"
)

// DefaultPrefix namespaces cache keys.
const DefaultPrefix = "semanticsim:"

// RedisCache implements EmbeddingCache on Redis. Embeddings are stored as
// little-endian float32 bytes with an optional TTL.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// parseRedisURL parses a Redis URL and returns redis.Options
func parseRedisURL(connectionString string) (*redis.Options, error) {
	// Handle redis:// or rediss:// URLs
	if strings.HasPrefix(connectionString, "redis://") || strings.HasPrefix(connectionString, "rediss://") {
		parsedURL, err := url.Parse(connectionString)
		if err != nil {
			return nil, fmt.Errorf("invalid Redis URL: %w", err)
		}

		opts := &redis.Options{
			Addr: parsedURL.Host,
		}

		if parsedURL.Scheme == "rediss" {
			opts.TLSConfig = &tls.Config{
				MinVersion: tls.VersionTLS12,
			}
		}

		if parsedURL.User != nil {
			opts.Username = parsedURL.User.Username()
			if password, ok := parsedURL.User.Password(); ok {
				opts.Password = password
			}
		}

		// Extract database number from path
		if parsedURL.Path != "" && parsedURL.Path != "/" {
			dbStr := strings.TrimPrefix(parsedURL.Path, "/")
			db, err := strconv.Atoi(dbStr)
			if err != nil {
				return nil, fmt.Errorf("invalid Redis database %q: %w", dbStr, err)
			}
			opts.DB = db
		}

		return opts, nil
	}

	if connectionString == "" {
		connectionString = "localhost:6379"
	}
	return &redis.Options{
		Addr: connectionString,
	}, nil
}

// NewRedisCache connects to Redis and verifies the connection with PING.
func NewRedisCache(config types.CacheConfig) (*RedisCache, error) {
	opts, err := parseRedisURL(config.ConnectionString)
	if err != nil {
		return nil, err
	}

	// Override with explicit config values if provided
	if config.Username != "" {
		opts.Username = config.Username
	}
	if config.Password != "" {
		opts.Password = config.Password
	}
	if config.Database != 0 {
		opts.DB = config.Database
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisCacheWithClient(client, config), nil
}

// NewRedisCacheWithClient wraps an existing client. The cache takes ownership of it.
func NewRedisCacheWithClient(client *redis.Client, config types.CacheConfig) *RedisCache {
	prefix := config.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &RedisCache{
		client: client,
		prefix: prefix,
		ttl:    config.TTL,
	}
}

func (c *RedisCache) keyString(key string) string {
	return c.prefix + key
}

// Get retrieves an embedding from Redis
func (c *RedisCache) Get(ctx context.Context, key string) (types.Embedding, bool, error) {
	raw, err := c.client.Get(ctx, c.keyString(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get embedding from Redis: %w", err)
	}

	emb, err := bytesToFloats(raw)
	if err != nil {
		return nil, false, err
	}
	return emb, true, nil
}

// Set stores an embedding in Redis
func (c *RedisCache) Set(ctx context.Context, key string, embedding types.Embedding) error {
	if err := c.client.Set(ctx, c.keyString(key), floatsToBytes(embedding), c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set embedding in Redis: %w", err)
	}
	return nil
}

// Len counts keys with the configured prefix
func (c *RedisCache) Len(ctx context.Context) (int, error) {
	keys, err := c.scan(ctx)
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}

// Flush clears all entries with the configured prefix from Redis
func (c *RedisCache) Flush(ctx context.Context) error {
	keys, err := c.scan(ctx)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete keys from Redis: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) scan(ctx context.Context) ([]string, error) {
	pattern := c.prefix + "*"
	var keys []string
	var cursor uint64

	for {
		result, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan keys from Redis: %w", err)
		}
		keys = append(keys, result...)
		cursor = next
		if cursor == 0 {
			return keys, nil
		}
	}
}

// floatsToBytes converts a float32 slice to little-endian bytes for Redis storage
func floatsToBytes(fs []float32) []byte {
	buf := make([]byte, len(fs)*4)
	for i, f := range fs {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloats reverses floatsToBytes
func bytesToFloats(buf []byte) ([]float32, error) {
	if len(buf)%4 != 0 {
		return nil, fmt.Errorf("corrupt embedding in Redis: %d bytes is not a multiple of 4", len(buf))
	}
	fs := make([]float32, len(buf)/4)
	for i := range fs {
		fs[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return fs, nil
}
