package inmemory

import (
	"context"
	"errors"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/botirk38/semanticsim/types"
)

// DefaultCapacity is used when CacheConfig.Capacity is not set.
const DefaultCapacity = 1024

// lruStore is the subset shared by lru.Cache and expirable.LRU.
type lruStore interface {
	Add(key string, value types.Embedding) bool
	Get(key string) (types.Embedding, bool)
	Len() int
	Purge()
}

// LRUCache implements EmbeddingCache using an LRU eviction policy,
// optionally expiring entries after CacheConfig.TTL.
type LRUCache struct {
	store lruStore
}

// NewLRUCache creates a new LRU cache
func NewLRUCache(config types.CacheConfig) (*LRUCache, error) {
	capacity := config.Capacity
	if capacity == 0 {
		capacity = DefaultCapacity
	}
	if capacity < 0 {
		return nil, errors.New("capacity must be positive")
	}

	if config.TTL > 0 {
		return &LRUCache{store: expirable.NewLRU[string, types.Embedding](capacity, nil, config.TTL)}, nil
	}

	c, err := lru.New[string, types.Embedding](capacity)
	if err != nil {
		return nil, err
	}
	return &LRUCache{store: c}, nil
}

// Get returns a copy of the cached embedding
func (c *LRUCache) Get(ctx context.Context, key string) (types.Embedding, bool, error) {
	emb, ok := c.store.Get(key)
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(emb), true, nil
}

// Set stores a copy of embedding
func (c *LRUCache) Set(ctx context.Context, key string, embedding types.Embedding) error {
	c.store.Add(key, slices.Clone(embedding))
	return nil
}

// Len returns the number of entries in the cache
func (c *LRUCache) Len(ctx context.Context) (int, error) {
	return c.store.Len(), nil
}

// Flush clears all entries from the cache
func (c *LRUCache) Flush(ctx context.Context) error {
	c.store.Purge()
	return nil
}

// Close closes the LRU cache (no-op for in-memory)
func (c *LRUCache) Close() error {
	return nil
}
