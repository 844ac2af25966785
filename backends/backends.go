// Package backends creates embedding caches by type.
package backends

import (
	"errors"

	"github.com/botirk38/semanticsim/backends/inmemory"
	"github.com/botirk38/semanticsim/backends/remote"
	"github.com/botirk38/semanticsim/types"
)

var ErrUnsupportedBackend = errors.New("unsupported backend type")

// NewCache creates a new embedding cache of the specified type
func NewCache(cacheType types.CacheType, config types.CacheConfig) (types.EmbeddingCache, error) {
	switch cacheType {
	case types.CacheLRU:
		return NewLRUCache(config)
	case types.CacheRedis:
		return NewRedisCache(config)
	default:
		return nil, ErrUnsupportedBackend
	}
}

// NewLRUCache creates a new in-memory LRU cache
func NewLRUCache(config types.CacheConfig) (types.EmbeddingCache, error) {
	return inmemory.NewLRUCache(config)
}

// NewRedisCache creates a new Redis cache
func NewRedisCache(config types.CacheConfig) (types.EmbeddingCache, error) {
	return remote.NewRedisCache(config)
}
