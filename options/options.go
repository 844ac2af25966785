// Package options provides functional options for configuring a Comparer.
package options

import (
	"errors"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/botirk38/semanticsim/backends"
	"github.com/botirk38/semanticsim/chunker"
	"github.com/botirk38/semanticsim/metrics"
	"github.com/botirk38/semanticsim/providers/gemini"
	"github.com/botirk38/semanticsim/providers/ollama"
	"github.com/botirk38/semanticsim/providers/openai"
	"github.com/botirk38/semanticsim/providers/static"
	"github.com/botirk38/semanticsim/types"
)

// DefaultConcurrency bounds ComparePairs when WithConcurrency is not used.
const DefaultConcurrency = 4

// Option represents a configuration option for a Comparer
type Option func(*Config) error

// Config holds the configuration for building a Comparer
type Config struct {
	Provider     types.EmbeddingProvider
	Cache        types.EmbeddingCache
	EmbedOptions types.EmbedOptions
	Chunker      chunker.Chunker
	Concurrency  int
	Logger       *slog.Logger
	Metrics      *metrics.Collector
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		EmbedOptions: types.DefaultEmbedOptions(),
		Concurrency:  DefaultConcurrency,
	}
}

// Apply applies all the given options to the config
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Provider == nil {
		return errors.New("embedding provider is required - use WithOpenAIProvider, WithOllamaProvider, etc.")
	}
	if c.Concurrency <= 0 {
		return errors.New("concurrency must be positive")
	}
	return nil
}

// WithOpenAIProvider sets up the OpenAI embedding provider
func WithOpenAIProvider(apiKey string, model ...string) Option {
	return func(cfg *Config) error {
		config := openai.OpenAIConfig{
			APIKey: apiKey,
		}
		if len(model) > 0 {
			config.Model = model[0]
		}
		cfg.Provider = openai.NewOpenAIProvider(config)
		return nil
	}
}

// WithGeminiProvider sets up the Gemini embedding provider
func WithGeminiProvider(apiKey string, model ...string) Option {
	return func(cfg *Config) error {
		config := gemini.GeminiConfig{
			APIKey: apiKey,
		}
		if len(model) > 0 {
			config.Model = model[0]
		}
		cfg.Provider = gemini.NewGeminiProvider(config)
		return nil
	}
}

// WithOllamaProvider sets up an Ollama embedding provider. An empty baseURL
// means the local default.
func WithOllamaProvider(baseURL string, model ...string) Option {
	return func(cfg *Config) error {
		config := ollama.OllamaConfig{
			BaseURL: baseURL,
		}
		if len(model) > 0 {
			config.EmbedModel = model[0]
		}
		cfg.Provider = ollama.NewOllamaProvider(config)
		return nil
	}
}

// WithStaticProvider sets up the offline hashing provider with optional fixed vectors
func WithStaticProvider(vectors map[string][]float32) Option {
	return func(cfg *Config) error {
		cfg.Provider = static.NewStaticProvider(static.StaticConfig{Vectors: vectors})
		return nil
	}
}

// WithCustomProvider allows using a pre-configured embedding provider
func WithCustomProvider(provider types.EmbeddingProvider) Option {
	return func(cfg *Config) error {
		if provider == nil {
			return errors.New("provider cannot be nil")
		}
		cfg.Provider = provider
		return nil
	}
}

// WithEmbedOptions sets the pooling and normalization passed to the provider
func WithEmbedOptions(opts types.EmbedOptions) Option {
	return func(cfg *Config) error {
		switch opts.Pooling {
		case types.PoolingNone, types.PoolingMean, types.PoolingMax:
		default:
			return errors.New("unsupported pooling: " + string(opts.Pooling))
		}
		cfg.EmbedOptions = opts
		return nil
	}
}

// WithChunking splits inputs longer than one token window and pools the window embeddings
func WithChunking(config chunker.ChunkConfig) Option {
	return func(cfg *Config) error {
		c, err := chunker.NewFixedOverlapChunker(config)
		if err != nil {
			return err
		}
		cfg.Chunker = c
		return nil
	}
}

// WithLRUCache caches embeddings in memory
func WithLRUCache(config types.CacheConfig) Option {
	return func(cfg *Config) error {
		cache, err := backends.NewLRUCache(config)
		if err != nil {
			return err
		}
		cfg.Cache = cache
		return nil
	}
}

// WithRedisCache caches embeddings in Redis
func WithRedisCache(config types.CacheConfig) Option {
	return func(cfg *Config) error {
		cache, err := backends.NewRedisCache(config)
		if err != nil {
			return err
		}
		cfg.Cache = cache
		return nil
	}
}

// WithCustomCache allows using a pre-configured embedding cache
func WithCustomCache(cache types.EmbeddingCache) Option {
	return func(cfg *Config) error {
		if cache == nil {
			return errors.New("cache cannot be nil")
		}
		cfg.Cache = cache
		return nil
	}
}

// WithConcurrency bounds how many pairs ComparePairs works on at once
func WithConcurrency(n int) Option {
	return func(cfg *Config) error {
		if n <= 0 {
			return errors.New("concurrency must be positive")
		}
		cfg.Concurrency = n
		return nil
	}
}

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *Config) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.Logger = logger
		return nil
	}
}

// WithMetrics registers Prometheus collectors with reg
func WithMetrics(reg prometheus.Registerer) Option {
	return func(cfg *Config) error {
		collector, err := metrics.New(reg)
		if err != nil {
			return err
		}
		cfg.Metrics = collector
		return nil
	}
}
