package types

import (
	"context"
	"errors"
	"time"
)

// ErrNotInitialized is returned when a provider or comparer is used before Initialize.
var ErrNotInitialized = errors.New("provider not initialized: call Initialize first")

// Embedding is a fixed-length vector produced by an embedding model.
type Embedding = []float32

// Pooling selects how token or chunk level vectors are reduced to one embedding.
type Pooling string

const (
	PoolingNone Pooling = "none"
	PoolingMean Pooling = "mean"
	PoolingMax  Pooling = "max"
)

// EmbedOptions controls how an embedding is produced.
type EmbedOptions struct {
	Pooling   Pooling
	Normalize bool
}

// DefaultEmbedOptions returns mean pooling with L2 normalization.
func DefaultEmbedOptions() EmbedOptions {
	return EmbedOptions{
		Pooling:   PoolingMean,
		Normalize: true,
	}
}

// Provider is the lifecycle every inference backend shares.
type Provider interface {
	// Name identifies the provider and model, e.g. "openai/text-embedding-3-small".
	Name() string
	// Initialize performs the one-time setup (client creation, model checks).
	Initialize(ctx context.Context) error
	// Close frees any resources held by the provider.
	Close()
}

// EmbeddingProvider defines the interface all embedding providers must satisfy.
type EmbeddingProvider interface {
	Provider
	// Embed turns a piece of text into its embedding vector.
	Embed(ctx context.Context, text string, opts EmbedOptions) (Embedding, error)
}

// GenerateOptions configures a text generation request.
type GenerateOptions struct {
	// MaxTokens bounds the length of the continuation.
	MaxTokens int
	// Temperature is passed through when non-zero.
	Temperature float64
	// System is an optional system instruction.
	System string
}

// Generation is a single generated sequence. Providers return the
// continuation only; semanticsim.GenerateText prefixes the prompt.
type Generation struct {
	GeneratedText string `json:"generated_text"`
	FinishReason  string `json:"finish_reason,omitempty"`
}

// Generator produces text continuations.
type Generator interface {
	Provider
	Generate(ctx context.Context, prompt string, opts GenerateOptions) ([]Generation, error)
}

// Sentiment is a classification label with its confidence.
type Sentiment struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

const (
	SentimentPositive = "POSITIVE"
	SentimentNegative = "NEGATIVE"
)

// EmbeddingCache stores embeddings keyed by a digest of provider, options and text.
type EmbeddingCache interface {
	// Get retrieves an embedding by key
	Get(ctx context.Context, key string) (Embedding, bool, error)

	// Set stores an embedding
	Set(ctx context.Context, key string, embedding Embedding) error

	// Len returns the number of entries in the cache
	Len(ctx context.Context) (int, error)

	// Flush clears all entries from the cache
	Flush(ctx context.Context) error

	// Close closes the cache and releases resources
	Close() error
}

// CacheConfig provides configuration options for embedding caches
type CacheConfig struct {
	// For in-memory caches
	Capacity int
	TTL      time.Duration

	// For Redis
	ConnectionString string
	Username         string
	Password         string
	Database         int
	Prefix           string
}

// CacheType represents the type of embedding cache
type CacheType string

const (
	CacheLRU   CacheType = "lru"
	CacheRedis CacheType = "redis"
)

// ProviderType represents the type of inference provider
type ProviderType string

const (
	ProviderOpenAI    ProviderType = "openai"
	ProviderGemini    ProviderType = "gemini"
	ProviderAnthropic ProviderType = "anthropic"
	ProviderOllama    ProviderType = "ollama"
	ProviderStatic    ProviderType = "static"
)
