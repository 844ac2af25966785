package semanticsim

import (
	"context"
	"encoding/hex"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/botirk38/semanticsim/metrics"
	"github.com/botirk38/semanticsim/options"
	"github.com/botirk38/semanticsim/providers/chunked"
	"github.com/botirk38/semanticsim/similarity"
	"github.com/botirk38/semanticsim/types"
)

// Comparer scores the semantic similarity of phrase pairs using embeddings
// from a configurable provider.
type Comparer struct {
	provider    types.EmbeddingProvider
	cache       types.EmbeddingCache
	embedOpts   types.EmbedOptions
	concurrency int
	logger      *Logger
	metrics     *metrics.Collector

	initMu      sync.Mutex
	initialized atomic.Bool
}

// Pair is one unit of work for ComparePairs.
type Pair struct {
	TextA string `json:"textA"`
	TextB string `json:"textB"`
}

// Comparison is the outcome of comparing two phrases.
type Comparison struct {
	Score  float64          `json:"score"`
	Label  similarity.Label `json:"label"`
	Inputs Pair             `json:"inputs"`
}

// CompareResult holds the result of an async comparison.
type CompareResult struct {
	Comparison *Comparison
	Error      error
}

// New creates a Comparer with functional options. The provider is not
// contacted until Initialize is called.
func New(opts ...options.Option) (*Comparer, error) {
	cfg := options.NewConfig()

	if err := cfg.Apply(opts...); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	provider := cfg.Provider
	if cfg.Chunker != nil {
		provider = chunked.New(provider, cfg.Chunker)
	}

	logger := NoopLogger()
	if cfg.Logger != nil {
		logger = &Logger{Logger: cfg.Logger}
	}

	return &Comparer{
		provider:    provider,
		cache:       cfg.Cache,
		embedOpts:   cfg.EmbedOptions,
		concurrency: cfg.Concurrency,
		logger:      logger.WithProvider(provider.Name()),
		metrics:     cfg.Metrics,
	}, nil
}

// Initialize performs the provider's one-time setup. It is safe to call
// more than once; after the first success later calls return nil. A failed
// attempt leaves the Comparer uninitialized.
func (c *Comparer) Initialize(ctx context.Context) error {
	c.initMu.Lock()
	defer c.initMu.Unlock()

	if c.initialized.Load() {
		return nil
	}

	start := time.Now()
	err := c.provider.Initialize(ctx)
	c.logger.LogInitialize(ctx, time.Since(start), err)
	if err != nil {
		return &ProviderError{Provider: c.provider.Name(), Step: StepInitialize, Err: err}
	}

	c.initialized.Store(true)
	return nil
}

// Initialized reports whether Initialize has completed successfully.
func (c *Comparer) Initialized() bool {
	return c.initialized.Load()
}

// Embed returns the embedding of text, consulting the cache first when one
// is configured.
func (c *Comparer) Embed(ctx context.Context, text string) (types.Embedding, error) {
	if !c.initialized.Load() {
		return nil, ErrNotInitialized
	}

	key := c.cacheKey(text)
	if c.cache != nil {
		emb, found, err := c.cache.Get(ctx, key)
		if err != nil {
			c.logger.WarnContext(ctx, "embedding cache lookup failed", "error", err)
		}
		c.metrics.ObserveCache(found)
		if found {
			c.logger.LogEmbed(ctx, len(text), len(emb), true, nil)
			return emb, nil
		}
	}

	emb, err := c.provider.Embed(ctx, text, c.embedOpts)
	c.metrics.ObserveEmbedding(c.provider.Name(), err)
	c.logger.LogEmbed(ctx, len(text), len(emb), false, err)
	if err != nil {
		return nil, &ProviderError{Provider: c.provider.Name(), Step: StepEmbed, Err: err}
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, emb); err != nil {
			c.logger.WarnContext(ctx, "embedding cache store failed", "error", err)
		}
	}
	return emb, nil
}

// ComparePhrases embeds a and then b, and scores the two embeddings.
func (c *Comparer) ComparePhrases(ctx context.Context, a, b string) (*Comparison, error) {
	if !c.initialized.Load() {
		return nil, ErrNotInitialized
	}

	res, err := c.compare(ctx, a, b)
	if err != nil {
		c.logger.LogCompare(ctx, 0, "", err)
		return nil, err
	}

	c.metrics.ObserveComparison(res.Score, string(res.Label))
	c.logger.LogCompare(ctx, res.Score, string(res.Label), nil)
	return res, nil
}

func (c *Comparer) compare(ctx context.Context, a, b string) (*Comparison, error) {
	embA, err := c.Embed(ctx, a)
	if err != nil {
		return nil, &CompareError{Step: StepEmbed, Err: err}
	}
	embB, err := c.Embed(ctx, b)
	if err != nil {
		return nil, &CompareError{Step: StepEmbed, Err: err}
	}

	result, err := similarity.Score(embA, embB)
	if err != nil {
		return nil, &CompareError{Step: StepScore, Err: err}
	}

	return &Comparison{
		Score:  result.Score,
		Label:  result.Label,
		Inputs: Pair{TextA: a, TextB: b},
	}, nil
}

// ComparePairs compares independent pairs concurrently and returns the
// results in input order. The first failure cancels the remaining pairs.
func (c *Comparer) ComparePairs(ctx context.Context, pairs []Pair) ([]Comparison, error) {
	if !c.initialized.Load() {
		return nil, ErrNotInitialized
	}
	if len(pairs) == 0 {
		return nil, nil
	}

	start := time.Now()
	results := make([]Comparison, len(pairs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, p := range pairs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := c.ComparePhrases(gctx, p.TextA, p.TextB)
			if err != nil {
				return err
			}
			results[i] = *res
			return nil
		})
	}

	err := g.Wait()
	c.logger.LogBatch(ctx, len(pairs), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// ComparePhrasesAsync runs ComparePhrases in a goroutine.
// Returns a channel that will receive the result when complete.
func (c *Comparer) ComparePhrasesAsync(ctx context.Context, a, b string) <-chan CompareResult {
	resultCh := make(chan CompareResult, 1)
	go func() {
		defer close(resultCh)
		res, err := c.ComparePhrases(ctx, a, b)
		resultCh <- CompareResult{Comparison: res, Error: err}
	}()
	return resultCh
}

// Close releases the provider and the cache.
func (c *Comparer) Close() error {
	c.initMu.Lock()
	defer c.initMu.Unlock()

	c.initialized.Store(false)
	c.provider.Close()
	if c.cache != nil {
		return c.cache.Close()
	}
	return nil
}

// cacheKey digests the provider name, the embed options and the text.
// Provider names carry the model, any dimension override and the chunk
// windows, so differently configured comparers sharing a cache get
// distinct keys.
func (c *Comparer) cacheKey(text string) string {
	h := xxhash.New()
	_, _ = h.WriteString(c.provider.Name())
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(string(c.embedOpts.Pooling))
	_, _ = h.WriteString(strconv.FormatBool(c.embedOpts.Normalize))
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(text)
	return hex.EncodeToString(h.Sum(nil))
}
