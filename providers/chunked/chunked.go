// Package chunked wraps an embedding provider so that long inputs are split into
// token windows, embedded window by window and pooled into a single vector.
package chunked

import (
	"context"
	"fmt"

	"github.com/botirk38/semanticsim/chunker"
	"github.com/botirk38/semanticsim/pooling"
	"github.com/botirk38/semanticsim/types"
)

// Provider decorates an inner embedding provider with chunking and pooling.
type Provider struct {
	inner   types.EmbeddingProvider
	chunker chunker.Chunker
}

// New wraps inner. Texts that fit one window are passed straight through.
func New(inner types.EmbeddingProvider, c chunker.Chunker) *Provider {
	return &Provider{inner: inner, chunker: c}
}

// Name appends the window settings to the inner provider's name, since
// chunked and unchunked embeddings of a long text differ.
func (p *Provider) Name() string {
	cfg := p.chunker.Config()
	return fmt.Sprintf("%s+chunks(%d/%d/%d)", p.inner.Name(), cfg.ChunkSize, cfg.ChunkOverlap, cfg.MaxChunks)
}

func (p *Provider) Initialize(ctx context.Context) error {
	return p.inner.Initialize(ctx)
}

func (p *Provider) Close() {
	p.inner.Close()
}

// Embed chunks text, embeds each chunk without normalization, pools the chunk
// vectors with opts.Pooling and finally normalizes if opts.Normalize is set.
func (p *Provider) Embed(ctx context.Context, text string, opts types.EmbedOptions) (types.Embedding, error) {
	if text == "" {
		return p.inner.Embed(ctx, text, opts)
	}

	chunks, err := p.chunker.ChunkText(text)
	if err != nil {
		return nil, fmt.Errorf("chunk input: %w", err)
	}
	if len(chunks) == 1 {
		return p.inner.Embed(ctx, chunks[0].Text, opts)
	}

	raw := types.EmbedOptions{Pooling: opts.Pooling}
	vectors := make([][]float32, 0, len(chunks))
	for _, ch := range chunks {
		v, err := p.inner.Embed(ctx, ch.Text, raw)
		if err != nil {
			return nil, fmt.Errorf("embed chunk %d/%d: %w", ch.Index+1, len(chunks), err)
		}
		vectors = append(vectors, v)
	}

	strategy := opts.Pooling
	if strategy == types.PoolingNone {
		// Nothing to reduce with; fall back to the average of the windows.
		strategy = types.PoolingMean
	}
	pooled, err := pooling.Pool(strategy, vectors)
	if err != nil {
		return nil, err
	}
	return pooling.Apply(pooled, opts), nil
}
