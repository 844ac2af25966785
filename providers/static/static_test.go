package static

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/botirk38/semanticsim/similarity"
	"github.com/botirk38/semanticsim/types"
)

func TestStaticProvider(t *testing.T) {
	ctx := context.Background()
	provider := NewStaticProvider(StaticConfig{
		Vectors: map[string][]float32{"fixed": {3, 4}},
	})
	assert.Equal(t, "static/hash-384", provider.Name())

	_, err := provider.Embed(ctx, "hello", types.DefaultEmbedOptions())
	require.ErrorIs(t, err, types.ErrNotInitialized)
	require.NoError(t, provider.Initialize(ctx))

	t.Run("FixedVectors", func(t *testing.T) {
		emb, err := provider.Embed(ctx, "fixed", types.EmbedOptions{})
		require.NoError(t, err)
		assert.Equal(t, []float32{3, 4}, emb)

		emb[0] = 100
		again, _ := provider.Embed(ctx, "fixed", types.EmbedOptions{})
		assert.Equal(t, float32(3), again[0], "callers must not be able to mutate the table")
	})

	t.Run("Deterministic", func(t *testing.T) {
		a, err := provider.Embed(ctx, "The cat is sleeping", types.DefaultEmbedOptions())
		require.NoError(t, err)
		b, err := provider.Embed(ctx, "the CAT is sleeping!", types.DefaultEmbedOptions())
		require.NoError(t, err)
		assert.Len(t, a, DefaultDimensions)
		assert.Equal(t, a, b)
		assert.InDelta(t, 1.0, similarity.Norm(a), 1e-6)
	})

	t.Run("SharedWordsScoreHigher", func(t *testing.T) {
		base, _ := provider.Embed(ctx, "the cat is sleeping", types.DefaultEmbedOptions())
		near, _ := provider.Embed(ctx, "the cat is sleeping on the sofa", types.DefaultEmbedOptions())
		far, _ := provider.Embed(ctx, "quarterly revenue exceeded forecasts", types.DefaultEmbedOptions())

		nearScore, err := similarity.Cosine(base, near)
		require.NoError(t, err)
		farScore, err := similarity.Cosine(base, far)
		require.NoError(t, err)
		assert.Greater(t, nearScore, farScore)
	})

	t.Run("NoTokens", func(t *testing.T) {
		emb, err := provider.Embed(ctx, "  !!  ", types.DefaultEmbedOptions())
		require.NoError(t, err)
		_, err = similarity.Cosine(emb, emb)
		assert.ErrorIs(t, err, similarity.ErrDegenerateInput)
	})

	t.Run("Cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := provider.Embed(cctx, "hello", types.DefaultEmbedOptions())
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"it", "s", "a", "beautiful", "sunny", "day"}, Tokenize("It's a beautiful sunny day"))
	assert.Empty(t, Tokenize("..."))
}
