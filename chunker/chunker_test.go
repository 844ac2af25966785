package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  ChunkConfig
		wantErr error
	}{
		{"default", DefaultChunkConfig(), nil},
		{"no overlap", ChunkConfig{ChunkSize: 10}, nil},
		{"zero size", ChunkConfig{ChunkSize: 0}, ErrInvalidChunkSize},
		{"negative overlap", ChunkConfig{ChunkSize: 10, ChunkOverlap: -1}, ErrInvalidOverlap},
		{"overlap equals size", ChunkConfig{ChunkSize: 10, ChunkOverlap: 10}, ErrOverlapTooLarge},
		{"negative cap", ChunkConfig{ChunkSize: 10, MaxChunks: -1}, ErrInvalidMaxChunks},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFixedOverlapChunker(t *testing.T) {
	_, err := NewFixedOverlapChunker(ChunkConfig{ChunkSize: 4, ChunkOverlap: 4})
	require.ErrorIs(t, err, ErrOverlapTooLarge)

	c, err := NewFixedOverlapChunker(ChunkConfig{ChunkSize: 8, ChunkOverlap: 2})
	require.NoError(t, err)

	t.Run("empty text", func(t *testing.T) {
		_, err := c.ChunkText("")
		assert.ErrorIs(t, err, ErrEmptyText)

		n, err := c.CountTokens("")
		assert.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("short text is one chunk", func(t *testing.T) {
		chunks, err := c.ChunkText("Hello, world!")
		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.Equal(t, "Hello, world!", chunks[0].Text)
	})

	t.Run("long text overlaps", func(t *testing.T) {
		text := strings.Repeat("The cat is sleeping on the warm windowsill. ", 10)
		total, err := c.CountTokens(text)
		require.NoError(t, err)

		chunks, err := c.ChunkText(text)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(chunks), 2, "expected several chunks for %d tokens", total)

		for i, ch := range chunks {
			assert.Equal(t, i, ch.Index)
			assert.LessOrEqual(t, ch.EndToken-ch.StartToken, 8, "chunk %d", i)
			if i > 0 {
				assert.Equal(t, chunks[i-1].StartToken+6, ch.StartToken, "chunk %d stride", i)
			}
		}
		assert.Equal(t, total, chunks[len(chunks)-1].EndToken)
	})

	t.Run("max chunks caps output", func(t *testing.T) {
		capped, err := NewFixedOverlapChunker(ChunkConfig{ChunkSize: 8, ChunkOverlap: 2, MaxChunks: 2})
		require.NoError(t, err)

		chunks, err := capped.ChunkText(strings.Repeat("word ", 100))
		require.NoError(t, err)
		assert.Len(t, chunks, 2)
	})

	t.Run("config round-trips", func(t *testing.T) {
		assert.Equal(t, ChunkConfig{ChunkSize: 8, ChunkOverlap: 2}, c.Config())
	})
}
