package semanticsim

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/botirk38/semanticsim/types"
)

func TestGenerateText(t *testing.T) {
	ctx := context.Background()

	t.Run("Defaults", func(t *testing.T) {
		gen := &mockGenerator{reply: "a lovely day in the village."}
		out, err := GenerateText(ctx, gen, "Once upon a time it was such", types.GenerateOptions{})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "Once upon a time it was such a lovely day in the village.", out[0].GeneratedText)
		assert.Equal(t, "stop", out[0].FinishReason)
		assert.Equal(t, DefaultMaxTokens, gen.lastOpts.MaxTokens)
		assert.Equal(t, continueInstruction, gen.lastOpts.System)
	})

	t.Run("ExplicitOptions", func(t *testing.T) {
		gen := &mockGenerator{reply: " more"}
		opts := types.GenerateOptions{MaxTokens: 5, Temperature: 0.7, System: "be brief"}
		out, err := GenerateText(ctx, gen, "one", opts)
		require.NoError(t, err)
		assert.Equal(t, "one more", out[0].GeneratedText)
		assert.Equal(t, opts, gen.lastOpts)
	})

	t.Run("EmptyPrompt", func(t *testing.T) {
		gen := &mockGenerator{}
		_, err := GenerateText(ctx, gen, "", types.GenerateOptions{})
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Empty(t, gen.prompts)
	})

	t.Run("ProviderFailure", func(t *testing.T) {
		gen := &mockGenerator{err: types.ErrNotInitialized}
		_, err := GenerateText(ctx, gen, "hello", types.GenerateOptions{})
		assert.ErrorIs(t, err, ErrNotInitialized)

		var perr *ProviderError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, StepGenerate, perr.Step)
		assert.False(t, errors.Is(err, ErrInvalidInput))
	})
}

func TestJoinContinuation(t *testing.T) {
	tests := []struct {
		prompt, cont, want string
	}{
		{"Hello", "world", "Hello world"},
		{"Hello ", "world", "Hello world"},
		{"Hello", " world", "Hello world"},
		{"Hello", ", world", "Hello, world"},
		{"Hello", "", "Hello"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, joinContinuation(tt.prompt, tt.cont))
	}
}
