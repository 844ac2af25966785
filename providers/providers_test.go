package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/botirk38/semanticsim/types"
)

func TestNewEmbeddingProvider(t *testing.T) {
	tests := []struct {
		providerType types.ProviderType
		wantName     string
		wantErr      bool
	}{
		{types.ProviderOpenAI, "openai/text-embedding-3-small", false},
		{types.ProviderGemini, "gemini/text-embedding-004", false},
		{types.ProviderOllama, "ollama/all-minilm", false},
		{types.ProviderStatic, "static/hash-384", false},
		{types.ProviderAnthropic, "", true},
		{"cohere", "", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.providerType), func(t *testing.T) {
			p, err := NewEmbeddingProvider(tt.providerType, Config{})
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedProvider)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.Name())
		})
	}
}

func TestNewGenerator(t *testing.T) {
	for _, pt := range []types.ProviderType{types.ProviderOpenAI, types.ProviderGemini, types.ProviderAnthropic, types.ProviderOllama} {
		g, err := NewGenerator(pt, Config{Model: "some-model"})
		require.NoError(t, err, pt)
		assert.NotNil(t, g)
	}

	_, err := NewGenerator(types.ProviderStatic, Config{})
	assert.ErrorIs(t, err, ErrUnsupportedProvider)
}

func TestNewGeneratorModelSelection(t *testing.T) {
	g, err := NewGenerator(types.ProviderAnthropic, Config{ChatModel: "claude-sonnet-4-0"})
	require.NoError(t, err)
	assert.Equal(t, "anthropic/claude-sonnet-4-0", g.Name())
}
