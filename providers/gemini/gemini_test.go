package gemini

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/botirk38/semanticsim/similarity"
	"github.com/botirk38/semanticsim/types"
)

func TestGeminiProviderLifecycle(t *testing.T) {
	provider := NewGeminiProvider(GeminiConfig{})
	assert.Equal(t, "gemini/"+DefaultEmbeddingModel, provider.Name())
	assert.Equal(t, "gemini/"+DefaultEmbeddingModel+"@256", NewGeminiProvider(GeminiConfig{Dimensions: 256}).Name())

	_, err := provider.Embed(context.Background(), "hello", types.DefaultEmbedOptions())
	assert.ErrorIs(t, err, types.ErrNotInitialized)

	_, err = provider.Generate(context.Background(), "hello", types.GenerateOptions{})
	assert.ErrorIs(t, err, types.ErrNotInitialized)

	t.Setenv("GEMINI_API_KEY", "")
	assert.Error(t, provider.Initialize(context.Background()))
}

func TestCandidateText(t *testing.T) {
	cand := &genai.Candidate{Content: &genai.Content{Parts: []*genai.Part{{Text: "a good "}, nil, {Text: "day"}}}}
	assert.Equal(t, "a good day", candidateText(cand))
	assert.Equal(t, "", candidateText(&genai.Candidate{}))
}

func TestGeminiProviderLive(t *testing.T) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set, skipping Gemini provider tests")
	}

	provider := NewGeminiProvider(GeminiConfig{APIKey: apiKey})
	require.NoError(t, provider.Initialize(context.Background()))
	defer provider.Close()

	a, err := provider.Embed(context.Background(), "I love programming", types.DefaultEmbedOptions())
	require.NoError(t, err)
	b, err := provider.Embed(context.Background(), "I enjoy writing code", types.DefaultEmbedOptions())
	require.NoError(t, err)

	assert.InDelta(t, 1.0, similarity.Norm(a), 1e-3)
	score, err := similarity.Cosine(a, b)
	require.NoError(t, err)
	assert.Greater(t, score, 0.5)
}
