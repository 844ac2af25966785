package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/botirk38/semanticsim/pooling"
	"github.com/botirk38/semanticsim/types"
)

const (
	DefaultEmbeddingModel = "text-embedding-004"
	DefaultChatModel      = "gemini-2.0-flash"

	// taskType tells the embedding model the vectors will be compared with each other.
	taskType = "SEMANTIC_SIMILARITY"
)

// GeminiConfig provides configuration options for the Gemini provider
type GeminiConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	ChatModel  string
	Dimensions int
	HTTPClient *http.Client
}

// GeminiProvider embeds and generates text with the Gemini API.
type GeminiProvider struct {
	config GeminiConfig

	mu     sync.RWMutex
	client *genai.Client
}

// NewGeminiProvider creates a provider for Gemini. The client is created by Initialize.
func NewGeminiProvider(config GeminiConfig) *GeminiProvider {
	if config.Model == "" {
		config.Model = DefaultEmbeddingModel
	}
	if config.ChatModel == "" {
		config.ChatModel = DefaultChatModel
	}
	return &GeminiProvider{config: config}
}

// Name returns the provider and embedding model, with the output
// dimensionality when one is configured.
func (p *GeminiProvider) Name() string {
	if p.config.Dimensions > 0 {
		return fmt.Sprintf("gemini/%s@%d", p.config.Model, p.config.Dimensions)
	}
	return "gemini/" + p.config.Model
}

// Initialize builds the client. If the configured key is empty it uses
// os.Getenv("GEMINI_API_KEY").
func (p *GeminiProvider) Initialize(ctx context.Context) error {
	apiKey := p.config.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			return errors.New("Gemini API key is required")
		}
	}

	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: p.config.HTTPClient,
	}
	if p.config.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: p.config.BaseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create gemini client: %w", err)
	}

	p.mu.Lock()
	p.client = client
	p.mu.Unlock()
	return nil
}

func (p *GeminiProvider) getClient() (*genai.Client, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.client == nil {
		return nil, types.ErrNotInitialized
	}
	return p.client, nil
}

// Embed requests a SEMANTIC_SIMILARITY embedding for text.
func (p *GeminiProvider) Embed(ctx context.Context, text string, opts types.EmbedOptions) (types.Embedding, error) {
	client, err := p.getClient()
	if err != nil {
		return nil, err
	}

	cfg := &genai.EmbedContentConfig{TaskType: taskType}
	if p.config.Dimensions > 0 {
		cfg.OutputDimensionality = genai.Ptr(int32(p.config.Dimensions))
	}

	resp, err := client.Models.EmbedContent(ctx, p.config.Model, genai.Text(text), cfg)
	if err != nil {
		return nil, err
	}
	if resp == nil || len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil {
		return nil, errors.New("no embedding returned by Gemini")
	}
	return pooling.Apply(resp.Embeddings[0].Values, opts), nil
}

// Generate asks the Gemini chat model for a continuation of prompt.
func (p *GeminiProvider) Generate(ctx context.Context, prompt string, opts types.GenerateOptions) ([]types.Generation, error) {
	client, err := p.getClient()
	if err != nil {
		return nil, err
	}

	cfg := &genai.GenerateContentConfig{}
	if opts.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(opts.MaxTokens)
	}
	if opts.Temperature != 0 {
		cfg.Temperature = genai.Ptr(float32(opts.Temperature))
	}
	if opts.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(opts.System, genai.RoleUser)
	}

	resp, err := client.Models.GenerateContent(ctx, p.config.ChatModel, genai.Text(prompt), cfg)
	if err != nil {
		return nil, err
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates returned by Gemini model %s", p.config.ChatModel)
	}

	out := make([]types.Generation, 0, len(resp.Candidates))
	for _, cand := range resp.Candidates {
		if cand == nil {
			continue
		}
		out = append(out, types.Generation{
			GeneratedText: candidateText(cand),
			FinishReason:  strings.ToLower(string(cand.FinishReason)),
		})
	}
	return out, nil
}

func candidateText(cand *genai.Candidate) string {
	if cand.Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}

func (p *GeminiProvider) Close() {}
