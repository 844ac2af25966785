package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/botirk38/semanticsim/pooling"
	"github.com/botirk38/semanticsim/types"
)

const (
	DefaultOpenAIModel = openai.EmbeddingModelTextEmbedding3Small
	DefaultChatModel   = "gpt-4o-mini"
)

// OpenAIProvider uses OpenAI's API to embed text and generate continuations.
type OpenAIProvider struct {
	config OpenAIConfig

	mu     sync.RWMutex
	client *openai.Client
}

// OpenAIConfig provides configuration options for the OpenAI provider
type OpenAIConfig struct {
	APIKey    string
	BaseURL   string
	OrgID     string
	Model     string
	ChatModel string
	// Dimensions truncates embeddings for models that support it. Zero keeps the model default.
	Dimensions int
	// MaxRetries is handed to the SDK. The default of zero disables SDK retries.
	MaxRetries int
	HTTPClient *http.Client
}

// NewOpenAIProvider creates a provider for OpenAI. The client is created by Initialize.
func NewOpenAIProvider(config OpenAIConfig) *OpenAIProvider {
	if config.Model == "" {
		config.Model = DefaultOpenAIModel
	}
	if config.ChatModel == "" {
		config.ChatModel = DefaultChatModel
	}
	return &OpenAIProvider{config: config}
}

// Name returns the provider and embedding model, with the truncated
// dimensionality when one is configured, e.g. "openai/text-embedding-3-small@256".
func (p *OpenAIProvider) Name() string {
	if p.config.Dimensions > 0 {
		return fmt.Sprintf("openai/%s@%d", p.config.Model, p.config.Dimensions)
	}
	return "openai/" + p.config.Model
}

// Initialize resolves the API key and builds the client.
// If the configured key is empty it uses os.Getenv("OPENAI_API_KEY").
func (p *OpenAIProvider) Initialize(ctx context.Context) error {
	apiKey := p.config.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return errors.New("OpenAI API key is required")
		}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(p.config.MaxRetries),
	}
	if p.config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(p.config.BaseURL))
	}
	if p.config.OrgID != "" {
		opts = append(opts, option.WithOrganization(p.config.OrgID))
	}
	if p.config.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(p.config.HTTPClient))
	}

	client := openai.NewClient(opts...)

	p.mu.Lock()
	p.client = &client
	p.mu.Unlock()
	return nil
}

func (p *OpenAIProvider) getClient() (*openai.Client, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.client == nil {
		return nil, types.ErrNotInitialized
	}
	return p.client, nil
}

// Embed sends the embedding request to OpenAI.
func (p *OpenAIProvider) Embed(ctx context.Context, text string, opts types.EmbedOptions) (types.Embedding, error) {
	client, err := p.getClient()
	if err != nil {
		return nil, err
	}

	params := openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(p.config.Model),
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: []string{text},
		},
	}
	if p.config.Dimensions > 0 {
		params.Dimensions = openai.Int(int64(p.config.Dimensions))
	}

	resp, err := client.Embeddings.New(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("no embedding returned by OpenAI")
	}

	// OpenAI returns []float64; convert to []float32
	embeddingF64 := resp.Data[0].Embedding
	embeddingF32 := make([]float32, len(embeddingF64))
	for i, v := range embeddingF64 {
		embeddingF32[i] = float32(v)
	}
	return pooling.Apply(embeddingF32, opts), nil
}

// Generate asks the chat model for a continuation of prompt.
func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, opts types.GenerateOptions) ([]types.Generation, error) {
	client, err := p.getClient()
	if err != nil {
		return nil, err
	}

	var messages []openai.ChatCompletionMessageParamUnion
	if opts.System != "" {
		messages = append(messages, openai.SystemMessage(opts.System))
	}
	messages = append(messages, openai.UserMessage(prompt))

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(p.config.ChatModel),
		Messages: messages,
	}
	if opts.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(opts.MaxTokens))
	}
	if opts.Temperature != 0 {
		params.Temperature = openai.Float(opts.Temperature)
	}

	resp, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned by OpenAI model %s", p.config.ChatModel)
	}

	out := make([]types.Generation, 0, len(resp.Choices))
	for _, choice := range resp.Choices {
		out = append(out, types.Generation{
			GeneratedText: choice.Message.Content,
			FinishReason:  choice.FinishReason,
		})
	}
	return out, nil
}

func (p *OpenAIProvider) Close() {}
