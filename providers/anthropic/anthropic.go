package anthropic

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/botirk38/semanticsim/types"
)

const (
	DefaultModel = "claude-3-5-haiku-latest"

	// defaultMaxTokens is required by the Messages API.
	defaultMaxTokens = 256
)

// AnthropicConfig provides configuration options for the Anthropic provider
type AnthropicConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	MaxRetries int
	HTTPClient *http.Client
}

// AnthropicProvider generates text with Anthropic's Messages API.
// Anthropic has no embedding endpoint, so it only implements types.Generator.
type AnthropicProvider struct {
	config AnthropicConfig

	mu     sync.RWMutex
	client *anthropic.Client
}

// NewAnthropicProvider creates a provider for Anthropic. The client is created by Initialize.
func NewAnthropicProvider(config AnthropicConfig) *AnthropicProvider {
	if config.Model == "" {
		config.Model = DefaultModel
	}
	return &AnthropicProvider{config: config}
}

// Name returns the provider and model.
func (p *AnthropicProvider) Name() string {
	return "anthropic/" + p.config.Model
}

// Initialize builds the client. If the configured key is empty it uses
// os.Getenv("ANTHROPIC_API_KEY").
func (p *AnthropicProvider) Initialize(ctx context.Context) error {
	apiKey := p.config.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return errors.New("Anthropic API key is required")
		}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(p.config.MaxRetries),
	}
	if p.config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(p.config.BaseURL))
	}
	if p.config.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(p.config.HTTPClient))
	}

	client := anthropic.NewClient(opts...)

	p.mu.Lock()
	p.client = &client
	p.mu.Unlock()
	return nil
}

// Generate sends prompt as a single user message and returns the text blocks of the reply.
func (p *AnthropicProvider) Generate(ctx context.Context, prompt string, opts types.GenerateOptions) ([]types.Generation, error) {
	p.mu.RLock()
	client := p.client
	p.mu.RUnlock()
	if client == nil {
		return nil, types.ErrNotInitialized
	}

	maxTokens := int64(opts.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.config.Model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if opts.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: opts.System}}
	}
	if opts.Temperature != 0 {
		params.Temperature = anthropic.Float(opts.Temperature)
	}

	msg, err := client.Messages.New(ctx, params)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	return []types.Generation{{
		GeneratedText: sb.String(),
		FinishReason:  string(msg.StopReason),
	}}, nil
}

func (p *AnthropicProvider) Close() {}
