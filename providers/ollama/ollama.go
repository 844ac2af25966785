package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/botirk38/semanticsim/pooling"
	"github.com/botirk38/semanticsim/types"
)

const (
	DefaultBaseURL = "http://localhost:11434"

	// DefaultEmbedModel is the Ollama build of all-MiniLM-L6-v2 (384 dimensions).
	DefaultEmbedModel = "all-minilm"
	DefaultChatModel  = "llama3.2"
)

// OllamaConfig holds the configuration for an Ollama server.
type OllamaConfig struct {
	BaseURL    string // e.g. http://localhost:11434
	EmbedModel string // e.g. all-minilm, nomic-embed-text
	ChatModel  string // e.g. llama3.2, gpt2-style base models
	Token      string // Bearer token for hosted Ollama (empty = no auth)
	HTTPClient *http.Client
}

// OllamaProvider embeds and generates text with a local Ollama server,
// the closest thing to running the model pipeline in-process.
type OllamaProvider struct {
	config      OllamaConfig
	initialized atomic.Bool
}

// NewOllamaProvider creates a provider for an Ollama server.
func NewOllamaProvider(config OllamaConfig) *OllamaProvider {
	config.BaseURL = strings.TrimSuffix(config.BaseURL, "/")
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{}
	}
	return &OllamaProvider{config: config}
}

// Name returns the provider and embedding model.
func (o *OllamaProvider) Name() string {
	return "ollama/" + o.embedModel()
}

func (o *OllamaProvider) embedModel() string {
	if o.config.EmbedModel == "" {
		return DefaultEmbedModel
	}
	return o.config.EmbedModel
}

func (o *OllamaProvider) chatModel() string {
	if o.config.ChatModel == "" {
		return DefaultChatModel
	}
	return o.config.ChatModel
}

// Initialize checks the server is reachable and that explicitly configured
// models are available locally.
func (o *OllamaProvider) Initialize(ctx context.Context) error {
	if _, err := o.do(ctx, http.MethodGet, "/api/version", nil); err != nil {
		return fmt.Errorf("ollama unreachable at %s: %w", o.config.BaseURL, err)
	}

	for _, model := range []string{o.config.EmbedModel, o.config.ChatModel} {
		if model == "" {
			continue
		}
		if _, err := o.do(ctx, http.MethodPost, "/api/show", map[string]any{"model": model}); err != nil {
			return fmt.Errorf("ollama model %q not available (try `ollama pull %s`): %w", model, model, err)
		}
	}

	o.initialized.Store(true)
	return nil
}

// Embed generates a vector embedding for the given text.
func (o *OllamaProvider) Embed(ctx context.Context, text string, opts types.EmbedOptions) (types.Embedding, error) {
	if !o.initialized.Load() {
		return nil, types.ErrNotInitialized
	}

	body, err := o.do(ctx, http.MethodPost, "/api/embed", map[string]any{
		"model": o.embedModel(),
		"input": text,
	})
	if err != nil {
		return nil, fmt.Errorf("ollama embed: %w", err)
	}

	var resp struct {
		Embeddings [][]float32 `json:"embeddings"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("ollama embed decode: %w", err)
	}
	if len(resp.Embeddings) == 0 {
		return nil, fmt.Errorf("ollama embed: empty response")
	}

	return pooling.Apply(resp.Embeddings[0], opts), nil
}

// Generate produces a raw continuation of prompt with /api/generate.
func (o *OllamaProvider) Generate(ctx context.Context, prompt string, opts types.GenerateOptions) ([]types.Generation, error) {
	if !o.initialized.Load() {
		return nil, types.ErrNotInitialized
	}

	payload := map[string]any{
		"model":  o.chatModel(),
		"prompt": prompt,
		"stream": false,
	}
	if opts.System != "" {
		payload["system"] = opts.System
	}
	options := map[string]any{}
	if opts.MaxTokens > 0 {
		options["num_predict"] = opts.MaxTokens
	}
	if opts.Temperature != 0 {
		options["temperature"] = opts.Temperature
	}
	if len(options) > 0 {
		payload["options"] = options
	}

	body, err := o.do(ctx, http.MethodPost, "/api/generate", payload)
	if err != nil {
		return nil, fmt.Errorf("ollama generate: %w", err)
	}

	var resp struct {
		Response   string `json:"response"`
		DoneReason string `json:"done_reason"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("ollama generate decode: %w", err)
	}

	return []types.Generation{{GeneratedText: resp.Response, FinishReason: resp.DoneReason}}, nil
}

func (o *OllamaProvider) Close() {
	o.config.HTTPClient.CloseIdleConnections()
}

// do sends a request to the Ollama API (with optional bearer token) and returns the body.
func (o *OllamaProvider) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		payloadBytes, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal payload: %w", err)
		}
		reader = bytes.NewReader(payloadBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, o.config.BaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if o.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+o.config.Token)
	}

	resp, err := o.config.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ollama API error (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return io.ReadAll(resp.Body)
}
