// Package providers creates inference providers by type.
package providers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/botirk38/semanticsim/providers/anthropic"
	"github.com/botirk38/semanticsim/providers/gemini"
	"github.com/botirk38/semanticsim/providers/ollama"
	"github.com/botirk38/semanticsim/providers/openai"
	"github.com/botirk38/semanticsim/providers/static"
	"github.com/botirk38/semanticsim/types"
)

var ErrUnsupportedProvider = errors.New("unsupported provider type")

// Config is the provider-agnostic configuration used by the factory functions.
// Fields that do not apply to a provider are ignored.
type Config struct {
	APIKey     string
	BaseURL    string
	OrgID      string
	Token      string
	Model      string
	ChatModel  string
	Dimensions int
	Vectors    map[string][]float32
	HTTPClient *http.Client
}

// NewEmbeddingProvider creates an embedding provider of the given type.
func NewEmbeddingProvider(providerType types.ProviderType, config Config) (types.EmbeddingProvider, error) {
	switch providerType {
	case types.ProviderOpenAI:
		return NewOpenAIProvider(openai.OpenAIConfig{
			APIKey:     config.APIKey,
			BaseURL:    config.BaseURL,
			OrgID:      config.OrgID,
			Model:      config.Model,
			ChatModel:  config.ChatModel,
			Dimensions: config.Dimensions,
			HTTPClient: config.HTTPClient,
		}), nil
	case types.ProviderGemini:
		return gemini.NewGeminiProvider(geminiConfig(config)), nil
	case types.ProviderOllama:
		return ollama.NewOllamaProvider(ollamaConfig(config)), nil
	case types.ProviderStatic:
		return static.NewStaticProvider(static.StaticConfig{
			Dimensions: config.Dimensions,
			Vectors:    config.Vectors,
		}), nil
	case types.ProviderAnthropic:
		return nil, fmt.Errorf("%w: %s has no embedding endpoint", ErrUnsupportedProvider, providerType)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, providerType)
	}
}

// NewGenerator creates a text generator of the given type. Model selects the
// chat model; ChatModel is used as a fallback.
func NewGenerator(providerType types.ProviderType, config Config) (types.Generator, error) {
	model := config.Model
	if model == "" {
		model = config.ChatModel
	}

	switch providerType {
	case types.ProviderOpenAI:
		return openai.NewOpenAIProvider(openai.OpenAIConfig{
			APIKey:     config.APIKey,
			BaseURL:    config.BaseURL,
			OrgID:      config.OrgID,
			ChatModel:  model,
			HTTPClient: config.HTTPClient,
		}), nil
	case types.ProviderGemini:
		cfg := geminiConfig(config)
		cfg.Model, cfg.ChatModel = "", model
		return gemini.NewGeminiProvider(cfg), nil
	case types.ProviderAnthropic:
		return anthropic.NewAnthropicProvider(anthropic.AnthropicConfig{
			APIKey:     config.APIKey,
			BaseURL:    config.BaseURL,
			Model:      model,
			HTTPClient: config.HTTPClient,
		}), nil
	case types.ProviderOllama:
		cfg := ollamaConfig(config)
		cfg.EmbedModel, cfg.ChatModel = "", model
		return ollama.NewOllamaProvider(cfg), nil
	case types.ProviderStatic:
		return nil, fmt.Errorf("%w: %s cannot generate text", ErrUnsupportedProvider, providerType)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, providerType)
	}
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(config openai.OpenAIConfig) types.EmbeddingProvider {
	return openai.NewOpenAIProvider(config)
}

func geminiConfig(config Config) gemini.GeminiConfig {
	return gemini.GeminiConfig{
		APIKey:     config.APIKey,
		BaseURL:    config.BaseURL,
		Model:      config.Model,
		ChatModel:  config.ChatModel,
		Dimensions: config.Dimensions,
		HTTPClient: config.HTTPClient,
	}
}

func ollamaConfig(config Config) ollama.OllamaConfig {
	return ollama.OllamaConfig{
		BaseURL:    config.BaseURL,
		EmbedModel: config.Model,
		ChatModel:  config.ChatModel,
		Token:      config.Token,
		HTTPClient: config.HTTPClient,
	}
}
