// Package config loads the semsim command configuration from a YAML file and
// SEMSIM_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/botirk38/semanticsim/chunker"
	"github.com/botirk38/semanticsim/providers"
	"github.com/botirk38/semanticsim/types"
)

// EnvPrefix is prepended to every environment override, e.g. SEMSIM_PROVIDER_TYPE.
const EnvPrefix = "SEMSIM"

type Config struct {
	Provider    ProviderConfig `mapstructure:"provider"`
	Generator   ProviderConfig `mapstructure:"generator"`
	Embed       EmbedConfig    `mapstructure:"embed"`
	Cache       CacheConfig    `mapstructure:"cache"`
	Log         LogConfig      `mapstructure:"log"`
	Concurrency int            `mapstructure:"concurrency"`
}

type ProviderConfig struct {
	Type       string `mapstructure:"type"`
	Model      string `mapstructure:"model"`
	BaseURL    string `mapstructure:"base_url"`
	APIKey     string `mapstructure:"api_key"`
	OrgID      string `mapstructure:"org_id"`
	Token      string `mapstructure:"token"`
	Dimensions int    `mapstructure:"dimensions"`
}

type EmbedConfig struct {
	Pooling      string `mapstructure:"pooling"`
	Normalize    bool   `mapstructure:"normalize"`
	Chunking     bool   `mapstructure:"chunking"`
	ChunkSize    int    `mapstructure:"chunk_size"`
	ChunkOverlap int    `mapstructure:"chunk_overlap"`
	MaxChunks    int    `mapstructure:"max_chunks"`
}

type CacheConfig struct {
	Type     string        `mapstructure:"type"`
	Capacity int           `mapstructure:"capacity"`
	TTL      time.Duration `mapstructure:"ttl"`
	URL      string        `mapstructure:"url"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configFile when it is non-empty, otherwise semsim.yaml from the
// working directory if present. Environment variables override file values.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("semsim")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("provider.type", string(types.ProviderOllama))
	v.SetDefault("provider.model", "")
	v.SetDefault("provider.base_url", "")
	v.SetDefault("provider.api_key", "")
	v.SetDefault("provider.org_id", "")
	v.SetDefault("provider.token", "")
	v.SetDefault("provider.dimensions", 0)

	v.SetDefault("generator.type", string(types.ProviderOllama))
	v.SetDefault("generator.model", "")
	v.SetDefault("generator.base_url", "")
	v.SetDefault("generator.api_key", "")
	v.SetDefault("generator.org_id", "")
	v.SetDefault("generator.token", "")
	v.SetDefault("generator.dimensions", 0)

	chunks := chunker.DefaultChunkConfig()
	v.SetDefault("embed.pooling", string(types.PoolingMean))
	v.SetDefault("embed.normalize", true)
	v.SetDefault("embed.chunking", false)
	v.SetDefault("embed.chunk_size", chunks.ChunkSize)
	v.SetDefault("embed.chunk_overlap", chunks.ChunkOverlap)
	v.SetDefault("embed.max_chunks", chunks.MaxChunks)

	v.SetDefault("cache.type", "")
	v.SetDefault("cache.capacity", 1024)
	v.SetDefault("cache.ttl", time.Duration(0))
	v.SetDefault("cache.url", "")
	v.SetDefault("cache.username", "")
	v.SetDefault("cache.password", "")
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.prefix", "")

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")

	v.SetDefault("concurrency", 4)
}

// Validate checks values that the library would otherwise reject later with
// a less helpful message.
func (c *Config) Validate() error {
	switch types.Pooling(c.Embed.Pooling) {
	case types.PoolingNone, types.PoolingMean, types.PoolingMax:
	default:
		return fmt.Errorf("embed.pooling: unsupported value %q", c.Embed.Pooling)
	}
	switch types.CacheType(c.Cache.Type) {
	case "", types.CacheLRU, types.CacheRedis:
	default:
		return fmt.Errorf("cache.type: unsupported value %q", c.Cache.Type)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format: unsupported value %q", c.Log.Format)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if c.Concurrency <= 0 {
		return errors.New("concurrency must be positive")
	}
	return nil
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// ProviderSettings converts p into the provider factory configuration.
func (p ProviderConfig) ProviderSettings() (types.ProviderType, providers.Config) {
	return types.ProviderType(p.Type), providers.Config{
		APIKey:     p.APIKey,
		BaseURL:    p.BaseURL,
		OrgID:      p.OrgID,
		Token:      p.Token,
		Model:      p.Model,
		Dimensions: p.Dimensions,
	}
}

// EmbedOptions returns the pooling and normalization settings.
func (e EmbedConfig) EmbedOptions() types.EmbedOptions {
	return types.EmbedOptions{
		Pooling:   types.Pooling(e.Pooling),
		Normalize: e.Normalize,
	}
}

// ChunkConfig returns the chunker settings.
func (e EmbedConfig) ChunkConfig() chunker.ChunkConfig {
	return chunker.ChunkConfig{
		ChunkSize:    e.ChunkSize,
		ChunkOverlap: e.ChunkOverlap,
		MaxChunks:    e.MaxChunks,
	}
}

// CacheSettings converts c into the cache factory configuration.
func (c CacheConfig) CacheSettings() (types.CacheType, types.CacheConfig) {
	return types.CacheType(c.Type), types.CacheConfig{
		Capacity:         c.Capacity,
		TTL:              c.TTL,
		ConnectionString: c.URL,
		Username:         c.Username,
		Password:         c.Password,
		Database:         c.DB,
		Prefix:           c.Prefix,
	}
}
