// Command semsim embeds text, classifies sentiment, compares phrases and
// continues prompts using a configurable inference provider.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/botirk38/semanticsim"
	"github.com/botirk38/semanticsim/backends"
	"github.com/botirk38/semanticsim/internal/config"
	"github.com/botirk38/semanticsim/options"
	"github.com/botirk38/semanticsim/providers"
	"github.com/botirk38/semanticsim/types"
)

var demoPairs = []semanticsim.Pair{
	{TextA: "I love programming", TextB: "I enjoy writing code"},
	{TextA: "The weather is nice today", TextB: "It's a beautiful sunny day"},
	{TextA: "The cat is sleeping", TextB: "The dog is barking"},
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the command line and returns the process exit code.
func run(argv []string) int {
	fs := flag.NewFlagSet("semsim", flag.ContinueOnError)
	configFile := fs.String("config", "", "Path to a YAML config file (default: ./semsim.yaml if present)")
	envFile := fs.String("env-file", ".env", "Environment file loaded before reading configuration")
	fs.Usage = printUsage
	if err := fs.Parse(argv); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	args := fs.Args()
	if len(args) == 0 {
		printUsage()
		return 1
	}

	_ = godotenv.Load(*envFile) // a missing .env is fine

	cfg, err := config.Load(*configFile)
	if err != nil {
		return fail("config", err)
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return fail("logger", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := args[0]
	rest := args[1:]
	switch cmd {
	case "embed":
		err = embed(ctx, cfg, logger, rest)
	case "similarity":
		err = similarity(ctx, cfg, logger, rest)
	case "sentiment":
		err = sentiment(ctx, cfg, rest)
	case "generate":
		err = generate(ctx, cfg, rest)
	default:
		printUsage()
		return 1
	}
	if err != nil {
		return fail(cmd, err)
	}
	return 0
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: semsim [ -config <file> ] [ -env-file <file> ] <command> [args]

Commands:
  embed <text>             Print the embedding of text
  similarity [<a> <b>]     Compare two phrases (no args: run the demo pairs)
  sentiment <text>         Classify text as POSITIVE or NEGATIVE
  generate <prompt>        Continue a prompt

Configuration is read from the YAML file and SEMSIM_* environment variables,
e.g. SEMSIM_PROVIDER_TYPE=openai SEMSIM_GENERATOR_TYPE=anthropic.
`)
}

func fail(step string, err error) int {
	fmt.Fprintf(os.Stderr, "%s: %v\n", step, err)
	return 1
}

func newLogger(cfg *config.Config) (*semanticsim.Logger, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	if cfg.Log.Format == "json" {
		return semanticsim.NewJSONLogger(level), nil
	}
	return semanticsim.NewTextLogger(level), nil
}

func newComparer(cfg *config.Config, logger *semanticsim.Logger) (*semanticsim.Comparer, error) {
	providerType, providerCfg := cfg.Provider.ProviderSettings()
	provider, err := providers.NewEmbeddingProvider(providerType, providerCfg)
	if err != nil {
		return nil, err
	}

	opts := []options.Option{
		options.WithCustomProvider(provider),
		options.WithEmbedOptions(cfg.Embed.EmbedOptions()),
		options.WithConcurrency(cfg.Concurrency),
		options.WithLogger(logger.Logger),
	}
	if cfg.Embed.Chunking {
		opts = append(opts, options.WithChunking(cfg.Embed.ChunkConfig()))
	}
	if cfg.Cache.Type != "" {
		cache, err := backends.NewCache(cfg.Cache.CacheSettings())
		if err != nil {
			return nil, err
		}
		opts = append(opts, options.WithCustomCache(cache))
	}
	return semanticsim.New(opts...)
}

func newGenerator(ctx context.Context, cfg *config.Config) (types.Generator, error) {
	gen, err := providers.NewGenerator(cfg.Generator.ProviderSettings())
	if err != nil {
		return nil, err
	}
	if err := gen.Initialize(ctx); err != nil {
		return nil, &semanticsim.ProviderError{Provider: gen.Name(), Step: semanticsim.StepInitialize, Err: err}
	}
	return gen, nil
}

func embed(ctx context.Context, cfg *config.Config, logger *semanticsim.Logger, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("embed requires <text>")
	}
	cmp, err := newComparer(cfg, logger)
	if err != nil {
		return err
	}
	defer cmp.Close()

	if err := cmp.Initialize(ctx); err != nil {
		return err
	}
	emb, err := cmp.Embed(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Printf("Dimensions: %d\n", len(emb))
	return printJSON(emb)
}

func similarity(ctx context.Context, cfg *config.Config, logger *semanticsim.Logger, args []string) error {
	pairs := demoPairs
	switch len(args) {
	case 0:
	case 2:
		pairs = []semanticsim.Pair{{TextA: args[0], TextB: args[1]}}
	default:
		return fmt.Errorf("similarity takes no arguments or exactly <a> <b>")
	}

	cmp, err := newComparer(cfg, logger)
	if err != nil {
		return err
	}
	defer cmp.Close()

	fmt.Println("Initializing embeddings model...")
	if err := cmp.Initialize(ctx); err != nil {
		return err
	}
	fmt.Println("Model initialized successfully")

	fmt.Print("Analyzing semantic similarities...\n\n")
	results, err := cmp.ComparePairs(ctx, pairs)
	if err != nil {
		return err
	}
	for _, res := range results {
		fmt.Printf("Comparing:\n%q\nwith:\n%q\n\n", res.Inputs.TextA, res.Inputs.TextB)
		fmt.Printf("Similarity score: %.4f\n", res.Score)
		fmt.Printf("Interpretation: %s\n\n", res.Label)
	}
	return nil
}

func sentiment(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("sentiment requires <text>")
	}
	gen, err := providers.NewGenerator(cfg.Generator.ProviderSettings())
	if err != nil {
		return err
	}
	classifier := semanticsim.NewSentimentClassifier(gen)
	defer classifier.Close()

	if err := classifier.Initialize(ctx); err != nil {
		return err
	}
	result, err := classifier.Classify(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	return printJSON(result)
}

func generate(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("generate requires <prompt>")
	}
	gen, err := newGenerator(ctx, cfg)
	if err != nil {
		return err
	}
	defer gen.Close()

	result, err := semanticsim.GenerateText(ctx, gen, strings.Join(args, " "), types.GenerateOptions{})
	if err != nil {
		return err
	}
	return printJSON(result)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
