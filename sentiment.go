package semanticsim

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/tidwall/gjson"

	"github.com/botirk38/semanticsim/types"
)

const sentimentInstruction = `You are a binary sentiment classifier. Classify the sentiment of the user's text.
Reply with a single JSON object and nothing else, in the form
{"label": "POSITIVE" or "NEGATIVE", "score": confidence between 0 and 1}.`

var errUnparseableSentiment = errors.New("reply does not contain a sentiment object")

// SentimentClassifier labels text as POSITIVE or NEGATIVE by prompting a
// text generator.
type SentimentClassifier struct {
	gen  types.Generator
	opts types.GenerateOptions

	initMu      sync.Mutex
	initialized atomic.Bool
}

// NewSentimentClassifier creates a classifier on top of gen.
func NewSentimentClassifier(gen types.Generator) *SentimentClassifier {
	return &SentimentClassifier{
		gen: gen,
		opts: types.GenerateOptions{
			MaxTokens: 64,
			System:    sentimentInstruction,
		},
	}
}

// Initialize prepares the underlying generator.
func (s *SentimentClassifier) Initialize(ctx context.Context) error {
	s.initMu.Lock()
	defer s.initMu.Unlock()

	if s.initialized.Load() {
		return nil
	}
	if err := s.gen.Initialize(ctx); err != nil {
		return &ProviderError{Provider: s.gen.Name(), Step: StepInitialize, Err: err}
	}
	s.initialized.Store(true)
	return nil
}

// Classify returns the sentiment of text. The result holds a single entry,
// matching the shape of a text-classification pipeline.
func (s *SentimentClassifier) Classify(ctx context.Context, text string) ([]types.Sentiment, error) {
	if !s.initialized.Load() {
		return nil, ErrNotInitialized
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is empty", ErrInvalidInput)
	}

	gens, err := s.gen.Generate(ctx, text, s.opts)
	if err != nil {
		return nil, &ProviderError{Provider: s.gen.Name(), Step: StepClassify, Err: err}
	}
	if len(gens) == 0 {
		return nil, &ProviderError{Provider: s.gen.Name(), Step: StepClassify, Err: errUnparseableSentiment}
	}

	sentiment, err := parseSentiment(gens[0].GeneratedText)
	if err != nil {
		return nil, &ProviderError{Provider: s.gen.Name(), Step: StepClassify, Err: err}
	}
	return []types.Sentiment{sentiment}, nil
}

// Close releases the generator.
func (s *SentimentClassifier) Close() {
	s.initMu.Lock()
	defer s.initMu.Unlock()

	s.initialized.Store(false)
	s.gen.Close()
}

// parseSentiment returns the first JSON object or array in reply that
// carries a label, tolerating prose, code fences or trailing fragments
// around it.
func parseSentiment(reply string) (types.Sentiment, error) {
	for start := strings.IndexAny(reply, "[{"); start >= 0; {
		if end := balancedEnd(reply, start); end > 0 && gjson.Valid(reply[start:end]) {
			res := gjson.Parse(reply[start:end])
			if res.IsArray() {
				res = res.Get("0")
			}
			if res.Get("label").Exists() {
				return sentimentFrom(res)
			}
		}

		next := strings.IndexAny(reply[start+1:], "[{")
		if next < 0 {
			break
		}
		start += next + 1
	}
	return types.Sentiment{}, errUnparseableSentiment
}

func sentimentFrom(res gjson.Result) (types.Sentiment, error) {
	var label string
	switch strings.ToUpper(strings.TrimSpace(res.Get("label").String())) {
	case "POSITIVE", "POS":
		label = types.SentimentPositive
	case "NEGATIVE", "NEG":
		label = types.SentimentNegative
	default:
		return types.Sentiment{}, fmt.Errorf("%w: unknown label %q", errUnparseableSentiment, res.Get("label").String())
	}

	score := res.Get("score")
	if !score.Exists() {
		return types.Sentiment{}, fmt.Errorf("%w: missing score", errUnparseableSentiment)
	}

	return types.Sentiment{Label: label, Score: clamp01(score.Float())}, nil
}

// balancedEnd returns the index just past the bracket that closes the one
// at s[start], skipping brackets inside strings. It returns -1 if the value
// is never closed.
func balancedEnd(s string, start int) int {
	depth := 0
	inString, escaped := false, false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
