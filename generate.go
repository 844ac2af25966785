package semanticsim

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/botirk38/semanticsim/types"
)

// DefaultMaxTokens bounds continuations when GenerateOptions.MaxTokens is zero.
const DefaultMaxTokens = 30

const continueInstruction = "Continue the user's text. Reply with the continuation only, without repeating the text."

// GenerateText asks gen to continue prompt. Each returned GeneratedText holds
// the prompt followed by the continuation. gen must already be initialized.
func GenerateText(ctx context.Context, gen types.Generator, prompt string, opts types.GenerateOptions) ([]types.Generation, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("%w: prompt is empty", ErrInvalidInput)
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = DefaultMaxTokens
	}
	if opts.System == "" {
		opts.System = continueInstruction
	}

	gens, err := gen.Generate(ctx, prompt, opts)
	if err != nil {
		return nil, &ProviderError{Provider: gen.Name(), Step: StepGenerate, Err: err}
	}

	out := make([]types.Generation, len(gens))
	for i, g := range gens {
		out[i] = types.Generation{
			GeneratedText: joinContinuation(prompt, g.GeneratedText),
			FinishReason:  g.FinishReason,
		}
	}
	return out, nil
}

// joinContinuation appends cont to prompt, inserting a space when neither
// side carries one at the boundary.
func joinContinuation(prompt, cont string) string {
	if cont == "" {
		return prompt
	}
	last, _ := utf8.DecodeLastRuneInString(prompt)
	first, _ := utf8.DecodeRuneInString(cont)
	if unicode.IsSpace(last) || unicode.IsSpace(first) || unicode.IsPunct(first) {
		return prompt + cont
	}
	return prompt + " " + cont
}
