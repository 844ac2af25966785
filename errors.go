package semanticsim

import (
	"fmt"

	"github.com/botirk38/semanticsim/similarity"
	"github.com/botirk38/semanticsim/types"
)

var (
	// ErrInvalidInput reports vectors or text the scorer cannot work with.
	ErrInvalidInput = similarity.ErrInvalidInput
	// ErrDegenerateInput reports a zero-magnitude embedding.
	ErrDegenerateInput = similarity.ErrDegenerateInput
	// ErrNotInitialized is returned when a Comparer is used before Initialize.
	ErrNotInitialized = types.ErrNotInitialized
)

// Step names the stage of an operation that failed.
type Step string

const (
	StepInitialize Step = "initialize"
	StepEmbed      Step = "embed"
	StepScore      Step = "score"
	StepClassify   Step = "classify"
	StepGenerate   Step = "generate"
)

// ProviderError wraps a failure reported by an inference provider.
type ProviderError struct {
	Provider string
	Step     Step
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s failed on provider %s: %v", e.Step, e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// CompareError records which step of ComparePhrases failed.
type CompareError struct {
	Step Step
	Err  error
}

func (e *CompareError) Error() string {
	return fmt.Sprintf("compare phrases: %s: %v", e.Step, e.Err)
}

func (e *CompareError) Unwrap() error {
	return e.Err
}
