package chunker

import (
	"fmt"

	"github.com/tiktoken-go/tokenizer"
)

// FixedOverlapChunker cuts text into fixed-size token windows that overlap
// by a fixed number of tokens.
type FixedOverlapChunker struct {
	config   ChunkConfig
	encoding tokenizer.Codec
}

// NewFixedOverlapChunker creates a chunker using tiktoken's cl100k_base encoding.
func NewFixedOverlapChunker(config ChunkConfig) (*FixedOverlapChunker, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid chunk config: %w", err)
	}

	enc, err := tokenizer.Get(tokenizer.Cl100kBase)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tokenizer: %w", err)
	}

	return &FixedOverlapChunker{
		config:   config,
		encoding: enc,
	}, nil
}

// Config returns the chunker configuration.
func (c *FixedOverlapChunker) Config() ChunkConfig {
	return c.config
}

// CountTokens counts the number of tokens in the given text.
func (c *FixedOverlapChunker) CountTokens(text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	ids, _, err := c.encoding.Encode(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTokenizerFailed, err)
	}
	return len(ids), nil
}

// ChunkText splits the text into overlapping windows.
func (c *FixedOverlapChunker) ChunkText(text string) ([]Chunk, error) {
	if text == "" {
		return nil, ErrEmptyText
	}

	tokens, _, err := c.encoding.Encode(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenizerFailed, err)
	}

	total := len(tokens)
	if total <= c.config.ChunkSize {
		return []Chunk{{Text: text, StartToken: 0, EndToken: total, Index: 0}}, nil
	}

	stride := c.config.ChunkSize - c.config.ChunkOverlap

	var chunks []Chunk
	for start := 0; start < total; start += stride {
		if c.config.MaxChunks > 0 && len(chunks) == c.config.MaxChunks {
			break
		}

		end := min(start+c.config.ChunkSize, total)
		piece, err := c.encoding.Decode(tokens[start:end])
		if err != nil {
			return nil, fmt.Errorf("failed to decode chunk %d: %w", len(chunks), err)
		}

		chunks = append(chunks, Chunk{
			Text:       piece,
			StartToken: start,
			EndToken:   end,
			Index:      len(chunks),
		})

		if end == total {
			break
		}
	}

	return chunks, nil
}
