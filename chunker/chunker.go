// Package chunker splits inputs that exceed an embedding model's token window
// into overlapping pieces that can be embedded separately and pooled.
package chunker

// Chunker splits text into token windows.
type Chunker interface {
	// ChunkText splits text into chunks. Text that fits in one window yields a single chunk.
	ChunkText(text string) ([]Chunk, error)

	// CountTokens counts the number of tokens in the given text.
	CountTokens(text string) (int, error)

	// Config returns the window settings.
	Config() ChunkConfig
}

// ChunkConfig holds configuration for text chunking behavior.
type ChunkConfig struct {
	// ChunkSize is the number of tokens per window.
	// Default: 256 (the all-MiniLM-L6-v2 input window)
	ChunkSize int

	// ChunkOverlap is the number of tokens shared by consecutive windows.
	// Default: 32
	ChunkOverlap int

	// MaxChunks caps the number of windows; tokens past the cap are dropped.
	// Zero means no cap.
	MaxChunks int
}

// Chunk is a single window of the original text.
type Chunk struct {
	Text       string
	StartToken int
	EndToken   int
	Index      int
}

// DefaultChunkConfig returns the default chunking configuration.
func DefaultChunkConfig() ChunkConfig {
	return ChunkConfig{
		ChunkSize:    256,
		ChunkOverlap: 32,
		MaxChunks:    16,
	}
}

// Validate checks if the chunk configuration is valid.
func (c ChunkConfig) Validate() error {
	if c.ChunkSize <= 0 {
		return ErrInvalidChunkSize
	}
	if c.ChunkOverlap < 0 {
		return ErrInvalidOverlap
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return ErrOverlapTooLarge
	}
	if c.MaxChunks < 0 {
		return ErrInvalidMaxChunks
	}
	return nil
}
