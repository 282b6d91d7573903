package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity
// search. Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a
	// batch. The returned slice contains embeddings in the same order as the
	// input texts. Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator produces an answer from a fully-assembled prompt.
// Implementations must be thread-safe for concurrent use and configured
// for deterministic output.
type Generator interface {
	// Generate issues a single text-generation call and returns the model's
	// answer verbatim. Returns an error wrapping ErrProvider on failure.
	Generate(ctx context.Context, prompt string) (string, error)
}

// Provider aggregates the AI services for convenient initialization and
// lifecycle management. Both services draw a fresh credential from the
// shared rotator on every outbound call.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Generator returns the answer generation service.
	Generator() Generator

	// Close releases resources held by the provider and its services.
	Close() error
}
