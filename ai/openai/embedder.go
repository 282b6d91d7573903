package openai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/ai"
	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/keys"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// Embedder implements ai.Embedder against OpenAI-compatible embedding APIs.
//
// A fresh client is built for every call so each request authenticates with
// the next credential from the rotation pool rather than pinning one key.
type Embedder struct {
	config  *ai.Config
	rotator *keys.Rotator
	logger  *slog.Logger
}

// newEmbedder is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newEmbedder(config *ai.Config, rotator *keys.Rotator) (*Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if rotator == nil {
		return nil, keys.ErrNoKeys
	}

	return &Embedder{
		config:  config,
		rotator: rotator,
		logger:  slog.Default().With("component", "openai-embedder"),
	}, nil
}

// NewEmbedder creates an embedder using the provided configuration and
// credential rotator.
//
// Returns the ai.Embedder interface to enforce abstraction.
func NewEmbedder(config *ai.Config, rotator *keys.Rotator) (ai.Embedder, error) {
	return newEmbedder(config, rotator)
}

// client builds an embedding client authenticated with the next pooled
// credential.
func (e *Embedder) client() (embeddings.Embedder, error) {
	llm, err := openai.New(
		openai.WithBaseURL(e.config.EmbeddingHost),
		openai.WithToken(e.rotator.Next()),
		openai.WithEmbeddingModel(e.config.EmbeddingModel),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ai.ErrProvider, err)
	}

	embedder, err := embeddings.NewEmbedder(llm, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ai.ErrProvider, err)
	}
	return embedder, nil
}

// EmbedText generates a vector embedding for a single text string.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	e.logger.Debug("generating embedding for single text", "length", len(text))

	client, err := e.client()
	if err != nil {
		return nil, err
	}

	vectors, err := client.EmbedDocuments(ctx, []string{text})
	if err != nil {
		e.logger.Error("failed to generate embedding", "err", err)
		return nil, fmt.Errorf("%w: %w", ai.ErrProvider, err)
	}

	if len(vectors) == 0 {
		e.logger.Warn("embedder returned empty result")
		return []float32{}, nil
	}
	return vectors[0], nil
}

// EmbedTexts generates vector embeddings for multiple text strings in a batch.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	e.logger.Debug("generating embeddings for texts", "count", len(texts))

	client, err := e.client()
	if err != nil {
		return nil, err
	}

	vectors, err := client.EmbedDocuments(ctx, texts)
	if err != nil {
		e.logger.Error("failed to generate embeddings", "count", len(texts), "err", err)
		return nil, fmt.Errorf("%w: %w", ai.ErrProvider, err)
	}
	return vectors, nil
}
