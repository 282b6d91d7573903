package qa

import (
	"context"
	"log/slog"
	"strings"

	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/ai"
	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/core"
	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/search"
	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/storage"
)

// defaultTopK is the number of passages stuffed into the prompt.
const defaultTopK = 3

// Answerer answers questions against a tenant's indexed documents by
// retrieving the most similar passages and asking the chat model to
// answer from them.
type Answerer struct {
	store     storage.IndexStore
	embedder  ai.Embedder
	generator ai.Generator
	topK      int
	logger    *slog.Logger
}

// Option configures an Answerer.
type Option func(*Answerer) error

// WithTopK sets how many passages are retrieved as context.
// Default is 3.
func WithTopK(k int) Option {
	return func(a *Answerer) error {
		if k < 1 {
			k = 1
		}
		a.topK = k
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Answerer) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// NewAnswerer creates a new answerer.
func NewAnswerer(store storage.IndexStore, provider ai.Provider, opts ...Option) (*Answerer, error) {
	if store == nil {
		return nil, ErrIndexStoreRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	a := &Answerer{
		store:     store,
		embedder:  provider.Embedder(),
		generator: provider.Generator(),
		topK:      defaultTopK,
		logger:    slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// Answer retrieves the passages most similar to the question from the
// tenant's index and generates an answer grounded in them. Returns
// core.ErrIndexNotFound when the tenant has never been indexed.
func (a *Answerer) Answer(ctx context.Context, tenantID core.ID, question string) (string, error) {
	index, err := search.Load(ctx, a.store, tenantID, a.embedder, search.WithLogger(a.logger))
	if err != nil {
		return "", err
	}

	hits, err := index.Search(ctx, question, a.topK)
	if err != nil {
		a.logger.Error("error retrieving context passages",
			"tenantID", tenantID, "err", err)
		return "", err
	}

	prompt := buildPrompt(hits, question)

	answer, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		a.logger.Error("error generating answer", "tenantID", tenantID, "err", err)
		return "", err
	}

	a.logger.Debug("question answered",
		"tenantID", tenantID, "contextPassages", len(hits))
	return answer, nil
}

// buildPrompt stuffs the retrieved passages into a grounded QA prompt.
func buildPrompt(hits []core.SearchResult, question string) string {
	var sb strings.Builder
	sb.WriteString("Use the following pieces of context to answer the question at the end. ")
	sb.WriteString("If you don't know the answer, just say that you don't know, ")
	sb.WriteString("don't try to make up an answer.\n\n")
	for _, hit := range hits {
		sb.WriteString(hit.Text)
		sb.WriteString("\n\n")
	}
	sb.WriteString("Question: ")
	sb.WriteString(question)
	sb.WriteString("\nHelpful Answer:")
	return sb.String()
}
