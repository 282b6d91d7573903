package search

import (
	"context"
	"log/slog"
	"sort"

	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/ai"
	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/core"
	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/storage"
)

// Index answers similarity queries over an in-memory set of embedded
// passages. An Index is immutable once built; rebuilding a tenant's
// knowledge base produces a new Index.
type Index struct {
	passages []core.Passage
	embedder ai.Embedder
	logger   *slog.Logger
}

// Option configures an Index.
type Option func(*Index) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(ix *Index) error {
		if logger == nil {
			logger = slog.Default()
		}
		ix.logger = logger
		return nil
	}
}

// NewIndex creates an index over the given passages. The embedder is used
// to embed incoming queries and must produce vectors in the same space as
// the passage vectors.
func NewIndex(passages []core.Passage, embedder ai.Embedder, opts ...Option) (*Index, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	ix := &Index{
		passages: passages,
		embedder: embedder,
		logger:   slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(ix); err != nil {
			return nil, err
		}
	}

	return ix, nil
}

// Load reads a tenant's persisted passages from the store and wraps them
// in a queryable Index. Returns core.ErrIndexNotFound when the tenant has
// never been indexed.
func Load(ctx context.Context, store storage.IndexStore, tenantID core.ID, embedder ai.Embedder, opts ...Option) (*Index, error) {
	if store == nil {
		return nil, ErrIndexStoreRequired
	}

	passages, err := store.LoadIndex(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	return NewIndex(passages, embedder, opts...)
}

// Len returns the number of passages in the index.
func (ix *Index) Len() int {
	return len(ix.passages)
}

// Search embeds the query and returns up to maxHits passages ranked by
// cosine similarity, highest first. Passages with equal scores keep their
// insertion order.
func (ix *Index) Search(ctx context.Context, query string, maxHits int) ([]core.SearchResult, error) {
	if maxHits <= 0 || len(ix.passages) == 0 {
		return []core.SearchResult{}, nil
	}

	embedding, err := ix.embedder.EmbedText(ctx, query)
	if err != nil {
		ix.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}

	results := make([]core.SearchResult, 0, len(ix.passages))
	for _, passage := range ix.passages {
		// Cosine similarity (dot product for normalized vectors)
		results = append(results, core.SearchResult{
			Text:  passage.Text,
			Score: dotProduct(embedding, passage.Vector),
		})
	}

	// Sort by score descending, stable so ties keep insertion order
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > maxHits {
		results = results[:maxHits]
	}

	return results, nil
}

// dotProduct calculates the dot product of two vectors.
func dotProduct(a, b []float32) float32 {
	var sum float32
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
