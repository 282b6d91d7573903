package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/ai"
	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/chunk"
	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/core"
	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/extract"
	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/fetch"
	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/storage"
)

// Builder turns a tenant's registered documents into a persisted vector
// index. Each build fetches and extracts every document concurrently,
// embeds the resulting passages and atomically replaces whatever index
// the tenant had before.
type Builder struct {
	fetcher   *fetch.Fetcher
	extractor *extract.Extractor
	chunker   chunk.Strategy
	embedder  ai.Embedder
	store     storage.IndexStore
	pool      *ants.Pool
	locks     sync.Map // core.ID -> *sync.Mutex
	logger    *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder) error

// WithChunker sets the strategy used to split extracted text into
// passages. Default is chunk.Whole, which indexes each document as a
// single passage.
func WithChunker(chunker chunk.Strategy) Option {
	return func(b *Builder) error {
		if chunker == nil {
			chunker = chunk.Whole{}
		}
		b.chunker = chunker
		return nil
	}
}

// WithPoolSize sets the worker pool size for concurrent fetching.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(b *Builder) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if b.pool != nil {
			b.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		b.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// NewBuilder creates a new index builder.
func NewBuilder(
	fetcher *fetch.Fetcher,
	extractor *extract.Extractor,
	embedder ai.Embedder,
	store storage.IndexStore,
	opts ...Option,
) (*Builder, error) {
	if fetcher == nil {
		return nil, ErrFetcherRequired
	}
	if extractor == nil {
		return nil, ErrExtractorRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if store == nil {
		return nil, ErrIndexStoreRequired
	}

	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	b := &Builder{
		fetcher:   fetcher,
		extractor: extractor,
		chunker:   chunk.Whole{},
		embedder:  embedder,
		store:     store,
		pool:      pool,
		logger:    slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(b); optErr != nil {
			b.Release()
			return nil, optErr
		}
	}

	return b, nil
}

// Build fetches, extracts and embeds the given documents and replaces the
// tenant's index with the result, returning the persisted handle. The
// previous index stays visible until the replacement commits; a failed
// build leaves it untouched. Concurrent builds for the same tenant run
// their fetch/extract/embed phases in parallel, but a per-tenant write
// lock serializes the index commits, so each committed index is one
// build's complete output.
func (b *Builder) Build(ctx context.Context, tenantID core.ID, docs []core.Document) (string, error) {
	if len(docs) == 0 {
		return "", fmt.Errorf("%w: tenant %d", core.ErrNoDocuments, tenantID)
	}

	texts := make([]string, len(docs))
	errs := make([]error, len(docs))

	var wg sync.WaitGroup
	for i := range docs {
		i := i
		doc := docs[i]
		wg.Add(1)
		err := b.pool.Submit(func() {
			defer wg.Done()
			texts[i], errs[i] = b.process(ctx, doc)
		})
		if err != nil {
			errs[i] = err
			wg.Done()
		}
	}
	wg.Wait()

	// Fail on the first document error in registration order
	for i, err := range errs {
		if err != nil {
			b.logger.Error("document processing failed",
				"tenantID", tenantID, "url", docs[i].URL, "err", err)
			return "", err
		}
	}

	// Split into passages, preserving document order
	passageTexts := make([]string, 0, len(docs))
	for _, text := range texts {
		passageTexts = append(passageTexts, b.chunker.Chunk(text)...)
	}

	vectors, err := b.embedder.EmbedTexts(ctx, passageTexts)
	if err != nil {
		b.logger.Error("error embedding passages", "tenantID", tenantID, "err", err)
		return "", err
	}
	if len(vectors) != len(passageTexts) {
		return "", fmt.Errorf("%w: got %d vectors for %d passages",
			ErrEmbeddingMismatch, len(vectors), len(passageTexts))
	}

	passages := make([]core.Passage, len(passageTexts))
	for i, text := range passageTexts {
		passages[i] = core.Passage{Text: text, Vector: vectors[i]}
	}

	lock := b.lockFor(tenantID)
	lock.Lock()
	defer lock.Unlock()

	handle, err := b.store.SaveIndex(ctx, tenantID, passages)
	if err != nil {
		b.logger.Error("error saving index", "tenantID", tenantID, "err", err)
		return "", err
	}

	b.logger.Info("index rebuilt",
		"tenantID", tenantID, "handle", handle,
		"documents", len(docs), "passages", len(passages))
	return handle, nil
}

// process downloads a single document and extracts its text.
func (b *Builder) process(ctx context.Context, doc core.Document) (string, error) {
	data, err := b.fetcher.Fetch(ctx, doc.URL)
	if err != nil {
		return "", err
	}
	return b.extractor.Extract(data, doc.FileType)
}

func (b *Builder) lockFor(tenantID core.ID) *sync.Mutex {
	v, _ := b.locks.LoadOrStore(tenantID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// Release releases the worker pool.
// The builder should not be used after calling Release.
func (b *Builder) Release() {
	if b.pool != nil {
		b.pool.Release()
	}
}
