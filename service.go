// Copyright 2025 Medina Group
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package chatbot

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/ai"
	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/ai/openai"
	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/chunk"
	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/core"
	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/extract"
	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/fetch"
	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/ingestion"
	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/keys"
	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/qa"
	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/storage"
	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/storage/badger"
	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/storage/sqlite"
)

// Service is the top-level entry point. It owns the tenant metadata
// store, the vector index store, the AI provider and the pipelines built
// on top of them.
type Service struct {
	metadata *sqlite.Store
	backend  *badger.Backend
	indexes  storage.IndexStore
	provider ai.Provider
	builder  *ingestion.Builder
	answerer *qa.Answerer
	logger   *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
	chunker  chunk.Strategy
	logger   *slog.Logger
}

// WithAIConfig sets the AI provider configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.aiConfig = config
	}
}

// WithProvider supplies a pre-built AI provider, bypassing the
// OpenAI-compatible provider construction entirely. The key rotator is
// not consulted when this is set.
func WithProvider(provider ai.Provider) ServiceOption {
	return func(o *serviceOptions) {
		o.provider = provider
	}
}

// WithChunker sets the passage chunking strategy used during ingestion.
// Default is chunk.Whole.
func WithChunker(chunker chunk.Strategy) ServiceOption {
	return func(o *serviceOptions) {
		o.chunker = chunker
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(o *serviceOptions) {
		o.logger = logger
	}
}

// NewService opens the metadata and index stores under dataDir and wires
// the ingestion and question answering pipelines. The rotator supplies
// API keys for outbound AI calls, one key drawn per call in round-robin
// order.
func NewService(dataDir string, rotator *keys.Rotator, opts ...ServiceOption) (*Service, error) {
	// Apply options
	options := &serviceOptions{
		aiConfig: ai.DefaultConfig(),
		chunker:  chunk.Whole{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	metadata, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, err
	}

	backend, err := badger.OpenBackend(filepath.Join(dataDir, "indexes"), false)
	if err != nil {
		metadata.Close()
		return nil, err
	}

	indexes, err := badger.NewIndexRepository(backend)
	if err != nil {
		backend.Close()
		metadata.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig, rotator)
		if err != nil {
			backend.Close()
			metadata.Close()
			return nil, err
		}
	}

	builder, err := ingestion.NewBuilder(
		fetch.NewFetcher(fetch.WithLogger(options.logger)),
		extract.NewExtractor(extract.WithLogger(options.logger)),
		provider.Embedder(),
		indexes,
		ingestion.WithChunker(options.chunker),
		ingestion.WithLogger(options.logger),
	)
	if err != nil {
		provider.Close()
		backend.Close()
		metadata.Close()
		return nil, err
	}

	answerer, err := qa.NewAnswerer(indexes, provider, qa.WithLogger(options.logger))
	if err != nil {
		builder.Release()
		provider.Close()
		backend.Close()
		metadata.Close()
		return nil, err
	}

	return &Service{
		metadata: metadata,
		backend:  backend,
		indexes:  indexes,
		provider: provider,
		builder:  builder,
		answerer: answerer,
		logger:   options.logger,
	}, nil
}

// CreateTenant registers a new tenant under a unique slug.
func (s *Service) CreateTenant(ctx context.Context, slug, name, description string) (*core.Tenant, error) {
	return s.metadata.CreateTenant(ctx, &core.Tenant{
		Slug:        slug,
		Name:        name,
		Description: description,
	})
}

// Tenant retrieves a tenant by internal id.
func (s *Service) Tenant(ctx context.Context, id core.ID) (*core.Tenant, error) {
	return s.metadata.GetTenant(ctx, id)
}

// TenantBySlug retrieves a tenant by its externally-exposed slug.
func (s *Service) TenantBySlug(ctx context.Context, slug string) (*core.Tenant, error) {
	return s.metadata.GetTenantBySlug(ctx, slug)
}

// AddDocument registers a document under a tenant. Registering the same
// URL twice is idempotent.
func (s *Service) AddDocument(ctx context.Context, tenantID core.ID, fileName, fileType, url string) (*core.Document, error) {
	return s.metadata.AddDocument(ctx, &core.Document{
		TenantId: tenantID,
		FileName: fileName,
		FileType: fileType,
		URL:      url,
	})
}

// Documents lists a tenant's registered documents in registration order.
func (s *Service) Documents(ctx context.Context, tenantID core.ID) ([]core.Document, error) {
	return s.metadata.TenantDocuments(ctx, tenantID)
}

// Ingest rebuilds the tenant's vector index from all of its registered
// documents. Returns core.ErrTenantNotFound for an unknown tenant and
// core.ErrNoDocuments when the tenant has nothing registered.
func (s *Service) Ingest(ctx context.Context, tenantID core.ID) error {
	tenant, err := s.metadata.GetTenant(ctx, tenantID)
	if err != nil {
		return err
	}

	docs, err := s.metadata.TenantDocuments(ctx, tenantID)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return fmt.Errorf("%w: tenant %q", core.ErrNoDocuments, tenant.Slug)
	}

	_, err = s.builder.Build(ctx, tenantID, docs)
	return err
}

// Ask answers a question against the tenant's indexed documents.
// Returns core.ErrTenantNotFound for an unknown tenant and
// core.ErrIndexNotFound when the tenant has not been ingested yet.
func (s *Service) Ask(ctx context.Context, tenantID core.ID, question string) (string, error) {
	if _, err := s.metadata.GetTenant(ctx, tenantID); err != nil {
		return "", err
	}
	return s.answerer.Answer(ctx, tenantID, question)
}

// RepairSlugs fixes malformed tenant slugs in the metadata store and
// returns the number of tenants updated.
func (s *Service) RepairSlugs(ctx context.Context) (int, error) {
	return s.metadata.RepairSlugs(ctx)
}

// Close releases the pipelines and closes all stores.
func (s *Service) Close() error {
	s.builder.Release()

	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}

	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing index storage", "err", err)
		return err
	}
	if err := s.metadata.Close(); err != nil {
		s.logger.Error("error closing metadata store", "err", err)
		return err
	}
	return nil
}
