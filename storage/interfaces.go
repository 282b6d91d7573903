package storage

import (
	"context"

	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/core"
)

// IndexStore persists and loads per-tenant vector indexes.
// Implementations must be thread-safe and support concurrent access.
//
// Exactly one index exists per tenant at the location derived
// deterministically from the tenant's internal id. There is no incremental
// update: saving replaces the prior index wholesale and atomically, so a
// concurrent load observes either the old index or the new one, never a
// partial write.
type IndexStore interface {
	// SaveIndex persists a freshly built index for the tenant, fully
	// replacing any index previously stored there. Returns the handle
	// identifying the persisted index.
	SaveIndex(ctx context.Context, tenantID core.ID, passages []core.Passage) (string, error)

	// LoadIndex loads the tenant's persisted passages for querying.
	// Returns core.ErrIndexNotFound if nothing has been built yet for
	// that tenant.
	LoadIndex(ctx context.Context, tenantID core.ID) ([]core.Passage, error)

	// DeleteIndex removes the tenant's persisted index.
	// Returns core.ErrIndexNotFound if there is none.
	DeleteIndex(ctx context.Context, tenantID core.ID) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// TenantStore provides the tenant and document metadata operations the
// request surface depends on.
type TenantStore interface {
	// CreateTenant registers a tenant. The slug must be non-empty and
	// globally unique.
	CreateTenant(ctx context.Context, tenant *core.Tenant) (*core.Tenant, error)

	// GetTenant retrieves a tenant by internal id.
	// Returns core.ErrTenantNotFound if it does not exist.
	GetTenant(ctx context.Context, id core.ID) (*core.Tenant, error)

	// GetTenantBySlug retrieves a tenant by its externally-exposed slug.
	// Returns core.ErrTenantNotFound if it does not exist.
	GetTenantBySlug(ctx context.Context, slug string) (*core.Tenant, error)

	// AddDocument registers a document under a tenant. Document ids are
	// content-based (derived from the URL), so re-adding the same URL is
	// idempotent.
	AddDocument(ctx context.Context, document *core.Document) (*core.Document, error)

	// TenantDocuments lists a tenant's documents in registration order.
	TenantDocuments(ctx context.Context, tenantID core.ID) ([]core.Document, error)

	// RepairSlugs re-encodes malformed slugs and assigns fresh unique
	// slugs where nothing usable remains, preserving the
	// non-empty/unique invariant. Returns the number of updated tenants.
	RepairSlugs(ctx context.Context) (int, error)

	// Close closes the store.
	Close() error
}
