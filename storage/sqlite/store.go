package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/core"
	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/storage"
	"github.com/google/uuid"
)

const schema = `
CREATE TABLE IF NOT EXISTS tenants (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	slug        TEXT NOT NULL UNIQUE,
	name        TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	created_at  INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS documents (
	id         INTEGER PRIMARY KEY,
	tenant_id  INTEGER NOT NULL REFERENCES tenants(id),
	file_name  TEXT NOT NULL DEFAULT '',
	file_type  TEXT NOT NULL DEFAULT '',
	url        TEXT NOT NULL UNIQUE,
	created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_documents_tenant ON documents(tenant_id, created_at);
`

// Store is a SQLite-backed tenant and document metadata store.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

var _ storage.TenantStore = (*Store)(nil)

// NewStore creates a metadata store at dataDir/metadata.db, creating the
// directory and schema as needed.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	dbPath := filepath.Join(dataDir, "metadata.db")

	// WAL mode for concurrent readers during ingestion
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{
		db:     db,
		path:   dbPath,
		logger: slog.Default().With("component", "metadata-store"),
	}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// CreateTenant registers a tenant. An empty slug fails validation;
// a duplicate slug returns storage.ErrDuplicateKey.
func (s *Store) CreateTenant(ctx context.Context, tenant *core.Tenant) (*core.Tenant, error) {
	if err := core.ValidateTenant(tenant); err != nil {
		return nil, err
	}

	createdAt := tenant.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tenants (slug, name, description, created_at) VALUES (?, ?, ?, ?)`,
		tenant.Slug, tenant.Name, tenant.Description, createdAt.UnixMicro())
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: slug %q", storage.ErrDuplicateKey, tenant.Slug)
		}
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	created := *tenant
	created.Id = core.ID(id)
	created.CreatedAt = createdAt
	s.logger.Info("created tenant", "id", created.Id, "slug", created.Slug)
	return &created, nil
}

// GetTenant retrieves a tenant by internal id.
func (s *Store) GetTenant(ctx context.Context, id core.ID) (*core.Tenant, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, slug, name, description, created_at FROM tenants WHERE id = ?`, int64(id))
	return scanTenant(row)
}

// GetTenantBySlug retrieves a tenant by its externally-exposed slug.
func (s *Store) GetTenantBySlug(ctx context.Context, slug string) (*core.Tenant, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, slug, name, description, created_at FROM tenants WHERE slug = ?`, slug)
	return scanTenant(row)
}

func scanTenant(row *sql.Row) (*core.Tenant, error) {
	var tenant core.Tenant
	var id, createdAt int64
	err := row.Scan(&id, &tenant.Slug, &tenant.Name, &tenant.Description, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrTenantNotFound
		}
		return nil, err
	}
	tenant.Id = core.ID(id)
	tenant.CreatedAt = time.UnixMicro(createdAt).UTC()
	return &tenant, nil
}

// AddDocument registers a document under a tenant. The document id is
// derived from the URL, so re-adding the same URL for the same tenant
// returns the existing record instead of duplicating it. A URL already
// registered to a different tenant returns storage.ErrDuplicateKey.
func (s *Store) AddDocument(ctx context.Context, document *core.Document) (*core.Document, error) {
	if err := core.ValidateDocument(document); err != nil {
		return nil, err
	}

	if _, err := s.GetTenant(ctx, document.TenantId); err != nil {
		return nil, err
	}

	createdAt := document.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	id := core.IDFromContent(document.URL)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (id, tenant_id, file_name, file_type, url, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(url) DO NOTHING`,
		int64(id), int64(document.TenantId), document.FileName, document.FileType,
		document.URL, createdAt.UnixMicro())
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT id, tenant_id, file_name, file_type, url, created_at FROM documents WHERE url = ?`,
		document.URL)
	existing, err := scanDocument(row)
	if err != nil {
		return nil, err
	}
	if existing.TenantId != document.TenantId {
		return nil, fmt.Errorf("%w: url %q already registered to tenant %d",
			storage.ErrDuplicateKey, document.URL, existing.TenantId)
	}
	return existing, nil
}

// TenantDocuments lists a tenant's documents in registration order.
func (s *Store) TenantDocuments(ctx context.Context, tenantID core.ID) ([]core.Document, error) {
	if _, err := s.GetTenant(ctx, tenantID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, tenant_id, file_name, file_type, url, created_at
		 FROM documents WHERE tenant_id = ? ORDER BY created_at, id`, int64(tenantID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var documents []core.Document
	for rows.Next() {
		var doc core.Document
		var id, tid, createdAt int64
		if err := rows.Scan(&id, &tid, &doc.FileName, &doc.FileType, &doc.URL, &createdAt); err != nil {
			return nil, err
		}
		doc.Id = core.ID(id)
		doc.TenantId = core.ID(tid)
		doc.CreatedAt = time.UnixMicro(createdAt).UTC()
		documents = append(documents, doc)
	}
	return documents, rows.Err()
}

func scanDocument(row *sql.Row) (*core.Document, error) {
	var doc core.Document
	var id, tid, createdAt int64
	err := row.Scan(&id, &tid, &doc.FileName, &doc.FileType, &doc.URL, &createdAt)
	if err != nil {
		return nil, err
	}
	doc.Id = core.ID(id)
	doc.TenantId = core.ID(tid)
	doc.CreatedAt = time.UnixMicro(createdAt).UTC()
	return &doc, nil
}

// RepairSlugs re-encodes every tenant slug into valid UTF-8 and assigns a
// fresh UUID slug where nothing usable remains, preserving the
// non-empty/unique invariant. Returns the number of updated tenants.
func (s *Store) RepairSlugs(ctx context.Context) (int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, slug FROM tenants`)
	if err != nil {
		return 0, err
	}

	type repair struct {
		id   int64
		slug string
	}
	var repairs []repair
	for rows.Next() {
		var id int64
		var slug string
		if err := rows.Scan(&id, &slug); err != nil {
			rows.Close()
			return 0, err
		}
		repaired := core.SanitizeSlug(slug)
		if repaired == "" {
			repaired = uuid.NewString()
		}
		if repaired != slug {
			repairs = append(repairs, repair{id: id, slug: repaired})
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	updated := 0
	for _, r := range repairs {
		if _, err := s.db.ExecContext(ctx,
			`UPDATE tenants SET slug = ? WHERE id = ?`, r.slug, r.id); err != nil {
			if isUniqueViolation(err) {
				// Sanitized slug collides with an existing one; fall back
				// to a fresh UUID which cannot collide.
				fallback := uuid.NewString()
				if _, err := s.db.ExecContext(ctx,
					`UPDATE tenants SET slug = ? WHERE id = ?`, fallback, r.id); err != nil {
					return updated, err
				}
				r.slug = fallback
			} else {
				return updated, err
			}
		}
		s.logger.Info("repaired tenant slug", "id", r.id, "slug", r.slug)
		updated++
	}
	return updated, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
