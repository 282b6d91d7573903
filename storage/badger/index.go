package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/core"
	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/storage"
	"github.com/dgraph-io/badger/v4"
)

// IndexRepository persists per-tenant vector indexes as single serialized
// blobs in BadgerDB.
//
// A save is one Set inside one transaction, so replacement is atomic: a
// concurrent load observes either the prior index or the new one in full,
// never a partial write.
type IndexRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.IndexStore = (*IndexRepository)(nil)

// NewIndexRepository creates an index repository over the given backend.
func NewIndexRepository(backend *Backend) (*IndexRepository, error) {
	if backend == nil {
		return nil, fmt.Errorf("backend required")
	}
	return &IndexRepository{
		backend: backend,
		logger:  slog.Default().With("component", "index-repository"),
	}, nil
}

// SaveIndex persists a freshly built index for the tenant, fully replacing
// any previously stored index.
func (r *IndexRepository) SaveIndex(ctx context.Context, tenantID core.ID, passages []core.Passage) (string, error) {
	data := storage.MarshalPassages(passages)

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeIndexKey(tenantID), data); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		r.logger.Error("error persisting index", "tenantID", tenantID, "err", err)
		return "", err
	}

	handle := IndexHandle(tenantID)
	r.logger.Info("persisted vector index", "tenantID", tenantID, "handle", handle, "passages", len(passages), "bytes", len(data))
	return handle, nil
}

// LoadIndex loads the tenant's persisted passages for querying.
func (r *IndexRepository) LoadIndex(ctx context.Context, tenantID core.ID) ([]core.Passage, error) {
	var passages []core.Passage

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeIndexKey(tenantID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			passages, err = storage.UnmarshalPassages(val)
			return err
		})
	}, false)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: tenant %d", core.ErrIndexNotFound, tenantID)
		}
		r.logger.Error("error loading index", "tenantID", tenantID, "err", err)
		return nil, err
	}

	return passages, nil
}

// DeleteIndex removes the tenant's persisted index.
func (r *IndexRepository) DeleteIndex(ctx context.Context, tenantID core.ID) error {
	key := makeIndexKey(tenantID)

	return r.backend.WithTx(func(tx *badger.Txn) error {
		if _, err := tx.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: tenant %d", core.ErrIndexNotFound, tenantID)
			}
			return err
		}
		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Close is a no-op: the shared backend's lifecycle is owned by its opener.
func (r *IndexRepository) Close() error {
	return nil
}
