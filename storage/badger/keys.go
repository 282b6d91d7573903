package badger

import (
	"fmt"

	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/core"
)

// Index blobs are stored one per tenant under a key derived from the
// tenant's internal id.
const indexKeyPrefix = "chatbot"

// makeIndexKey generates the storage key for a tenant's vector index.
func makeIndexKey(tenantID core.ID) []byte {
	return []byte(fmt.Sprintf("%s_%d", indexKeyPrefix, tenantID))
}

// IndexHandle returns the deterministic, externally-reportable name of a
// tenant's persisted index location.
func IndexHandle(tenantID core.ID) string {
	return fmt.Sprintf("%s_%d", indexKeyPrefix, tenantID)
}
