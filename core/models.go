package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// Tenant IDs come from database sequences; document IDs are derived
// from the source URL via content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b
// hashing. Identical content always produces the same ID, so re-registering
// a document with the same URL maps onto the existing record.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Tenant is an independently-scoped chatbot instance. Each tenant owns a set
// of documents and at most one vector index built from them.
type Tenant struct {
	Id          ID
	Slug        string // externally-exposed unique identifier, never empty
	Name        string
	Description string
	CreatedAt   time.Time
}

// Document is a remote source file belonging to exactly one tenant.
// Immutable once registered except for tenant-managed set membership.
type Document struct {
	Id        ID
	TenantId  ID
	FileName  string
	FileType  string // declared format tag, e.g. "pdf", "docx", "txt"
	URL       string // unique source location
	CreatedAt time.Time
}

// Passage is a single indexed text unit paired with its embedding vector.
// Vector dimensionality is determined by the embedding model and must be
// consistent within one index.
type Passage struct {
	Text   string
	Vector []float32
}

// SearchResult pairs a retrieved passage text with its similarity score.
type SearchResult struct {
	Text  string
	Score float32
}
