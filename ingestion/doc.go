// Package ingestion builds per-tenant vector indexes from registered
// documents. Documents are fetched and extracted concurrently, embedded
// in one batch and committed as a full index replacement.
package ingestion
