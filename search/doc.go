// Package search provides in-memory similarity search over embedded
// passages. Indexes are loaded from persistent storage, queried with
// cosine similarity and never mutated in place.
package search
