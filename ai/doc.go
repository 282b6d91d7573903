// Package ai provides abstractions for the external AI services the system
// depends on: text embedding and answer generation.
//
// The interfaces here let the ingestion and query layers depend on
// abstractions rather than a concrete provider. The openai subpackage
// implements them against any OpenAI-compatible API; the mock subpackage
// provides deterministic test doubles.
//
// Credential rotation is a provider concern: implementations draw one
// credential from the shared pool per outbound call, so sustained load is
// spread across the whole pool rather than pinned to a single key.
package ai
