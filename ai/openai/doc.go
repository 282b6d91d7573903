// Package openai implements the ai interfaces against any OpenAI-compatible
// API (OpenAI itself, Ollama, LocalAI, vLLM, gateway proxies for Gemini).
//
// Clients are constructed per outbound call rather than once: each call
// draws the next credential from the shared rotation pool, which is how the
// system spreads sustained embedding and generation traffic across its
// whole key pool instead of rate-limiting a single key.
package openai
