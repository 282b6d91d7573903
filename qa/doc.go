// Package qa implements retrieval-augmented question answering. A
// question is embedded, matched against the tenant's vector index and
// answered by the chat model from the retrieved passages.
package qa
