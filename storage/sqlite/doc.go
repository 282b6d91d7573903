// Package sqlite holds tenant and document metadata: which tenants exist,
// their externally-exposed slugs, and the document set each tenant owns.
//
// This store sits at the collaborator boundary of the ingestion pipeline:
// the request surface resolves tenants and their document sets here before
// handing them to the index builder. It also carries the slug repair
// routine that keeps the non-empty/unique slug invariant intact after bad
// imports.
package sqlite
