// Package storage defines the persistence contracts for the system: the
// per-tenant vector index store and the tenant/document metadata store,
// plus the binary serialization of indexed passage sets.
//
// The badger subpackage persists vector indexes as one serialized blob per
// tenant inside a BadgerDB instance; the sqlite subpackage holds tenant and
// document metadata.
package storage
