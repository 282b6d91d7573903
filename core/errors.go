// Copyright 2025 Medina Group
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "errors"

// Domain errors
var (
	// ErrTenantNotFound indicates the referenced tenant does not exist.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrNoDocuments indicates a tenant has no documents to ingest.
	ErrNoDocuments = errors.New("tenant has no documents")

	// ErrIndexNotFound indicates a query was attempted before any
	// successful ingestion for the tenant.
	ErrIndexNotFound = errors.New("vector index not found, process documents first")

	// ErrInvalidTenant indicates a Tenant failed validation.
	ErrInvalidTenant = errors.New("invalid tenant")

	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrEmptySlug indicates the tenant Slug field is empty.
	ErrEmptySlug = errors.New("slug cannot be empty")

	// ErrEmptyURL indicates the document URL field is empty.
	ErrEmptyURL = errors.New("document URL cannot be empty")
)
