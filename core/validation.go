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

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ValidateTenant validates a Tenant according to domain rules.
//
// Validation rules:
//   - Slug must not be empty
//   - Slug must be valid UTF-8
//
// NOT validated:
//   - ID (0 is valid before a database sequence assigns one)
//   - Name and Description (display metadata, may be empty)
func ValidateTenant(tenant *Tenant) error {
	if tenant == nil {
		return fmt.Errorf("%w: tenant is nil", ErrInvalidTenant)
	}

	if tenant.Slug == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTenant, ErrEmptySlug)
	}

	if !utf8.ValidString(tenant.Slug) {
		return fmt.Errorf("%w: slug is not valid UTF-8", ErrInvalidTenant)
	}

	return nil
}

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - URL must not be empty
//   - TenantId must be set
//
// The FileType is NOT validated here: unknown tags fall through to the
// plain-text extraction arm by design.
func ValidateDocument(document *Document) error {
	if document == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if document.URL == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyURL)
	}

	if document.TenantId == 0 {
		return fmt.Errorf("%w: document has no tenant", ErrInvalidDocument)
	}

	return nil
}

// SanitizeSlug re-encodes a slug into valid UTF-8, dropping malformed byte
// sequences. Returns "" if nothing usable remains; callers are expected to
// generate a fresh slug in that case to preserve the non-empty invariant.
func SanitizeSlug(slug string) string {
	return strings.TrimSpace(strings.ToValidUTF8(slug, ""))
}
