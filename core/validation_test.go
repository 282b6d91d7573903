package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateTenant(t *testing.T) {
	tests := []struct {
		name    string
		tenant  *Tenant
		wantErr error
	}{
		{
			name:   "valid tenant",
			tenant: &Tenant{Slug: "support-bot", Name: "Support"},
		},
		{
			name:    "nil tenant",
			tenant:  nil,
			wantErr: ErrInvalidTenant,
		},
		{
			name:    "empty slug",
			tenant:  &Tenant{Name: "Support"},
			wantErr: ErrEmptySlug,
		},
		{
			name:    "malformed slug",
			tenant:  &Tenant{Slug: string([]byte{0xff, 0xfe})},
			wantErr: ErrInvalidTenant,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTenant(tt.tenant)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name     string
		document *Document
		wantErr  error
	}{
		{
			name:     "valid document",
			document: &Document{TenantId: 1, URL: "https://example.com/faq.pdf", FileType: "pdf"},
		},
		{
			name:    "nil document",
			wantErr: ErrInvalidDocument,
		},
		{
			name:     "empty URL",
			document: &Document{TenantId: 1, FileType: "pdf"},
			wantErr:  ErrEmptyURL,
		},
		{
			name:     "missing tenant",
			document: &Document{URL: "https://example.com/faq.pdf"},
			wantErr:  ErrInvalidDocument,
		},
		{
			name:     "unknown file type is accepted",
			document: &Document{TenantId: 1, URL: "https://example.com/notes.xyz", FileType: "xyz"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument(tt.document)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSanitizeSlug(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"valid slug unchanged", "support-bot", "support-bot"},
		{"malformed bytes dropped", "caf\xffe", "cafe"},
		{"only malformed bytes", "\xff\xfe", ""},
		{"surrounding whitespace trimmed", "  bot  ", "bot"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeSlug(tt.in))
		})
	}
}
