package extract

import (
	"fmt"
	"log/slog"
	"strings"
)

// ExtractionError indicates document bytes could not be decoded for a
// declared file type, beyond the tolerant per-page and per-byte fallbacks.
type ExtractionError struct {
	FileType string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract %s document: %v", e.FileType, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Extractor converts raw document bytes into plain text.
//
// Dispatch is a closed three-way switch on the lower-cased declared file
// type: "pdf", "doc"/"docx", and everything else. Unrecognized formats are
// decoded as lossy UTF-8 text rather than rejected, which means unsupported
// binary formats silently degrade to garbled text. That fallback is an
// intentional policy, not format sniffing: a tenant's declared type is
// trusted as-is.
type Extractor struct {
	logger *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewExtractor creates a text extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		logger: slog.Default().With("component", "extractor"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract converts raw bytes into plain text according to the declared
// file type.
func (e *Extractor) Extract(data []byte, fileType string) (string, error) {
	switch strings.ToLower(fileType) {
	case "pdf":
		return e.extractPDF(data)
	case "doc", "docx":
		return e.extractDocx(data, fileType)
	default:
		// Lossy UTF-8 decode: malformed byte sequences are dropped,
		// never reported as a failure.
		return strings.ToValidUTF8(string(data), ""), nil
	}
}
