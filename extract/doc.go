// Package extract converts raw document bytes into plain text, dispatching
// on the document's declared file type.
//
// Three arms exist and no others: PDF (page-ordered text, pages without
// extractable text contribute nothing), DOC/DOCX (paragraph text joined by
// newlines), and a lossy UTF-8 fallback for every other tag. The fallback
// never fails on malformed encoding; unsupported binary formats therefore
// degrade to garbled text instead of aborting ingestion.
package extract
