// Package chunk provides strategies for splitting extracted document text
// into indexable units.
//
// The default Whole strategy keeps every document as a single unit; this
// caps retrieval precision on long documents but keeps one passage per
// source file. Sentences is an opt-in strategy that subdivides documents
// at sentence boundaries without changing the ingestion contract.
package chunk

import (
	"regexp"
	"strings"
)

// Strategy splits one document's text into indexable units.
// Implementations must return at least one unit for non-empty input and
// preserve text order.
type Strategy interface {
	Chunk(text string) []string
}

// Whole keeps the entire document as a single unit.
type Whole struct{}

func (Whole) Chunk(text string) []string {
	return []string{text}
}

var sentenceSplitter = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)

// Sentences groups sentences into units of up to SentencesPerChunk,
// splitting on terminal punctuation. Text without any sentence boundary
// becomes a single unit.
type Sentences struct {
	SentencesPerChunk int
}

// NewSentences creates a sentence-grouping strategy.
// A non-positive group size defaults to 5.
func NewSentences(sentencesPerChunk int) Sentences {
	if sentencesPerChunk <= 0 {
		sentencesPerChunk = 5
	}
	return Sentences{SentencesPerChunk: sentencesPerChunk}
}

func (s Sentences) Chunk(text string) []string {
	sentences := sentenceSplitter.FindAllString(text, -1)
	if len(sentences) == 0 {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return []string{""}
		}
		sentences = []string{trimmed}
	}
	for i := range sentences {
		sentences[i] = strings.TrimSpace(sentences[i])
	}

	var chunks []string
	for i := 0; i < len(sentences); i += s.SentencesPerChunk {
		end := i + s.SentencesPerChunk
		if end > len(sentences) {
			end = len(sentences)
		}
		chunks = append(chunks, strings.Join(sentences[i:end], " "))
	}
	return chunks
}
