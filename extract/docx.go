package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// documentXML mirrors the subset of word/document.xml needed for
// paragraph text extraction.
type documentXML struct {
	Body struct {
		Paragraphs []paragraphXML `xml:"p"`
	} `xml:"body"`
}

type paragraphXML struct {
	Runs []runXML `xml:"r"`
}

type runXML struct {
	Texts []string `xml:"t"`
}

// extractDocx decodes paragraph text from an OOXML word-processing
// document and joins paragraphs with a newline, in document order.
// Legacy binary .doc payloads are not ZIP archives and fail here, which
// aborts the enclosing ingestion.
func (e *Extractor) extractDocx(data []byte, fileType string) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{FileType: fileType, Err: err}
	}

	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", &ExtractionError{FileType: fileType, Err: err}
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", &ExtractionError{FileType: fileType, Err: err}
		}

		var doc documentXML
		if err := xml.Unmarshal(content, &doc); err != nil {
			return "", &ExtractionError{FileType: fileType, Err: err}
		}

		paragraphs := make([]string, 0, len(doc.Body.Paragraphs))
		for _, p := range doc.Body.Paragraphs {
			var sb strings.Builder
			for _, run := range p.Runs {
				for _, t := range run.Texts {
					sb.WriteString(t)
				}
			}
			paragraphs = append(paragraphs, sb.String())
		}
		return strings.Join(paragraphs, "\n"), nil
	}

	return "", &ExtractionError{FileType: fileType, Err: fmt.Errorf("word/document.xml not found")}
}
