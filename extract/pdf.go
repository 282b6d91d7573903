package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// pageTexter yields the plain text of a single PDF page.
type pageTexter interface {
	Text() (string, error)
}

type pdfPage struct {
	page pdf.Page
}

func (p pdfPage) Text() (string, error) {
	return p.page.GetPlainText(nil)
}

// extractPDF decodes each page of the document and concatenates the
// extracted text in page order.
func (e *Extractor) extractPDF(data []byte) (text string, err error) {
	// The reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			err = &ExtractionError{FileType: "pdf", Err: fmt.Errorf("malformed document: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{FileType: "pdf", Err: err}
	}

	pages := make([]pageTexter, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pages = append(pages, pdfPage{page: page})
	}

	return e.joinPageText(pages), nil
}

// joinPageText concatenates page texts in order. A page that yields no
// extractable text contributes an empty string rather than failing the
// whole document.
func (e *Extractor) joinPageText(pages []pageTexter) string {
	var sb strings.Builder
	for i, page := range pages {
		text, err := page.Text()
		if err != nil {
			e.logger.Debug("page has no extractable text", "page", i+1, "err", err)
			continue
		}
		sb.WriteString(text)
	}
	return sb.String()
}
