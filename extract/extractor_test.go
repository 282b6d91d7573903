package extract

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePage is a test double for pageTexter.
type fakePage struct {
	text string
	err  error
}

func (p fakePage) Text() (string, error) {
	return p.text, p.err
}

func TestExtract_PlainTextFallback(t *testing.T) {
	e := NewExtractor()

	tests := []struct {
		name     string
		data     []byte
		fileType string
		want     string
	}{
		{
			name:     "txt passes through",
			data:     []byte("hello world"),
			fileType: "txt",
			want:     "hello world",
		},
		{
			name:     "unknown tag treated as text",
			data:     []byte("csv,data,here"),
			fileType: "csv",
			want:     "csv,data,here",
		},
		{
			name:     "malformed bytes dropped, never fails",
			data:     []byte{'o', 'k', 0xff, 0xfe, '!'},
			fileType: "bin",
			want:     "ok!",
		},
		{
			name:     "empty input",
			data:     nil,
			fileType: "txt",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Extract(tt.data, tt.fileType)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_DispatchIsCaseInsensitive(t *testing.T) {
	e := NewExtractor()

	// "PDF" must hit the pdf arm, not the text fallback.
	_, err := e.Extract([]byte("not a pdf"), "PDF")
	var exErr *ExtractionError
	require.True(t, errors.As(err, &exErr))
	assert.Equal(t, "pdf", exErr.FileType)
}

func TestJoinPageText(t *testing.T) {
	e := NewExtractor()

	t.Run("pages concatenated in order", func(t *testing.T) {
		got := e.joinPageText([]pageTexter{
			fakePage{text: "first "},
			fakePage{text: "second"},
		})
		assert.Equal(t, "first second", got)
	})

	t.Run("page with no extractable text contributes empty string", func(t *testing.T) {
		got := e.joinPageText([]pageTexter{
			fakePage{text: "before "},
			fakePage{err: errors.New("no text layer")},
			fakePage{text: "after"},
		})
		assert.Equal(t, "before after", got)
	})

	t.Run("all pages empty still succeeds", func(t *testing.T) {
		got := e.joinPageText([]pageTexter{
			fakePage{err: errors.New("no text layer")},
			fakePage{},
		})
		assert.Equal(t, "", got)
	})
}

func TestExtract_PDFMalformed(t *testing.T) {
	e := NewExtractor()

	_, err := e.Extract([]byte("definitely not a pdf"), "pdf")
	require.Error(t, err)

	var exErr *ExtractionError
	require.True(t, errors.As(err, &exErr))
	assert.Equal(t, "pdf", exErr.FileType)
}

// buildDocx assembles a minimal OOXML archive with the given document.xml.
func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestExtract_Docx(t *testing.T) {
	e := NewExtractor()

	t.Run("paragraphs joined with newline in document order", func(t *testing.T) {
		data := buildDocx(t, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second </w:t></w:r><w:r><w:t>paragraph.</w:t></w:r></w:p>
    <w:p/>
  </w:body>
</w:document>`)

		got, err := e.Extract(data, "docx")
		require.NoError(t, err)
		assert.Equal(t, "First paragraph.\nSecond paragraph.\n", got)
	})

	t.Run("doc tag uses the same arm", func(t *testing.T) {
		data := buildDocx(t, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body><w:p><w:r><w:t>legacy path</w:t></w:r></w:p></w:body>
</w:document>`)

		got, err := e.Extract(data, "doc")
		require.NoError(t, err)
		assert.Equal(t, "legacy path", got)
	})

	t.Run("not a zip archive", func(t *testing.T) {
		_, err := e.Extract([]byte("old binary .doc payload"), "doc")
		var exErr *ExtractionError
		require.True(t, errors.As(err, &exErr))
		assert.Equal(t, "doc", exErr.FileType)
	})

	t.Run("archive without document.xml", func(t *testing.T) {
		var buf bytes.Buffer
		w := zip.NewWriter(&buf)
		f, err := w.Create("word/styles.xml")
		require.NoError(t, err)
		_, err = f.Write([]byte("<styles/>"))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		_, err = e.Extract(buf.Bytes(), "docx")
		var exErr *ExtractionError
		require.True(t, errors.As(err, &exErr))
	})
}
