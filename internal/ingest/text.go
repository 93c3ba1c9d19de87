// Package ingest turns uploaded documents into raw text for the extraction
// pipeline. It is the boundary collaborator: the pipeline itself only ever
// sees the text.
package ingest

import (
	"bytes"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/coursetrack/syllabus-tracker/constants"
)

// DocumentReader extracts plain text from supported document formats. It
// satisfies pipeline.TextExtractor.
type DocumentReader struct {
	logger *slog.Logger
}

func NewDocumentReader(logger *slog.Logger) *DocumentReader {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentReader{logger: logger}
}

// TextFromDocument dispatches on the file extension. Unsupported formats and
// extraction failures degrade to an empty string; callers detect that as
// "no extractable text" rather than an error.
func (d *DocumentReader) TextFromDocument(data []byte, ext string) string {
	switch constants.MapExtToFormat(ext) {
	case constants.PDF:
		return d.TextFromPDF(data)
	case constants.TXT:
		return string(data)
	default:
		d.logger.Warn("ingest.unsupported_format", "ext", ext)
		return ""
	}
}

// TextFromPDF joins the plain text of every page with blank lines. Pages
// that fail to decode are skipped; a document that fails to open yields "".
func (d *DocumentReader) TextFromPDF(data []byte) string {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		d.logger.Warn("ingest.pdf_open_failed", "error", err)
		return ""
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			d.logger.Warn("ingest.pdf_page_failed", "page", i, "error", err)
			continue
		}
		if strings.TrimSpace(text) != "" {
			pages = append(pages, text)
		}
	}
	return strings.Join(pages, "\n\n")
}
