package extractor

import (
	"bytes"
	"io"
	"os"

	"github.com/ledongthuc/pdf"

	"github.com/digimosa/phonescan/internal/models"
)

// PDFScanner scans PDF files page by page.
type PDFScanner struct {
	opts Options
}

func (s *PDFScanner) Scan(reader io.Reader) ([]models.Match, error) {
	// The pdf library needs an io.ReaderAt and the total size. Files and
	// byte readers provide that directly; anything else is buffered.
	var readerAt io.ReaderAt
	var size int64

	switch r := reader.(type) {
	case *os.File:
		stat, err := r.Stat()
		if err != nil {
			return nil, err
		}
		readerAt = r
		size = stat.Size()
	case *bytes.Reader:
		readerAt = r
		size = int64(r.Len())
	default:
		data, err := io.ReadAll(reader)
		if err != nil {
			return nil, err
		}
		readerAt = bytes.NewReader(data)
		size = int64(len(data))
	}

	doc, err := pdf.NewReader(readerAt, size)
	if err != nil {
		return nil, err
	}

	var matches []models.Match
	totalPages := doc.NumPage()

	for i := 1; i <= totalPages; i++ {
		page := doc.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			continue // Skip page on error
		}

		// Byte offsets into extracted PDF text are meaningless to a
		// reviewer, so the offset carries the page number instead.
		pageMatches := findNumbers(content, s.opts, 0)
		for j := range pageMatches {
			pageMatches[j].Offset = int64(i)
		}
		matches = append(matches, pageMatches...)
	}

	return matches, nil
}
