package services

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// PageExtractor returns the plain text of every page of a PDF, in page order.
type PageExtractor interface {
	ExtractPages(data []byte) ([]string, error)
}

type pdfPageExtractor struct{}

func NewPDFPageExtractor() PageExtractor {
	return &pdfPageExtractor{}
}

// ExtractPages implements PageExtractor.
func (p *pdfPageExtractor) ExtractPages(data []byte) (pages []string, err error) {
	// The pdf package panics on some malformed content streams.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("pdf reader panicked: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	totalPage := r.NumPage()
	pages = make([]string, 0, totalPage)

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to read page %d: %w", pageIndex, err)
		}

		pages = append(pages, text)
	}

	return pages, nil
}
