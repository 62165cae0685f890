package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDF extracts plain text from PDF files on disk.
// Library used: github.com/ledongthuc/pdf.
type PDF struct{}

// Extract opens the PDF at path and returns its per-page text concatenated in
// page order plus the page count. Any parser failure (corrupt, encrypted or
// otherwise unreadable file) surfaces as an error; no partial text is returned.
func (PDF) Extract(ctx context.Context, path string) (text string, pageCount int, err error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	// The parser panics on some malformed inputs.
	defer func() {
		if rec := recover(); rec != nil {
			text, pageCount = "", 0
			err = fmt.Errorf("parse pdf: %v", rec)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	pageCount = reader.NumPage()

	var buf strings.Builder
	for i := 1; i <= pageCount; i++ {
		if err := ctx.Err(); err != nil {
			return "", 0, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", 0, fmt.Errorf("extract page %d: %w", i, err)
		}
		buf.WriteString(text)
	}

	return buf.String(), pageCount, nil
}
