// Package extractor converts raw PDF bytes into plain text.
// Extraction is side-effect free from the caller's point of view: the only
// scratch state is a temp file, which is always removed.
package extractor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

var (
	// ErrInvalidPDF marks input that cannot be parsed as a PDF, including
	// encrypted documents for which no password is available.
	ErrInvalidPDF = errors.New("not a parseable PDF")

	// ErrNoText marks a structurally valid PDF with no extractable text,
	// typically a pure-image scan. Callers treat this as a failure rather
	// than silently storing an empty document.
	ErrNoText = errors.New("no extractable text in PDF")
)

// Extractor converts a raw document byte stream into plain text.
type Extractor interface {
	Extract(ctx context.Context, r io.Reader) (string, error)
}

// PDFExtractor extracts text from PDFs. Page texts are concatenated in
// document order, separated by a single newline; the separator carries no
// semantic meaning.
type PDFExtractor struct{}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

var _ Extractor = (*PDFExtractor)(nil)

func (e *PDFExtractor) Extract(ctx context.Context, r io.Reader) (string, error) {
	// The pdf library requires a ReadSeeker plus size, so spool to a temp file.
	tmp, err := os.CreateTemp("", "pdfqa-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	text, err := extractPDFText(ctx, tmpPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrNoText
	}
	return text, nil
}

func extractPDFText(ctx context.Context, path string) (string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var buf strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// Unreadable pages are skipped rather than failing the whole
			// document; a fully unreadable document is caught by ErrNoText.
			continue
		}
		pageText = strings.TrimSpace(pageText)
		if pageText == "" {
			continue
		}
		buf.WriteString(pageText)
		buf.WriteString("\n")
	}
	return buf.String(), nil
}
