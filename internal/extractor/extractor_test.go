package extractor

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract_InvalidBytes(t *testing.T) {
	e := NewPDFExtractor()

	tests := []struct {
		name  string
		input string
	}{
		{name: "plain text blob", input: "this is not a pdf at all"},
		{name: "empty input", input: ""},
		{name: "truncated header", input: "%PDF-1.7\ngarbage with no xref"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := e.Extract(context.Background(), strings.NewReader(tt.input))
			assert.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidPDF)
			assert.Empty(t, text)
		})
	}
}

func TestExtract_ErrorsAreDistinguishable(t *testing.T) {
	e := NewPDFExtractor()

	_, err := e.Extract(context.Background(), strings.NewReader("junk"))
	assert.ErrorIs(t, err, ErrInvalidPDF)
	assert.NotErrorIs(t, err, ErrNoText)
}
