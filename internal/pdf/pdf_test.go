package pdf

import (
	"bytes"
	"testing"
)

func TestDocumentOutput(t *testing.T) {
	r := NewRenderer("")
	doc := r.NewDocument()
	doc.Title("Consolidated Market Points - 10/02/2026")
	doc.Heading("Serial: 1 | List ID: #Pack-1 | User: Alice")
	doc.Body("Address: 12 Lake Road")
	doc.Body("1. Rice 1kg")
	doc.Spacer(4)
	doc.Body("2. Milk")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("output: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("empty document")
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Errorf("output does not look like a PDF: %q", buf.Bytes()[:8])
	}
}

func TestMissingFontFallsBack(t *testing.T) {
	r := NewRenderer("/nonexistent/font.ttf")
	doc := r.NewDocument()
	doc.Body("fallback")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("output: %v", err)
	}
}
