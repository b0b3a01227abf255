// Package pdf renders sequences of text blocks to paginated A4
// documents for the staff export views. A TTF with Bengali coverage can
// be registered at startup; without one the core Helvetica font is used
// and non-Latin text will not render, mirroring how exports degrade when
// no suitable font is installed.
package pdf

import (
	"fmt"
	"io"
	"os"

	"github.com/go-pdf/fpdf"
)

const fontFamily = "bangla"

// Renderer builds documents, optionally with a registered unicode font.
type Renderer struct {
	fontPath string
}

// NewRenderer returns a renderer using the TTF at fontPath, or the
// built-in core font when fontPath is empty or unreadable.
func NewRenderer(fontPath string) *Renderer {
	if fontPath != "" {
		if _, err := os.Stat(fontPath); err != nil {
			fontPath = ""
		}
	}
	return &Renderer{fontPath: fontPath}
}

// Document is one export in progress. Blocks are appended top to
// bottom; pages break automatically.
type Document struct {
	pdf    *fpdf.Fpdf
	family string
}

func (r *Renderer) NewDocument() *Document {
	p := fpdf.New("P", "mm", "A4", "")
	p.SetMargins(20, 20, 20)
	p.SetAutoPageBreak(true, 20)

	family := "Helvetica"
	if r.fontPath != "" {
		p.AddUTF8Font(fontFamily, "", r.fontPath)
		family = fontFamily
	}
	p.AddPage()
	return &Document{pdf: p, family: family}
}

// Title renders a centered document heading.
func (d *Document) Title(text string) {
	d.pdf.SetFont(d.family, "", 16)
	d.pdf.SetTextColor(30, 58, 95)
	d.pdf.MultiCell(0, 8, text, "", "C", false)
	d.pdf.Ln(6)
}

// Heading renders a block heading, e.g. one list's serial line.
func (d *Document) Heading(text string) {
	d.pdf.SetFont(d.family, "", 11)
	d.pdf.SetTextColor(30, 64, 175)
	d.pdf.MultiCell(0, 6, text, "", "L", false)
	d.pdf.Ln(1)
}

// Body renders a regular text block.
func (d *Document) Body(text string) {
	d.pdf.SetFont(d.family, "", 10)
	d.pdf.SetTextColor(55, 65, 81)
	d.pdf.MultiCell(0, 5, text, "", "L", false)
	d.pdf.Ln(1)
}

// Spacer adds vertical whitespace between blocks.
func (d *Document) Spacer(h float64) {
	d.pdf.Ln(h)
}

// Output writes the finished document.
func (d *Document) Output(w io.Writer) error {
	if err := d.pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}
