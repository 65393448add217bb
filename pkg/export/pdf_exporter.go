package export

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const unicodeFamily = "academy"

// ErrFontRequired reports text the core fonts cannot draw while no UTF-8 font
// is configured.
var ErrFontRequired = errors.New("pdf export needs a UTF-8 font for non Latin-1 text")

// PDFExporter renders datasets into a basic tabular PDF. Core fonts only cover
// Latin-1, so a TTF with Hangul glyphs should be configured for Korean text.
type PDFExporter struct {
	fontPath string
}

// NewPDFExporter constructs a PDF exporter. fontPath may be empty.
func NewPDFExporter(fontPath string) *PDFExporter {
	return &PDFExporter{fontPath: fontPath}
}

// Render creates a landscape PDF document with the dataset title and table.
func (e *PDFExporter) Render(data Dataset) ([]byte, error) {
	if err := data.validate("pdf"); err != nil {
		return nil, err
	}
	if e.fontPath == "" && !data.latin1() {
		return nil, ErrFontRequired
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)

	family := "Arial"
	if e.fontPath != "" {
		pdf.AddUTF8Font(unicodeFamily, "", e.fontPath)
		family = unicodeFamily
	}
	pdf.AddPage()

	if data.Title != "" {
		pdf.SetFont(family, "", 14)
		pdf.CellFormat(0, 10, data.Title, "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	pdf.SetFont(family, "", 9)
	colWidth := 277.0 / float64(len(data.Headers))
	for _, header := range data.Headers {
		pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(family, "", 8)
	for i := range data.Rows {
		for _, value := range data.Record(i) {
			pdf.CellFormat(colWidth, 7, value, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (d Dataset) latin1() bool {
	if !isLatin1(d.Title) {
		return false
	}
	for _, header := range d.Headers {
		if !isLatin1(header) {
			return false
		}
	}
	for i := range d.Rows {
		for _, value := range d.Record(i) {
			if !isLatin1(value) {
				return false
			}
		}
	}
	return true
}

func isLatin1(s string) bool {
	for _, r := range s {
		if r > 0xFF {
			return false
		}
	}
	return true
}
