package render

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/pagebrief/core"
)

// A4 in millimetres.
const (
	a4WidthMM  = 210.0
	a4HeightMM = 297.0
)

// PDFRenderer places the rendered PNG page on a single A4 PDF page.
type PDFRenderer struct {
	PNG *PNGRenderer
}

// NewPDFRenderer creates a PDFRenderer drawing through png.
func NewPDFRenderer(png *PNGRenderer) *PDFRenderer {
	return &PDFRenderer{PNG: png}
}

// Render converts the page into PDF bytes.
func (r *PDFRenderer) Render(page core.Page) ([]byte, error) {
	img, err := r.PNG.Render(page)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	if page.Headline != "" {
		pdf.SetTitle(page.Headline, true)
	}
	if page.URL != "" {
		pdf.SetSubject(page.URL, true)
	}
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("page", opts, bytes.NewReader(img))
	pdf.ImageOptions("page", 0, 0, a4WidthMM, a4HeightMM, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}
