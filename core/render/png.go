// Package render turns a summary page into output bytes. PNG is the primary
// format; PDF wraps the PNG in a single A4 page, and Markdown, JSON and data
// URIs serve the editing UI and the CLI.
package render

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/gaurav-prasanna/pagebrief/core"
	"github.com/gaurav-prasanna/pagebrief/core/canvas"
	"github.com/gaurav-prasanna/pagebrief/core/layout"
)

// Image is an encoded page plus what the layout had to leave out.
type Image struct {
	PNG     []byte
	Width   int
	Height  int
	Clipped int
}

// PNGRenderer draws the page through layout.Render.
type PNGRenderer struct {
	Spec  layout.Spec
	Alloc layout.Allocator
}

// NewPNGRenderer creates a PNGRenderer for the default A4 page.
func NewPNGRenderer() *PNGRenderer {
	return &PNGRenderer{Spec: layout.DefaultSpec(), Alloc: canvas.Allocate}
}

// RenderImage lays out and encodes the page. Overflowing bullets are clipped
// and logged, not reported as an error.
func (r *PNGRenderer) RenderImage(ctx context.Context, page core.Page) (*Image, error) {
	bullets := core.ParseBullets(page.SummaryText)
	for i, b := range bullets {
		bullets[i] = cleanInlineMarkdown(b)
	}

	c, res, err := layout.Render(ctx, r.Alloc, r.Spec,
		cleanInlineMarkdown(page.Headline), page.Subheadline, bullets)
	if err != nil {
		return nil, err
	}
	if res.Clipped > 0 {
		log.Warn().
			Str("url", page.URL).
			Int("clipped_lines", res.Clipped).
			Int("bullets", len(bullets)).
			Msg("summary does not fit on the page")
	}

	var buf bytes.Buffer
	if err := c.Encode(&buf); err != nil {
		return nil, fmt.Errorf("encoding page: %w", err)
	}
	return &Image{
		PNG:     buf.Bytes(),
		Width:   res.Width,
		Height:  res.Height,
		Clipped: res.Clipped,
	}, nil
}

// Render returns the PNG bytes.
func (r *PNGRenderer) Render(page core.Page) ([]byte, error) {
	img, err := r.RenderImage(context.Background(), page)
	if err != nil {
		return nil, err
	}
	return img.PNG, nil
}

// Extension returns the file extension for PNG output.
func (r *PNGRenderer) Extension() string {
	return ".png"
}

// DataURI encodes PNG bytes for inline display.
func DataURI(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}

// DataURIRenderer renders the PNG page as a data: URI.
type DataURIRenderer struct {
	PNG *PNGRenderer
}

// Render returns the data URI as bytes.
func (r *DataURIRenderer) Render(page core.Page) ([]byte, error) {
	data, err := r.PNG.Render(page)
	if err != nil {
		return nil, err
	}
	return []byte(DataURI(data)), nil
}

// Extension returns the file extension for data URI output.
func (r *DataURIRenderer) Extension() string {
	return ".txt"
}
