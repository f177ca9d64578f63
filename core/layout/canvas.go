// Package layout places a headline, a subheadline and a list of bullets on a
// fixed-size page. It only talks to a drawing backend through Canvas, so the
// wrapping and overflow rules can be tested with a fake that sums widths.
package layout

import (
	"image/color"
	"io"
)

// Font selects a face by pixel size and weight.
type Font struct {
	Size float64
	Bold bool
}

// Measurer reports the rendered width of text.
type Measurer interface {
	MeasureText(text string, f Font) float64
}

// Canvas is a drawing surface. Drawing calls cannot fail once the surface
// exists; only allocation and encoding return errors.
type Canvas interface {
	Measurer
	FillRect(x, y, w, h int, c color.Color)
	// DrawText draws text with its left edge at x and its baseline at y.
	DrawText(x, y float64, text string, f Font, c color.Color)
	Encode(w io.Writer) error
}

// Allocator creates a blank surface of the given size.
type Allocator func(width, height int) (Canvas, error)
