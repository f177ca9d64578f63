package layout

import (
	"context"
	"errors"
	"image/color"

	"github.com/gaurav-prasanna/pagebrief/core"
	"github.com/gaurav-prasanna/pagebrief/core/retry"
)

// A4 at 300 DPI.
const (
	A4Width  = 2480
	A4Height = 3508
)

// BulletGlyph is drawn at the left margin of each bullet's first line.
const BulletGlyph = "•"

var (
	textColor        = color.Black
	subheadlineColor = color.Gray{Y: 0x55}
)

// Spec holds the page geometry. Vertical positions are fractions of Height.
type Spec struct {
	Width, Height int

	Margin       float64 // left and right
	Indent       float64 // bullet text offset from the marker
	BottomMargin float64

	HeadlineSize    float64
	SubheadlineSize float64
	BulletSize      float64

	HeadlineY    float64
	SubheadlineY float64
	BulletsY     float64
}

// DefaultSpec returns the A4 page used for every summary.
func DefaultSpec() Spec {
	return Spec{
		Width:           A4Width,
		Height:          A4Height,
		Margin:          200,
		Indent:          70,
		BottomMargin:    200,
		HeadlineSize:    110,
		SubheadlineSize: 60,
		BulletSize:      54,
		HeadlineY:       0.05,
		SubheadlineY:    0.125,
		BulletsY:        0.175,
	}
}

// MaxWidth is the width available to bullet text.
func (s Spec) MaxWidth() float64 {
	return float64(s.Width) - 2*s.Margin - s.Indent
}

// LineHeight is the baseline advance between wrapped bullet lines.
func (s Spec) LineHeight() float64 {
	return s.BulletSize * 1.2
}

// PrintableHeight is the lowest baseline that may still be drawn.
func (s Spec) PrintableHeight() float64 {
	return float64(s.Height) - s.BottomMargin
}

func (s Spec) headlineFont() Font    { return Font{Size: s.HeadlineSize, Bold: true} }
func (s Spec) subheadlineFont() Font { return Font{Size: s.SubheadlineSize} }
func (s Spec) bulletFont() Font      { return Font{Size: s.BulletSize} }

// WrappedLine is one placed segment of text: X is its left edge and Y its
// baseline.
type WrappedLine struct {
	X, Y float64
	Text string
}

// Result is the computed page: what goes where, and how many bullet lines
// did not fit.
type Result struct {
	Width, Height int

	Headline    *WrappedLine
	Subheadline *WrappedLine
	Markers     []WrappedLine
	Lines       []WrappedLine

	// Clipped counts bullet lines dropped below the printable area.
	Clipped int
}

// Plan lays out the page without drawing it.
func Plan(m Measurer, spec Spec, headline, subheadline string, bullets []string) Result {
	res := Result{Width: spec.Width, Height: spec.Height}
	contentWidth := float64(spec.Width) - 2*spec.Margin

	res.Headline = centered(m, headline, spec.headlineFont(), contentWidth, spec, spec.HeadlineY)
	res.Subheadline = centered(m, subheadline, spec.subheadlineFont(), contentWidth, spec, spec.SubheadlineY)

	font := spec.bulletFont()
	lineHeight := spec.LineHeight()
	textX := spec.Margin + spec.Indent
	y := float64(spec.Height) * spec.BulletsY

	for _, bullet := range bullets {
		lines := Wrap(m, bullet, font, spec.MaxWidth())
		for i, line := range lines {
			if y > spec.PrintableHeight() {
				res.Clipped++
				continue
			}
			if i == 0 {
				res.Markers = append(res.Markers, WrappedLine{X: spec.Margin, Y: y, Text: BulletGlyph})
			}
			res.Lines = append(res.Lines, WrappedLine{X: textX, Y: y, Text: line})
			y += lineHeight
		}
		y += lineHeight / 2
	}
	return res
}

func centered(m Measurer, text string, f Font, maxWidth float64, spec Spec, yFrac float64) *WrappedLine {
	if text == "" {
		return nil
	}
	text = fitLine(m, text, f, maxWidth)
	w := m.MeasureText(text, f)
	return &WrappedLine{
		X:    (float64(spec.Width) - w) / 2,
		Y:    float64(spec.Height) * yFrac,
		Text: text,
	}
}

var errNilCanvas = errors.New("allocator returned no canvas")

// Render allocates a canvas, retrying allocation exactly once, paints the
// background white and draws the planned page. Only allocation can fail;
// that failure is reported as core.RenderInitFailed.
func Render(ctx context.Context, alloc Allocator, spec Spec, headline, subheadline string, bullets []string) (Canvas, Result, error) {
	var c Canvas
	err := retry.Once(ctx, 0, func() error {
		var err error
		c, err = alloc(spec.Width, spec.Height)
		if err == nil && c == nil {
			err = errNilCanvas
		}
		return err
	})
	if err != nil {
		return nil, Result{}, &core.Error{Kind: core.RenderInitFailed, Cause: err}
	}

	res := Plan(c, spec, headline, subheadline, bullets)

	c.FillRect(0, 0, spec.Width, spec.Height, color.White)
	if h := res.Headline; h != nil {
		c.DrawText(h.X, h.Y, h.Text, spec.headlineFont(), textColor)
	}
	if s := res.Subheadline; s != nil {
		c.DrawText(s.X, s.Y, s.Text, spec.subheadlineFont(), subheadlineColor)
	}
	font := spec.bulletFont()
	for _, mk := range res.Markers {
		c.DrawText(mk.X, mk.Y, mk.Text, font, textColor)
	}
	for _, line := range res.Lines {
		c.DrawText(line.X, line.Y, line.Text, font, textColor)
	}
	return c, res, nil
}
