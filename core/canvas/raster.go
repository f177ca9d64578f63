// Package canvas implements layout.Canvas on an in-memory RGBA image using
// the Go fonts, and encodes it as PNG.
package canvas

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gaurav-prasanna/pagebrief/core/layout"
)

// MaxDimension bounds either side of a surface.
const MaxDimension = 16384

var (
	fontsOnce             sync.Once
	regularFont, boldFont *opentype.Font
	fontsErr              error
)

func loadFonts() error {
	fontsOnce.Do(func() {
		regularFont, fontsErr = opentype.Parse(goregular.TTF)
		if fontsErr != nil {
			fontsErr = fmt.Errorf("parsing regular font: %w", fontsErr)
			return
		}
		boldFont, fontsErr = opentype.Parse(gobold.TTF)
		if fontsErr != nil {
			fontsErr = fmt.Errorf("parsing bold font: %w", fontsErr)
		}
	})
	return fontsErr
}

// Raster is a drawing surface backed by image.RGBA. It is not safe for
// concurrent use; faces keep internal buffers.
type Raster struct {
	img   *image.RGBA
	faces map[layout.Font]font.Face
}

// New allocates a blank width×height surface.
func New(width, height int) (*Raster, error) {
	if width <= 0 || height <= 0 || width > MaxDimension || height > MaxDimension {
		return nil, fmt.Errorf("invalid canvas size %dx%d", width, height)
	}
	if err := loadFonts(); err != nil {
		return nil, err
	}
	return &Raster{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		faces: make(map[layout.Font]font.Face),
	}, nil
}

// Allocate adapts New to layout.Allocator.
func Allocate(width, height int) (layout.Canvas, error) {
	r, err := New(width, height)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Image exposes the underlying pixels.
func (r *Raster) Image() *image.RGBA { return r.img }

func (r *Raster) face(f layout.Font) font.Face {
	if face, ok := r.faces[f]; ok {
		return face
	}
	src := regularFont
	if f.Bold {
		src = boldFont
	}
	// DPI 72 makes the point size equal to the pixel size.
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    f.Size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		log.Warn().Err(err).Float64("size", f.Size).Msg("falling back to basic font")
		face = basicfont.Face7x13
	}
	r.faces[f] = face
	return face
}

// MeasureText returns the advance width of text in pixels.
func (r *Raster) MeasureText(text string, f layout.Font) float64 {
	adv := font.MeasureString(r.face(f), text)
	return float64(adv) / 64
}

// FillRect paints a solid rectangle.
func (r *Raster) FillRect(x, y, w, h int, c color.Color) {
	rect := image.Rect(x, y, x+w, y+h)
	draw.Draw(r.img, rect, image.NewUniform(c), image.Point{}, draw.Src)
}

// DrawText draws text with its left edge at x and its baseline at y.
func (r *Raster) DrawText(x, y float64, text string, f layout.Font, c color.Color) {
	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(c),
		Face: r.face(f),
		Dot:  fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)},
	}
	d.DrawString(text)
}

// Encode writes the surface as PNG.
func (r *Raster) Encode(w io.Writer) error {
	if err := png.Encode(w, r.img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}
