package canvas

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/pagebrief/core/layout"
)

func TestNew_RejectsBadSizes(t *testing.T) {
	for _, size := range [][2]int{{0, 10}, {10, -1}, {MaxDimension + 1, 10}} {
		_, err := New(size[0], size[1])
		assert.Error(t, err, "size %v", size)
	}
}

func TestMeasureText(t *testing.T) {
	r, err := New(100, 100)
	require.NoError(t, err)

	regular := layout.Font{Size: 54}
	short := r.MeasureText("abc", regular)
	long := r.MeasureText("abcabc", regular)
	assert.Greater(t, short, 0.0)
	assert.InDelta(t, 2*short, long, 2)
	assert.Zero(t, r.MeasureText("", regular))
	assert.Greater(t, r.MeasureText("abc", layout.Font{Size: 108}), short)
}

func TestDrawAndEncode(t *testing.T) {
	r, err := New(200, 80)
	require.NoError(t, err)

	r.FillRect(0, 0, 200, 80, color.White)
	r.DrawText(10, 50, "Hi", layout.Font{Size: 40, Bold: true}, color.Black)

	var buf bytes.Buffer
	require.NoError(t, r.Encode(&buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 80, img.Bounds().Dy())

	cr, _, _, _ := img.At(199, 79).RGBA()
	assert.Equal(t, uint32(0xffff), cr, "untouched corner stays white")

	var dark bool
	for x := 10; x < 80 && !dark; x++ {
		for y := 15; y < 50; y++ {
			if v, _, _, _ := img.At(x, y).RGBA(); v < 0x8000 {
				dark = true
				break
			}
		}
	}
	assert.True(t, dark, "text left ink on the surface")
}

func TestAllocate_FullPage(t *testing.T) {
	c, err := Allocate(layout.A4Width, layout.A4Height)
	require.NoError(t, err)
	assert.NotNil(t, c)
}
