package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFillPaletteRGBA(t *testing.T) {
	palette := []color.RGBA{
		{R: 10, G: 20, B: 30, A: 255},
		{R: 200, G: 100, B: 50, A: 255},
	}
	cells := []uint8{0, 1, 5}
	buf := make([]byte, 12)

	fillPaletteRGBA(buf, cells, palette)

	assert.Equal(t, []byte{10, 20, 30, 255}, buf[0:4])
	assert.Equal(t, []byte{200, 100, 50, 255}, buf[4:8])
	// Out-of-range cells clamp to the last palette entry.
	assert.Equal(t, []byte{200, 100, 50, 255}, buf[8:12])
}

func TestFillPaletteRGBAEmptyPalette(t *testing.T) {
	cells := []uint8{1, 2}
	buf := []byte{9, 9, 9, 9, 9, 9, 9, 9}

	fillPaletteRGBA(buf, cells, nil)

	for _, b := range buf {
		assert.Zero(t, b)
	}
}

func TestFillShadedRGBA(t *testing.T) {
	palette := []color.RGBA{{R: 200, G: 100, B: 50, A: 255}}
	cells := []uint8{0, 0, 0}
	light := []float64{1.0, 0.5, 0.0}
	buf := make([]byte, 12)

	fillShadedRGBA(buf, cells, light, palette, 0.0)

	assert.Equal(t, []byte{200, 100, 50, 255}, buf[0:4], "full light keeps the palette color")
	assert.Equal(t, []byte{100, 50, 25, 255}, buf[4:8], "half light halves the channels")
	assert.Equal(t, []byte{0, 0, 0, 255}, buf[8:12], "darkness blacks out the tile, alpha intact")
}

func TestFillShadedRGBAMinLightFloor(t *testing.T) {
	palette := []color.RGBA{{R: 100, G: 100, B: 100, A: 255}}
	cells := []uint8{0}
	light := []float64{0.0}
	buf := make([]byte, 4)

	fillShadedRGBA(buf, cells, light, palette, 0.1)

	assert.Equal(t, byte(10), buf[0], "the floor keeps pitch-black tiles readable")
}

func TestFillShadedRGBAFallsBackOnMismatch(t *testing.T) {
	palette := []color.RGBA{{R: 10, G: 20, B: 30, A: 255}}
	cells := []uint8{0, 0}
	light := []float64{0.5} // wrong length
	buf := make([]byte, 8)

	fillShadedRGBA(buf, cells, light, palette, 0.0)

	assert.Equal(t, []byte{10, 20, 30, 255}, buf[0:4], "mismatched light falls back to flat palette fill")
}

func TestFillShadedRGBAClipsOverbright(t *testing.T) {
	palette := []color.RGBA{{R: 100, G: 100, B: 100, A: 255}}
	cells := []uint8{0}
	light := []float64{2.0}
	buf := make([]byte, 4)

	fillShadedRGBA(buf, cells, light, palette, 0.0)

	assert.Equal(t, byte(100), buf[0], "light above 1 must not overdrive the color")
}
