package render

import "image/color"

// fillPaletteRGBA converts cell values into RGBA pixels using a palette.
// When the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		for i := range cells {
			base := i * 4
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
		}
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// fillShadedRGBA is fillPaletteRGBA with a per-cell brightness multiplier,
// used to bake the light field into the terrain colors. minLight keeps
// pitch-black tiles barely readable.
func fillShadedRGBA(buf []byte, cells []uint8, light []float64, palette []color.RGBA, minLight float64) {
	if len(palette) == 0 || len(light) != len(cells) {
		fillPaletteRGBA(buf, cells, palette)
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		shade := light[i]
		if shade < minLight {
			shade = minLight
		}
		if shade > 1 {
			shade = 1
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = uint8(float64(col.R) * shade)
		buf[base+1] = uint8(float64(col.G) * shade)
		buf[base+2] = uint8(float64(col.B) * shade)
		buf[base+3] = col.A
	}
}
