package render

import (
	"image"
	"image/color"

	"cellsociety/internal/core"
)

// FillRGBA converts cell states into RGBA pixels using a palette indexed by
// state. States past the end of the palette take its last colour. When the
// palette is empty the buffer is cleared to transparent black.
func FillRGBA(buf []byte, cells []core.State, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
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

// Image draws the grid one pixel per cell using the state set's tags.
func Image(g *core.Grid, set *core.StateSet) *image.RGBA {
	rows, cols := g.Dimensions()
	img := image.NewRGBA(image.Rect(0, 0, cols, rows))
	FillRGBA(img.Pix, g.States(), set.Palette())
	return img
}
