//go:build ebiten

package render

import (
	"image/color"

	"cellsociety/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter keeps one RGBA image in sync with a model's grid.
type GridPainter struct {
	w, h    int
	img     *ebiten.Image
	buf     []byte
	palette []color.RGBA
}

// NewGridPainter allocates a painter for a rows x cols grid.
func NewGridPainter(rows, cols int, palette []color.RGBA) *GridPainter {
	gp := &GridPainter{w: cols, h: rows, buf: make([]byte, 4*rows*cols), palette: palette}
	gp.img = ebiten.NewImage(cols, rows)
	return gp
}

// Blit uploads the grid's states into the painter image and draws it scaled.
func (gp *GridPainter) Blit(dst *ebiten.Image, g *core.Grid, scale int) {
	rows, cols := g.Dimensions()
	if rows != gp.h || cols != gp.w {
		return
	}
	FillRGBA(gp.buf, g.States(), gp.palette)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
