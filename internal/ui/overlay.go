//go:build ebiten

package ui

import (
	"fmt"
	"image/color"

	"cellsociety/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// Overlay draws optional debugging visuals on top of the grid: the cell under
// the cursor, its neighbors under the active pattern and its coordinates.
type Overlay struct {
	model     core.Model
	scale     int
	show      bool
	hover     core.Position
	hovering  bool
	neighbors []core.Position
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(model core.Model, scale int) *Overlay {
	if scale <= 0 {
		scale = 1
	}
	return &Overlay{model: model, scale: scale, show: true}
}

// SetModel points the overlay at a rebuilt model.
func (o *Overlay) SetModel(model core.Model) { o.model = model }

// Update tracks the hovered cell. Key 1 toggles the overlay.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.show = !o.show
	}
	mx, my := ebiten.CursorPosition()
	pos, ok := CellAt(mx, my, o.scale, o.model)
	o.hovering = ok
	if !ok {
		o.neighbors = o.neighbors[:0]
		return
	}
	if pos == o.hover && o.neighbors != nil {
		return
	}
	o.hover = pos
	rows, cols := o.model.Dimensions()
	ns, err := o.model.Finder().Of(pos, rows, cols)
	if err != nil {
		o.neighbors = o.neighbors[:0]
		return
	}
	o.neighbors = ns
}

// Invalidate forces the neighbor list to be recomputed, e.g. after the
// pattern changed.
func (o *Overlay) Invalidate() { o.neighbors = nil }

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.show || !o.hovering {
		return
	}
	s := float32(o.scale)
	for _, n := range o.neighbors {
		vector.StrokeRect(screen, float32(n.Col)*s, float32(n.Row)*s, s, s, 1, color.RGBA{R: 255, G: 210, B: 0, A: 255}, false)
	}
	vector.StrokeRect(screen, float32(o.hover.Col)*s, float32(o.hover.Row)*s, s, s, 2, color.RGBA{R: 255, G: 60, B: 60, A: 255}, false)

	st, err := o.model.State(o.hover.Row, o.hover.Col)
	if err != nil {
		return
	}
	label := fmt.Sprintf("%v %s  %d neighbors", o.hover, o.model.States().Name(st), len(o.neighbors))
	text.Draw(screen, label, basicfont.Face7x13, 4, screen.Bounds().Dy()-6, color.White)
}
