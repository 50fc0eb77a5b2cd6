//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"cellsociety/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the status panel to the right of the simulation view: neighbor
// controls, live population counts and the model's parameters.
type HUD struct {
	model      core.Model
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot
	population map[string]int

	controls     []hudControlState
	panelOffsetX int
	title        string

	message      string
	messageUntil time.Time

	pixel *ebiten.Image
}

type hudControlState struct {
	control Control
	value   string

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

// NewHUD constructs a HUD for the provided model and panel width.
func NewHUD(model core.Model, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{model: model, width: width}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	h.title = buildTitle(model)
	h.controls = make([]hudControlState, len(NeighborControls))
	for i, ctrl := range NeighborControls {
		h.controls[i] = hudControlState{control: ctrl, value: "--"}
	}
	h.layoutControls()
	return h
}

// SetModel points the HUD at a rebuilt model.
func (h *HUD) SetModel(model core.Model) {
	if h == nil {
		return
	}
	h.model = model
	h.title = buildTitle(model)
}

// Flash shows a short status message under the controls.
func (h *HUD) Flash(msg string) {
	if h == nil {
		return
	}
	h.message = msg
	h.messageUntil = time.Now().Add(3 * time.Second)
}

// Update refreshes the cached snapshot from the model and handles clicks on
// the panel. It reports whether the click landed on the panel.
func (h *HUD) Update(panelOffsetX int) bool {
	if h == nil {
		return false
	}
	h.panelOffsetX = panelOffsetX
	h.snapshot = h.model.Parameters()
	h.population = h.model.Population()
	for i := range h.controls {
		h.controls[i].value = h.controls[i].control.Value(h.model)
	}
	return h.handleInput()
}

// Draw paints the HUD panel anchored to the right edge of the simulation view.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dx() != h.width || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawControls()
	h.drawStatus()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

// MinHeight is the panel height needed to show every line.
func (h *HUD) MinHeight() int {
	if h == nil {
		return 0
	}
	lines := 3 + h.model.States().Len()
	for _, g := range h.model.Parameters().Groups {
		lines += 1 + len(g.Params)
	}
	return controlsTop + len(h.controls)*lineHeight + lines*textLine + panelPadding
}

func buildTitle(m core.Model) string {
	if m == nil || m.Name() == "" {
		return "Controls"
	}
	return m.Name()
}

func (h *HUD) handleInput() bool {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return false
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return false
	}
	px := mx - h.panelOffsetX
	for i := range h.controls {
		state := &h.controls[i]
		dir := 0
		switch {
		case pointInRect(px, my, state.minusRect):
			dir = -1
		case pointInRect(px, my, state.plusRect):
			dir = 1
		}
		if dir == 0 {
			continue
		}
		name, err := state.control.Cycle(h.model, dir)
		if err != nil {
			h.Flash(fmt.Sprintf("%s: %s unavailable", state.control.Label, name))
		}
		state.value = state.control.Value(h.model)
		return true
	}
	return true
}

func (h *HUD) drawControls() {
	if h.panel == nil {
		return
	}
	face := basicfont.Face7x13
	headerY := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, headerY, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	for i := range h.controls {
		state := &h.controls[i]
		top := state.top
		labelY := top + labelBaseline
		text.Draw(h.panel, state.control.Label, face, panelPadding, labelY, color.RGBA{R: 220, G: 220, B: 230, A: 255})
		value := state.value
		bounds := text.BoundString(face, value)
		valueX := state.minusRect.Min.X - buttonGap - bounds.Dx()
		text.Draw(h.panel, value, face, valueX, labelY, color.RGBA{R: 220, G: 220, B: 230, A: 255})
		h.drawButton(state.minusRect, "-")
		h.drawButton(state.plusRect, "+")
	}
}

func (h *HUD) drawStatus() {
	face := basicfont.Face7x13
	dim := color.RGBA{R: 160, G: 160, B: 170, A: 255}
	bright := color.RGBA{R: 220, G: 220, B: 230, A: 255}
	y := controlsTop + len(h.controls)*lineHeight + textLine

	if h.message != "" && time.Now().Before(h.messageUntil) {
		text.Draw(h.panel, h.message, face, panelPadding, y, color.RGBA{R: 240, G: 120, B: 90, A: 255})
	}
	y += textLine
	text.Draw(h.panel, fmt.Sprintf("Generation %d", h.model.Generation()), face, panelPadding, y, bright)
	y += textLine

	set := h.model.States()
	for i, name := range set.Names() {
		y += textLine
		swatch := image.Rect(panelPadding, y-swatchSize, panelPadding+swatchSize, y)
		h.fillRect(swatch, set.Tag(core.State(i)))
		text.Draw(h.panel, fmt.Sprintf("%-10s %6d", name, h.population[name]), face, panelPadding+swatchSize+buttonGap, y, bright)
	}

	for _, group := range h.snapshot.Groups {
		y += textLine
		text.Draw(h.panel, group.Name, face, panelPadding, y, dim)
		for _, p := range group.Params {
			y += textLine
			text.Draw(h.panel, p.Label, face, panelPadding+buttonGap, y, bright)
			bounds := text.BoundString(face, p.Value)
			text.Draw(h.panel, p.Value, face, h.width-panelPadding-bounds.Dx(), y, bright)
		}
	}
}

func (h *HUD) fillRect(rect image.Rectangle, c color.RGBA) {
	if h.pixel == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(c)
	h.panel.DrawImage(h.pixel, op)
}

func (h *HUD) drawButton(rect image.Rectangle, label string) {
	h.fillRect(rect, color.RGBA{R: 54, G: 56, B: 64, A: 255})

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, color.RGBA{R: 230, G: 230, B: 240, A: 255})
}

func (h *HUD) layoutControls() {
	if len(h.controls) == 0 || h.width <= 0 {
		return
	}
	for i := range h.controls {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plusRect := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minusRect := image.Rect(plusRect.Min.X-buttonGap-buttonSize, buttonY, plusRect.Min.X-buttonGap, buttonY+buttonSize)
		h.controls[i].top = top
		h.controls[i].minusRect = minusRect
		h.controls[i].plusRect = plusRect
	}
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	textLine       = 16
	swatchSize     = 10
	controlsTop    = panelPadding + headerBaseline + 14
)
