//go:build ebiten

package app

import (
	"fmt"
	"path/filepath"

	"cellsociety/internal/core"
	"cellsociety/internal/render"
	"cellsociety/internal/scenario"
	"cellsociety/internal/ui"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a core model to the ebiten.Game interface.
type Game struct {
	model   core.Model
	build   Builder
	opts    Options
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	pace    *core.FixedStep

	paused   bool
	tickOnce bool
}

// New constructs a Game for the model produced by build.
func New(build Builder, opts Options) (*Game, error) {
	opts = opts.withDefaults()
	m, err := build()
	if err != nil {
		return nil, err
	}
	rows, cols := m.Dimensions()
	return &Game{
		model:   m,
		build:   build,
		opts:    opts,
		painter: render.NewGridPainter(rows, cols, m.States().Palette()),
		overlay: ui.NewOverlay(m, opts.Scale),
		hud:     ui.NewHUD(m, opts.HUDWidth),
		pace:    core.NewFixedStep(opts.TPS),
	}, nil
}

// Reset rebuilds the model from its scenario.
func (g *Game) Reset() {
	m, err := g.build()
	if err != nil {
		g.hud.Flash("reset failed")
		log.Error("reset failed", "err", err)
		return
	}
	g.model = m
	g.overlay.SetModel(m)
	g.hud.SetModel(m)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.save()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		g.opts.TPS = min(g.opts.TPS*2, 240)
		g.pace.SetTPS(g.opts.TPS)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		g.opts.TPS = max(g.opts.TPS/2, 1)
		g.pace.SetTPS(g.opts.TPS)
	}

	_, cols := g.model.Dimensions()
	if g.hud.Update(cols * g.opts.Scale) {
		g.overlay.Invalidate()
	} else if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		if pos, ok := ui.CellAt(mx, my, g.opts.Scale, g.model); ok {
			_ = g.model.Click(pos.Row, pos.Col)
		}
	}
	g.overlay.Update()

	if (!g.paused && g.pace.ShouldStep()) || g.tickOnce {
		g.model.Update()
		g.tickOnce = false
	}
	return nil
}

func (g *Game) save() {
	dir := g.opts.SaveDir
	if dir == "" {
		dir = scenario.UserDir()
	}
	name := fmt.Sprintf("%s-gen%d", g.opts.Name, g.model.Generation())
	path := filepath.Join(dir, name+".yaml")
	if err := scenario.Write(path, scenario.FromModel(name, g.model)); err != nil {
		log.Error("save failed", "err", err)
		g.hud.Flash("save failed")
		return
	}
	log.Info("scenario saved", "path", path)
	g.hud.Flash("saved " + name)
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.model.Snapshot(), g.opts.Scale)
	g.overlay.Draw(screen)
	_, cols := g.model.Dimensions()
	_, h := g.Layout(0, 0)
	g.hud.Draw(screen, cols*g.opts.Scale, h)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	rows, cols := g.model.Dimensions()
	h := max(rows*g.opts.Scale, g.hud.MinHeight())
	return cols*g.opts.Scale + g.opts.HUDWidth, h
}
