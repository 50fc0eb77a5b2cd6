package life

import (
	"image/color"

	"cellsociety/internal/core"
)

const (
	Dead core.State = iota
	Alive
)

// States is the Life state set in rotation order.
var States = core.NewStateSet("life",
	core.StateDef{Name: "Dead", Tag: color.RGBA{R: 0, G: 0, B: 0, A: 255}},
	core.StateDef{Name: "Alive", Tag: color.RGBA{R: 255, G: 255, B: 255, A: 255}},
)

// Params lists the birth and survival windows. The defaults give Conway's
// B3/S23.
var Params = []core.ParamSpec{
	{Key: "birth_min", Label: "Birth min", Type: core.ParamTypeInt, Default: 3, Min: 0, Max: 12, HasMin: true, HasMax: true},
	{Key: "birth_max", Label: "Birth max", Type: core.ParamTypeInt, Default: 3, Min: 0, Max: 12, HasMin: true, HasMax: true},
	{Key: "survive_min", Label: "Survive min", Type: core.ParamTypeInt, Default: 2, Min: 0, Max: 12, HasMin: true, HasMax: true},
	{Key: "survive_max", Label: "Survive max", Type: core.ParamTypeInt, Default: 3, Min: 0, Max: 12, HasMin: true, HasMax: true},
}

// Life implements Life-like automata: a cell's next state depends only on
// how many of its neighbors are alive.
type Life struct {
	*core.Base
	birthMin, birthMax     int
	surviveMin, surviveMax int
}

// New wraps the shared model state into a Life simulation.
func New(b *core.Base) *Life {
	p := b.Params()
	return &Life{
		Base:       b,
		birthMin:   p.Int("birth_min"),
		birthMax:   p.Int("birth_max"),
		surviveMin: p.Int("survive_min"),
		surviveMax: p.Int("survive_max"),
	}
}

// Rule returns the successor of a cell in state st with n live neighbors.
func (l *Life) Rule(st core.State, n int) core.State {
	if st == Alive {
		if n >= l.surviveMin && n <= l.surviveMax {
			return Alive
		}
		return Dead
	}
	if n >= l.birthMin && n <= l.birthMax {
		return Alive
	}
	return Dead
}

// Update advances the simulation by one generation.
func (l *Life) Update() {
	cur, next := l.Current(), l.Next()
	for i, st := range cur {
		next[i] = l.Rule(st, l.CountNeighbors(i, Alive))
	}
	l.Commit()
}

func init() {
	core.Register(core.Descriptor{
		Name:   "life",
		Title:  "Game of Life",
		States: States,
		Params: Params,
		Build: func(b *core.Base) (core.Model, error) {
			return New(b), nil
		},
	})
}
