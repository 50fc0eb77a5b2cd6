// Package elementary runs a one-dimensional Wolfram rule whose history
// scrolls down the grid: row 0 holds the newest generation and every other
// row shows the generation before the one above it.
package elementary

import (
	"image/color"

	"cellsociety/internal/core"
)

const (
	Off core.State = iota
	On
)

// States is the elementary automaton state set in rotation order.
var States = core.NewStateSet("elementary",
	core.StateDef{Name: "Off", Tag: color.RGBA{R: 0, G: 0, B: 0, A: 255}},
	core.StateDef{Name: "On", Tag: color.RGBA{R: 255, G: 220, B: 90, A: 255}},
)

// Elementary applies its rule to the left, centre and right cells of the top
// row. The neighbor pattern does not apply; the edge policy decides whether
// the row wraps or reads Off past its ends.
type Elementary struct {
	*core.Base
	rule uint8
}

// Rule returns the Wolfram code in use.
func (e *Elementary) Rule() uint8 { return e.rule }

// Update computes a new top row and scrolls the history down by one row.
func (e *Elementary) Update() {
	cur, next := e.Current(), e.Next()
	rows, cols := e.Dimensions()
	wrap := e.Finder().Edges == core.Toroidal

	copy(next[cols:], cur[:cols*(rows-1)])
	at := func(c int) uint8 {
		if c < 0 || c >= cols {
			if !wrap {
				return 0
			}
			c = (c%cols + cols) % cols
		}
		if cur[c] == On {
			return 1
		}
		return 0
	}
	for c := 0; c < cols; c++ {
		idx := at(c-1)<<2 | at(c)<<1 | at(c+1)
		if (e.rule>>idx)&1 == 1 {
			next[c] = On
		} else {
			next[c] = Off
		}
	}
	e.Commit()
}

func init() {
	core.Register(core.Descriptor{
		Name:   "elementary",
		Title:  "Elementary Automaton",
		States: States,
		Params: []core.ParamSpec{
			{Key: "rule", Label: "Rule", Type: core.ParamTypeInt, Default: 110, Min: 0, Max: 255, HasMin: true, HasMax: true,
				Description: "Wolfram code of the one-dimensional rule"},
		},
		Build: func(b *core.Base) (core.Model, error) {
			e := &Elementary{Base: b, rule: uint8(b.Params().Int("rule"))}
			// An empty start gets the classic single cell at the top centre.
			if b.Count(On) == 0 {
				_, cols := b.Dimensions()
				if err := b.Click(0, cols/2); err != nil {
					return nil, err
				}
			}
			return e, nil
		},
	})
}
