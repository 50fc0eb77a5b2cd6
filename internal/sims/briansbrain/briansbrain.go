package briansbrain

import (
	"image/color"

	"cellsociety/internal/core"
)

const (
	Off core.State = iota
	On
	Dying
)

// States is the Brian's Brain state set in rotation order.
var States = core.NewStateSet("briansbrain",
	core.StateDef{Name: "Off", Tag: color.RGBA{R: 0, G: 0, B: 0, A: 255}},
	core.StateDef{Name: "On", Tag: color.RGBA{R: 255, G: 255, B: 255, A: 255}},
	core.StateDef{Name: "Dying", Tag: color.RGBA{R: 40, G: 90, B: 200, A: 255}},
)

// Brain implements Brian's Brain cellular automaton.
type Brain struct {
	*core.Base
	fireMin, fireMax int
}

// Update advances the automaton by one tick.
func (b *Brain) Update() {
	cur, next := b.Current(), b.Next()
	for i, st := range cur {
		switch st {
		case On:
			next[i] = Dying
		case Dying:
			next[i] = Off
		default:
			n := b.CountNeighbors(i, On)
			if n >= b.fireMin && n <= b.fireMax {
				next[i] = On
			} else {
				next[i] = Off
			}
		}
	}
	b.Commit()
}

func init() {
	core.Register(core.Descriptor{
		Name:   "briansbrain",
		Title:  "Brian's Brain",
		States: States,
		Params: []core.ParamSpec{
			{Key: "fire_min", Label: "Fire min", Type: core.ParamTypeInt, Default: 2, Min: 0, Max: 12, HasMin: true, HasMax: true},
			{Key: "fire_max", Label: "Fire max", Type: core.ParamTypeInt, Default: 2, Min: 0, Max: 12, HasMin: true, HasMax: true},
		},
		Build: func(b *core.Base) (core.Model, error) {
			p := b.Params()
			return &Brain{Base: b, fireMin: p.Int("fire_min"), fireMax: p.Int("fire_max")}, nil
		},
	})
}
