// Package fire implements a probabilistic forest fire.
//
// A burning cell becomes empty. A tree with k burning neighbors ignites with
// probability 1-(1-p)^k, where p is the per-neighbor catch probability. An
// empty cell grows a new tree with the grow probability, which defaults to
// zero so a fire burns out on a finite forest.
package fire

import (
	"image/color"
	"math"

	"cellsociety/internal/core"
)

const (
	Empty core.State = iota
	Tree
	Burning
)

// States is the fire state set in rotation order.
var States = core.NewStateSet("fire",
	core.StateDef{Name: "Empty", Tag: color.RGBA{R: 255, G: 255, B: 0, A: 255}},
	core.StateDef{Name: "Tree", Tag: color.RGBA{R: 0, G: 128, B: 0, A: 255}},
	core.StateDef{Name: "Burning", Tag: color.RGBA{R: 255, G: 64, B: 0, A: 255}},
)

// Forest is a spreading fire simulation.
type Forest struct {
	*core.Base
	catch float64
	grow  float64
}

// IgnitionChance is the probability that a tree with k burning neighbors
// catches fire this step.
func (f *Forest) IgnitionChance(k int) float64 {
	if k <= 0 {
		return 0
	}
	return 1 - math.Pow(1-f.catch, float64(k))
}

// Update advances the fire by one step.
func (f *Forest) Update() {
	cur, next := f.Current(), f.Next()
	rng := f.RNG()
	for i, st := range cur {
		switch st {
		case Burning:
			next[i] = Empty
		case Tree:
			next[i] = Tree
			if k := f.CountNeighbors(i, Burning); k > 0 && rng.Chance(f.IgnitionChance(k)) {
				next[i] = Burning
			}
		default:
			next[i] = Empty
			if f.grow > 0 && rng.Chance(f.grow) {
				next[i] = Tree
			}
		}
	}
	f.Commit()
}

// Active reports whether any cell is still on fire.
func (f *Forest) Active() bool { return f.Count(Burning) > 0 }

func init() {
	core.Register(core.Descriptor{
		Name:   "fire",
		Title:  "Spreading Fire",
		States: States,
		Params: []core.ParamSpec{
			{Key: "catch_probability", Label: "Catch", Type: core.ParamTypeFloat, Default: 0.5, Min: 0, Max: 1, HasMin: true, HasMax: true,
				Description: "chance a single burning neighbor ignites a tree"},
			{Key: "grow_probability", Label: "Regrowth", Type: core.ParamTypeFloat, Default: 0, Min: 0, Max: 1, HasMin: true, HasMax: true,
				Description: "chance an empty cell grows a tree each step"},
		},
		Build: func(b *core.Base) (core.Model, error) {
			p := b.Params()
			return &Forest{Base: b, catch: p.Float("catch_probability"), grow: p.Float("grow_probability")}, nil
		},
	})
}
