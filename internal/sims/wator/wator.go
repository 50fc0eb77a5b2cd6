// Package wator implements the Wa-Tor predator-prey automaton.
//
// Each step reads the committed grid and builds the next one. Sharks act
// first, then fish, both in row-major order. A cell written to the next
// buffer is claimed and no longer eligible as a target, so no two agents
// land on the same cell. When several cells are eligible the target is
// drawn uniformly from them, listed in neighbor order, using the model's
// seeded RNG.
package wator

import (
	"image/color"

	"cellsociety/internal/core"
)

const (
	Water core.State = iota
	Fish
	Shark
)

// States is the Wa-Tor state set in rotation order.
var States = core.NewStateSet("wator",
	core.StateDef{Name: "Water", Tag: color.RGBA{R: 0, G: 0, B: 255, A: 255}},
	core.StateDef{Name: "Fish", Tag: color.RGBA{R: 255, G: 228, B: 196, A: 255}},
	core.StateDef{Name: "Shark", Tag: color.RGBA{R: 128, G: 128, B: 128, A: 255}},
)

// Params lists the breeding and starvation clocks, in steps.
var Params = []core.ParamSpec{
	{Key: "fish_breed_time", Label: "Fish breed time", Type: core.ParamTypeInt, Default: 4, Min: 1, HasMin: true,
		Description: "steps a fish must survive before it can breed"},
	{Key: "shark_breed_time", Label: "Shark breed time", Type: core.ParamTypeInt, Default: 8, Min: 1, HasMin: true,
		Description: "steps a shark must survive before it can breed"},
	{Key: "shark_starve_time", Label: "Shark starve time", Type: core.ParamTypeInt, Default: 3, Min: 1, HasMin: true,
		Description: "consecutive steps without food that kill a shark"},
}

// World is a Wa-Tor simulation. Agent clocks live in arrays parallel to the
// grid and are double buffered alongside it.
type World struct {
	*core.Base

	fishBreed   int
	sharkBreed  int
	sharkStarve int

	age, nextAge       []int
	starve, nextStarve []int
	eaten              []bool
	scratch            []int
}

// New wraps the shared model state into a Wa-Tor world.
func New(b *core.Base) *World {
	p := b.Params()
	n := b.Len()
	return &World{
		Base:        b,
		fishBreed:   p.Int("fish_breed_time"),
		sharkBreed:  p.Int("shark_breed_time"),
		sharkStarve: p.Int("shark_starve_time"),
		age:         make([]int, n),
		nextAge:     make([]int, n),
		starve:      make([]int, n),
		nextStarve:  make([]int, n),
		eaten:       make([]bool, n),
	}
}

// Age returns the breeding clock of the agent at (row, col).
func (w *World) Age(row, col int) int { return w.age[w.Index(row, col)] }

// Hunger returns how many steps the shark at (row, col) has gone unfed.
func (w *World) Hunger(row, col int) int { return w.starve[w.Index(row, col)] }

// Click rotates the cell's state. The agent placed there starts with fresh
// clocks.
func (w *World) Click(row, col int) error {
	if err := w.Base.Click(row, col); err != nil {
		return err
	}
	idx := w.Index(row, col)
	w.age[idx] = 0
	w.starve[idx] = 0
	return nil
}

// pick draws uniformly among the neighbors of idx accepted by ok, or
// returns -1 when none qualify.
func (w *World) pick(idx int, ok func(j int) bool) int {
	w.scratch = w.scratch[:0]
	for _, j := range w.Neighbors(idx) {
		if ok(j) {
			w.scratch = append(w.scratch, j)
		}
	}
	if len(w.scratch) == 0 {
		return -1
	}
	return w.scratch[w.RNG().IntN(len(w.scratch))]
}

// Update advances the world by one chronon.
func (w *World) Update() {
	cur, next := w.Current(), w.Next()
	for i := range next {
		next[i] = Water
		w.nextAge[i] = 0
		w.nextStarve[i] = 0
		w.eaten[i] = false
	}

	for i, st := range cur {
		if st == Shark {
			w.moveShark(i, cur, next)
		}
	}
	for i, st := range cur {
		if st == Fish && !w.eaten[i] {
			w.moveFish(i, cur, next)
		}
	}

	w.Commit()
	w.age, w.nextAge = w.nextAge, w.age
	w.starve, w.nextStarve = w.nextStarve, w.starve
}

func (w *World) moveShark(i int, cur, next []core.State) {
	age := w.age[i] + 1
	hunger := w.starve[i] + 1

	target := w.pick(i, func(j int) bool {
		return cur[j] == Fish && !w.eaten[j] && next[j] == Water
	})
	if target >= 0 {
		w.eaten[target] = true
		hunger = 0
	} else {
		target = w.pick(i, func(j int) bool {
			return cur[j] == Water && next[j] == Water
		})
	}
	if hunger >= w.sharkStarve {
		return
	}
	if target < 0 {
		target = i
	}
	if target != i && age >= w.sharkBreed {
		next[i] = Shark
		age = 0
	}
	next[target] = Shark
	w.nextAge[target] = age
	w.nextStarve[target] = hunger
}

func (w *World) moveFish(i int, cur, next []core.State) {
	age := w.age[i] + 1
	target := w.pick(i, func(j int) bool {
		return cur[j] == Water && next[j] == Water
	})
	if target < 0 {
		target = i
	}
	if target != i && age >= w.fishBreed {
		next[i] = Fish
		age = 0
	}
	next[target] = Fish
	w.nextAge[target] = age
}

func init() {
	core.Register(core.Descriptor{
		Name:   "wator",
		Title:  "Wa-Tor",
		States: States,
		Params: Params,
		Build: func(b *core.Base) (core.Model, error) {
			return New(b), nil
		},
	})
}
